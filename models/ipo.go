package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IPO lifecycle statuses.
const (
	StatusUpcoming = "Upcoming"
	StatusOpen     = "Open"
	StatusClosed   = "Closed"
	StatusListed   = "Listed"
)

// ValidStatuses lists every accepted value for the status column.
var ValidStatuses = []string{StatusUpcoming, StatusOpen, StatusClosed, StatusListed}

// IsValidStatus reports whether s is one of the accepted IPO statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type IPO struct {
	// Primary identification
	ID        uint `json:"id" gorm:"column:ipo_id;primaryKey"`
	CompanyID uint `json:"companyId" gorm:"column:company_id;not null;index"`

	// Offering details
	PriceBand *string `json:"priceBand" gorm:"column:price_band;type:varchar(50)"`
	IssueSize *string `json:"issueSize" gorm:"column:issue_size;type:varchar(100)"`
	IssueType *string `json:"issueType" gorm:"column:issue_type;type:varchar(50)"`

	// Timeline
	OpenDate    *time.Time `json:"openDate" gorm:"column:open_date;type:date"`
	CloseDate   *time.Time `json:"closeDate" gorm:"column:close_date;type:date"`
	ListingDate *time.Time `json:"listingDate" gorm:"column:listing_date;type:date"`

	Status string `json:"status" gorm:"column:status;type:varchar(20);not null;default:'Upcoming'"`

	// Pricing and post-listing performance
	IPOPrice           *decimal.Decimal `json:"ipoPrice" gorm:"column:ipo_price;type:decimal(10,2)"`
	ListingPrice       *decimal.Decimal `json:"listingPrice" gorm:"column:listing_price;type:decimal(10,2)"`
	ListingGain        *decimal.Decimal `json:"listingGain" gorm:"column:listing_gain;type:decimal(5,2)"`
	CurrentMarketPrice *decimal.Decimal `json:"currentMarketPrice" gorm:"column:current_market_price;type:decimal(10,2)"`
	CurrentReturn      *decimal.Decimal `json:"currentReturn" gorm:"column:current_return;type:decimal(5,2)"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`

	// Associations (loaded on demand, never serialized directly)
	Company   *Company   `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Documents []Document `json:"-" gorm:"foreignKey:IPOID;constraint:OnDelete:CASCADE"`
}

func (IPO) TableName() string {
	return "ipos"
}

// IPOWithCompany is a response-only projection: the IPO row joined with its
// company and augmented with its full document list.
type IPOWithCompany struct {
	IPO
	Company   *Company   `json:"company"`
	Documents []Document `json:"documents"`
}
