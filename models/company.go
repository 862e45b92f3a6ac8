package models

import "time"

type Company struct {
	ID        uint      `json:"id" gorm:"column:company_id;primaryKey"`
	Name      string    `json:"name" gorm:"column:company_name;type:varchar(255);not null"`
	Logo      *string   `json:"logo" gorm:"column:company_logo;type:varchar(255)"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Company) TableName() string {
	return "companies"
}

// CompanyWithIPOs is a response-only projection, not a stored entity.
type CompanyWithIPOs struct {
	Company
	IPOs []IPO `json:"ipos"`
}
