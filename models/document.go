package models

import "time"

// Document holds the disclosure files attached to one IPO. The PDF columns
// store public URLs under /uploads, not file contents.
type Document struct {
	ID        uint      `json:"id" gorm:"column:document_id;primaryKey"`
	IPOID     uint      `json:"ipoId" gorm:"column:ipo_id;not null;index"`
	RHPPdf    *string   `json:"rhpPdf" gorm:"column:rhp_pdf;type:varchar(255)"`
	DRHPPdf   *string   `json:"drhpPdf" gorm:"column:drhp_pdf;type:varchar(255)"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Document) TableName() string {
	return "documents"
}
