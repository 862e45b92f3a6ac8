package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DocumentService struct {
	DB *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{DB: db}
}

// GetByIPOID returns all documents for one IPO in insertion order.
func (s *DocumentService) GetByIPOID(ctx context.Context, ipoID uint) ([]models.Document, error) {
	docs := []models.Document{}
	err := s.DB.WithContext(ctx).Order("document_id").Find(&docs, "ipo_id = ?", ipoID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	return docs, nil
}

// Create inserts the document and fills in its generated id and timestamp. An
// ipoId pointing at a missing IPO surfaces as a constraint violation from the
// store.
func (s *DocumentService) Create(ctx context.Context, doc *models.Document) error {
	if err := s.DB.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"ipo_id":      doc.IPOID,
	}).Info("Document created successfully")

	return nil
}

// Update applies a partial column change set to the document with the given id
// and returns the updated row, or nil when no row matched.
func (s *DocumentService) Update(ctx context.Context, id uint, changes map[string]any) (*models.Document, error) {
	var existing models.Document
	err := s.DB.WithContext(ctx).First(&existing, "document_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	if len(changes) > 0 {
		err := s.DB.WithContext(ctx).Model(&models.Document{}).
			Where("document_id = ?", id).Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update document: %w", err)
		}
	}

	var updated models.Document
	if err := s.DB.WithContext(ctx).First(&updated, "document_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload document: %w", err)
	}
	return &updated, nil
}

// Delete removes the document with the given id and reports whether a row was
// actually removed.
func (s *DocumentService) Delete(ctx context.Context, id uint) (bool, error) {
	tx := s.DB.WithContext(ctx).Delete(&models.Document{}, "document_id = ?", id)
	if tx.Error != nil {
		return false, fmt.Errorf("failed to delete document: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}
