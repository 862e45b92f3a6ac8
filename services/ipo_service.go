package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type IPOService struct {
	DB *gorm.DB
}

func NewIPOService(db *gorm.DB) *IPOService {
	return &IPOService{DB: db}
}

// withCompany lifts a loaded IPO row into the joined response projection.
func withCompany(ipo models.IPO) models.IPOWithCompany {
	company := ipo.Company
	docs := ipo.Documents
	if docs == nil {
		docs = []models.Document{}
	}
	ipo.Company = nil
	ipo.Documents = nil
	return models.IPOWithCompany{IPO: ipo, Company: company, Documents: docs}
}

// GetAll returns every IPO joined with its company and augmented with its
// document list, newest first. The per-row document lookup is batched into a
// single IN query; output content and ordering are unchanged by that.
func (s *IPOService) GetAll(ctx context.Context) ([]models.IPOWithCompany, error) {
	return s.list(ctx, "")
}

// GetByStatus is GetAll restricted to IPOs whose status equals the given value.
func (s *IPOService) GetByStatus(ctx context.Context, status string) ([]models.IPOWithCompany, error) {
	return s.list(ctx, status)
}

func (s *IPOService) list(ctx context.Context, status string) ([]models.IPOWithCompany, error) {
	var ipos []models.IPO
	query := s.DB.WithContext(ctx).Preload("Company").Preload("Documents").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&ipos).Error; err != nil {
		return nil, fmt.Errorf("failed to query IPOs: %w", err)
	}

	result := []models.IPOWithCompany{}
	for _, ipo := range ipos {
		result = append(result, withCompany(ipo))
	}
	return result, nil
}

// GetByID returns the joined projection for one IPO, or nil when absent.
func (s *IPOService) GetByID(ctx context.Context, id uint) (*models.IPOWithCompany, error) {
	var ipo models.IPO
	err := s.DB.WithContext(ctx).Preload("Company").Preload("Documents").
		First(&ipo, "ipo_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query IPO: %w", err)
	}

	joined := withCompany(ipo)
	return &joined, nil
}

// Create inserts the IPO and fills in its generated id and timestamp. A
// companyId pointing at a missing company surfaces as a constraint violation
// from the store.
func (s *IPOService) Create(ctx context.Context, ipo *models.IPO) error {
	if err := s.DB.WithContext(ctx).Create(ipo).Error; err != nil {
		return fmt.Errorf("failed to create IPO: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"ipo_id":     ipo.ID,
		"company_id": ipo.CompanyID,
		"status":     ipo.Status,
	}).Info("IPO created successfully")

	return nil
}

// Update applies a partial column change set to the IPO with the given id and
// returns the updated row (without joins), or nil when no row matched.
func (s *IPOService) Update(ctx context.Context, id uint, changes map[string]any) (*models.IPO, error) {
	var existing models.IPO
	err := s.DB.WithContext(ctx).First(&existing, "ipo_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query IPO: %w", err)
	}

	if len(changes) > 0 {
		err := s.DB.WithContext(ctx).Model(&models.IPO{}).
			Where("ipo_id = ?", id).Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update IPO: %w", err)
		}
	}

	var updated models.IPO
	if err := s.DB.WithContext(ctx).First(&updated, "ipo_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload IPO: %w", err)
	}
	return &updated, nil
}

// Delete removes the IPO with the given id and reports whether a row was
// actually removed. Its documents go with it.
func (s *IPOService) Delete(ctx context.Context, id uint) (bool, error) {
	tx := s.DB.WithContext(ctx).Delete(&models.IPO{}, "ipo_id = ?", id)
	if tx.Error != nil {
		return false, fmt.Errorf("failed to delete IPO: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}
