package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompanyService struct {
	DB *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{DB: db}
}

// GetAll returns every company, newest first.
func (s *CompanyService) GetAll(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	return companies, nil
}

// GetByID returns the company with the given id, or nil when absent.
func (s *CompanyService) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).First(&company, "company_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query company: %w", err)
	}
	return &company, nil
}

// GetWithIPOs returns the company together with all of its IPOs, or nil when
// the company itself is absent.
func (s *CompanyService) GetWithIPOs(ctx context.Context, id uint) (*models.CompanyWithIPOs, error) {
	company, err := s.GetByID(ctx, id)
	if err != nil || company == nil {
		return nil, err
	}

	ipos := []models.IPO{}
	if err := s.DB.WithContext(ctx).Find(&ipos, "company_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to query company IPOs: %w", err)
	}

	return &models.CompanyWithIPOs{Company: *company, IPOs: ipos}, nil
}

// Create inserts the company and fills in its generated id and timestamp.
func (s *CompanyService) Create(ctx context.Context, company *models.Company) error {
	if err := s.DB.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"company_id":   company.ID,
		"company_name": company.Name,
	}).Info("Company created successfully")

	return nil
}

// Update applies a partial column change set to the company with the given id
// and returns the updated row, or nil when no row matched. An empty change set
// leaves the row untouched.
func (s *CompanyService) Update(ctx context.Context, id uint, changes map[string]any) (*models.Company, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	if len(changes) > 0 {
		err := s.DB.WithContext(ctx).Model(&models.Company{}).
			Where("company_id = ?", id).Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update company: %w", err)
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the company with the given id and reports whether a row was
// actually removed. Its IPOs and their documents go with it.
func (s *CompanyService) Delete(ctx context.Context, id uint) (bool, error) {
	tx := s.DB.WithContext(ctx).Delete(&models.Company{}, "company_id = ?", id)
	if tx.Error != nil {
		return false, fmt.Errorf("failed to delete company: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}
