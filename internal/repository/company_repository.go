package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).
		Preload("Contacts").
		First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) List(ctx context.Context, page, pageSize int) ([]domain.Company, int64, error) {
	var companies []domain.Company
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Order("name").
		Offset(offset).
		Limit(pageSize).
		Find(&companies).Error

	return companies, total, err
}

// GetByIDs fetches companies for association wiring
func (r *CompanyRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Company, error) {
	var companies []domain.Company
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Company{}, "id = ?", id).Error
}
