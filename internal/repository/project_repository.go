package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts the project together with its contact and company
// associations. gorm runs the insert and the join rows in one transaction.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("PrimaryContact").
		Preload("Contacts").
		Preload("Companies").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns a page of projects, optionally filtered by pipeline status
// and service type
func (r *ProjectRepository) List(ctx context.Context, pipelineStatus *domain.PipelineStatus, serviceType string, page, pageSize int) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{})
	if pipelineStatus != nil {
		query = query.Where("pipeline_status = ?", *pipelineStatus)
	}
	if serviceType != "" {
		query = query.Where("type = ?", serviceType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("PrimaryContact").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&projects).Error

	return projects, total, err
}

// ListAll returns every project without pagination for the reporting views
func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// UpdatePipelineStatus writes only the pipeline status column
func (r *ProjectRepository) UpdatePipelineStatus(ctx context.Context, id uuid.UUID, status domain.PipelineStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Update("pipeline_status", status).Error
}

// MarkWon commits the won status together with the confirmed value and
// dates in a single update so the status is never written ahead of them
func (r *ProjectRepository) MarkWon(ctx context.Context, id uuid.UUID, valueKr float64, startDate time.Time, endDate *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"pipeline_status":     domain.PipelineStatusWon,
			"value_kr":            valueKr,
			"probability_percent": 100,
			"start_date":          startDate,
			"end_date":            endDate,
			"status":              domain.ProjectStatusOngoing,
		}).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

// CountByContact counts projects that reference the contact either as
// primary contact or through the project_contacts join table
func (r *ProjectRepository) CountByContact(ctx context.Context, contactID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("primary_contact_id = ? OR id IN (?)",
			contactID,
			r.db.Table("project_contacts").
				Select("project_id").
				Where("contact_id = ?", contactID),
		).
		Count(&total).Error
	return total, err
}

// ReplaceContacts swaps the project's contact links
func (r *ProjectRepository) ReplaceContacts(ctx context.Context, project *domain.Project, contacts []domain.Contact) error {
	return r.db.WithContext(ctx).Model(project).Association("Contacts").Replace(contacts)
}

// ReplaceCompanies swaps the project's company links
func (r *ProjectRepository) ReplaceCompanies(ctx context.Context, project *domain.Project, companies []domain.Company) error {
	return r.db.WithContext(ctx).Model(project).Association("Companies").Replace(companies)
}
