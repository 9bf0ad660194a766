package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/mapper"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	contactRepo *repository.ContactRepository
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	contactRepo *repository.ContactRepository,
	companyRepo *repository.CompanyRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		contactRepo: contactRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.ProjectDTO, error) {
	project := &domain.Project{
		Name:               req.Name,
		Type:               req.Type,
		Description:        req.Description,
		PrimaryContactID:   req.PrimaryContactID,
		PipelineStatus:     domain.PipelineStatusMeetingBooked,
		Status:             domain.ProjectStatusPlanned,
		ValueKr:            req.ValueKr,
		ProbabilityPercent: req.ProbabilityPercent,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		HourlyRate:         req.HourlyRate,
		Notes:              req.Notes,
	}

	if len(req.ContactIDs) > 0 {
		contacts, err := s.contactRepo.GetByIDs(ctx, req.ContactIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve contacts: %w", err)
		}
		project.Contacts = contacts
	}
	if len(req.CompanyIDs) > 0 {
		companies, err := s.companyRepo.GetByIDs(ctx, req.CompanyIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve companies: %w", err)
		}
		project.Companies = companies
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("type", project.Type),
	)

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) List(ctx context.Context, pipelineStatus *domain.PipelineStatus, serviceType string, page, pageSize int) ([]domain.ProjectDTO, int64, error) {
	projects, total, err := s.projectRepo.List(ctx, pipelineStatus, serviceType, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}
	return dtos, total, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectRequest) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.Name = req.Name
	project.Type = req.Type
	project.Description = req.Description
	project.PrimaryContactID = req.PrimaryContactID
	project.ValueKr = req.ValueKr
	project.ProbabilityPercent = req.ProbabilityPercent
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate
	project.HourlyRate = req.HourlyRate
	project.Notes = req.Notes
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.ActualHours != nil {
		project.ActualHours = *req.ActualHours
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	// Each association set is replaced only when its field is present, so a
	// payload carrying just contactIds leaves company links untouched.
	if req.ContactIDs != nil {
		contacts, err := s.contactRepo.GetByIDs(ctx, req.ContactIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve contacts: %w", err)
		}
		if err := s.projectRepo.ReplaceContacts(ctx, project, contacts); err != nil {
			return nil, fmt.Errorf("failed to update project contacts: %w", err)
		}
		project.Contacts = contacts
	}
	if req.CompanyIDs != nil {
		companies, err := s.companyRepo.GetByIDs(ctx, req.CompanyIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve companies: %w", err)
		}
		if err := s.projectRepo.ReplaceCompanies(ctx, project, companies); err != nil {
			return nil, fmt.Errorf("failed to update project companies: %w", err)
		}
		project.Companies = companies
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

// UpdatePipelineStatus moves a project through the pipeline state machine.
// Won and Lost are terminal. A move to Lost must be confirmed, and Won is
// only reachable through Win, never through this path.
func (s *ProjectService) UpdatePipelineStatus(ctx context.Context, id uuid.UUID, req *domain.UpdatePipelineStatusRequest) (*domain.ProjectDTO, error) {
	if !req.PipelineStatus.IsValid() {
		return nil, ErrInvalidInput
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project.PipelineStatus.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot leave %s", ErrTerminalStatus, project.PipelineStatus)
	}
	if req.PipelineStatus == domain.PipelineStatusWon {
		return nil, fmt.Errorf("%w: winning a project requires the win operation", ErrInvalidTransition)
	}
	if req.PipelineStatus == domain.PipelineStatusLost && !req.Confirm {
		return nil, fmt.Errorf("%w: marking a project lost must be confirmed", ErrConfirmationRequired)
	}

	from := project.PipelineStatus
	if err := s.projectRepo.UpdatePipelineStatus(ctx, id, req.PipelineStatus); err != nil {
		return nil, fmt.Errorf("failed to update pipeline status: %w", err)
	}
	project.PipelineStatus = req.PipelineStatus

	s.logger.Info("project pipeline status changed",
		zap.String("project_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(req.PipelineStatus)),
	)

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

// Win commits a project as Won together with its confirmed value and
// dates in one write. The status is never set before the figures are in.
func (s *ProjectService) Win(ctx context.Context, id uuid.UUID, req *domain.WinProjectRequest) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project.PipelineStatus.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot leave %s", ErrTerminalStatus, project.PipelineStatus)
	}
	if req.ValueKr <= 0 || req.StartDate == nil {
		return nil, ErrInvalidInput
	}

	if err := s.projectRepo.MarkWon(ctx, id, req.ValueKr, *req.StartDate, req.EndDate); err != nil {
		return nil, fmt.Errorf("failed to mark project won: %w", err)
	}

	s.logger.Info("project won",
		zap.String("project_id", id.String()),
		zap.Float64("value_kr", req.ValueKr),
	)

	won, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}
	dto := mapper.ToProjectDTO(won)
	return &dto, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("project deleted", zap.String("project_id", id.String()))
	return nil
}
