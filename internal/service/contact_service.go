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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContactService struct {
	contactRepo *repository.ContactRepository
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

func NewContactService(
	contactRepo *repository.ContactRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func (s *ContactService) Create(ctx context.Context, req *domain.CreateContactRequest) (*domain.ContactDTO, error) {
	contact := &domain.Contact{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Title:        req.Title,
		CompanyID:    req.CompanyID,
		Stage:        req.Stage,
		Tags:         datatypes.JSONSlice[string](req.Tags),
		Notes:        req.Notes,
		NextFollowup: req.NextFollowup,
	}

	// New contacts enter the pipeline as leads
	if contact.Stage == "" {
		contact.Stage = domain.ContactStageLead
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.logger.Info("contact created",
		zap.String("contact_id", contact.ID.String()),
		zap.String("stage", string(contact.Stage)),
	)

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) List(ctx context.Context, stage *domain.ContactStage, search string, page, pageSize int) ([]domain.ContactDTO, int64, error) {
	contacts, total, err := s.contactRepo.List(ctx, stage, search, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	dtos := make([]domain.ContactDTO, len(contacts))
	for i := range contacts {
		dtos[i] = mapper.ToContactDTO(&contacts[i])
	}
	return dtos, total, nil
}

func (s *ContactService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateContactRequest) (*domain.ContactDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email
	contact.Phone = req.Phone
	contact.Title = req.Title
	contact.CompanyID = req.CompanyID
	contact.Tags = datatypes.JSONSlice[string](req.Tags)
	contact.Notes = req.Notes
	contact.NextFollowup = req.NextFollowup

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

// UpdateStage moves a contact between pipeline stages. The admin board
// drags cards freely, so any valid stage is accepted.
func (s *ContactService) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.ContactStage) (*domain.ContactDTO, error) {
	if !stage.IsValid() {
		return nil, ErrInvalidInput
	}

	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	from := contact.Stage
	contact.Stage = stage
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact stage: %w", err)
	}

	s.logger.Info("contact stage changed",
		zap.String("contact_id", contact.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(stage)),
	)

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

// Delete removes a contact unless projects still reference it. The check
// happens before any delete is issued; a referenced contact never reaches
// the repository delete.
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.contactRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get contact: %w", err)
	}

	count, err := s.projectRepo.CountByContact(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count referencing projects: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d project(s) reference this contact", ErrContactInUse, count)
	}

	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	s.logger.Info("contact deleted", zap.String("contact_id", id.String()))
	return nil
}
