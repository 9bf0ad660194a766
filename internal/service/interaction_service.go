package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/mapper"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InteractionService struct {
	interactionRepo *repository.InteractionRepository
	contactRepo     *repository.ContactRepository
	logger          *zap.Logger
}

func NewInteractionService(
	interactionRepo *repository.InteractionRepository,
	contactRepo *repository.ContactRepository,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		interactionRepo: interactionRepo,
		contactRepo:     contactRepo,
		logger:          logger,
	}
}

// Create logs a touchpoint for a contact. Interactions are append-only;
// there is no update or delete.
func (s *InteractionService) Create(ctx context.Context, req *domain.CreateInteractionRequest) (*domain.InteractionDTO, error) {
	if _, err := s.contactRepo.GetByID(ctx, req.ContactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	interaction := &domain.Interaction{
		ContactID: req.ContactID,
		Type:      req.Type,
		Date:      date,
		Subject:   req.Subject,
		Notes:     req.Notes,
	}

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to create interaction: %w", err)
	}

	s.logger.Info("interaction logged",
		zap.String("contact_id", req.ContactID.String()),
		zap.String("type", string(req.Type)),
	)

	dto := mapper.ToInteractionDTO(interaction)
	return &dto, nil
}

func (s *InteractionService) ListByContact(ctx context.Context, contactID uuid.UUID) ([]domain.InteractionDTO, error) {
	interactions, err := s.interactionRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}

	dtos := make([]domain.InteractionDTO, len(interactions))
	for i := range interactions {
		dtos[i] = mapper.ToInteractionDTO(&interactions[i])
	}
	return dtos, nil
}
