package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InquiryService turns public contact-form submissions into CRM leads
type InquiryService struct {
	contactRepo     *repository.ContactRepository
	interactionRepo *repository.InteractionRepository
	logger          *zap.Logger
}

func NewInquiryService(
	contactRepo *repository.ContactRepository,
	interactionRepo *repository.InteractionRepository,
	logger *zap.Logger,
) *InquiryService {
	return &InquiryService{
		contactRepo:     contactRepo,
		interactionRepo: interactionRepo,
		logger:          logger,
	}
}

// Submit records an inquiry. A new sender becomes a Lead; a known sender
// keeps their existing contact and stage. Either way the message is
// logged as a Note interaction.
func (s *InquiryService) Submit(ctx context.Context, req *domain.InquiryRequest) error {
	contact, err := s.contactRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up contact: %w", err)
		}

		firstName, lastName := splitName(req.Name)
		contact = &domain.Contact{
			FirstName: firstName,
			LastName:  lastName,
			Email:     req.Email,
			Stage:     domain.ContactStageLead,
			Notes:     req.Company,
		}
		if err := s.contactRepo.Create(ctx, contact); err != nil {
			return fmt.Errorf("failed to create lead: %w", err)
		}
		s.logger.Info("inquiry created new lead",
			zap.String("contact_id", contact.ID.String()),
		)
	}

	interaction := &domain.Interaction{
		ContactID: contact.ID,
		Type:      domain.InteractionTypeNote,
		Date:      time.Now().UTC(),
		Subject:   "Website inquiry",
		Notes:     req.Message,
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return fmt.Errorf("failed to log inquiry: %w", err)
	}

	return nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return full, ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
