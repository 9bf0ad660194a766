package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/mailer"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EmailService struct {
	provider        mailer.Provider
	contactRepo     *repository.ContactRepository
	interactionRepo *repository.InteractionRepository
	defaultFrom     string
	logger          *zap.Logger
}

func NewEmailService(
	provider mailer.Provider,
	contactRepo *repository.ContactRepository,
	interactionRepo *repository.InteractionRepository,
	defaultFrom string,
	logger *zap.Logger,
) *EmailService {
	return &EmailService{
		provider:        provider,
		contactRepo:     contactRepo,
		interactionRepo: interactionRepo,
		defaultFrom:     defaultFrom,
		logger:          logger,
	}
}

// Send resolves the contact's address, delivers through the provider and
// records the touch. The interaction and last_contacted update happen
// only after the provider accepts the send; a provider failure writes
// nothing.
func (s *EmailService) Send(ctx context.Context, req *domain.SendEmailRequest) (*domain.SendEmailResponse, error) {
	contact, err := s.contactRepo.GetByID(ctx, req.ContactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact.Email == "" {
		return nil, fmt.Errorf("%w: contact has no email address", ErrInvalidInput)
	}

	from := req.FromEmail
	if from == "" {
		from = s.defaultFrom
	}

	providerID, err := s.provider.Send(ctx, mailer.Message{
		From:    from,
		To:      contact.Email,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		s.logger.Error("email send failed",
			zap.String("contact_id", contact.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	interaction := &domain.Interaction{
		ContactID: contact.ID,
		Type:      domain.InteractionTypeEmail,
		Date:      time.Now().UTC(),
		Subject:   req.Subject,
		Notes:     req.Body,
	}
	if err := s.interactionRepo.LogEmailSent(ctx, interaction); err != nil {
		// Delivery already happened; surface the store failure as-is
		return nil, fmt.Errorf("failed to record sent email: %w", err)
	}

	s.logger.Info("email sent",
		zap.String("contact_id", contact.ID.String()),
		zap.String("provider_id", providerID),
	)

	return &domain.SendEmailResponse{
		ProviderID:    providerID,
		InteractionID: interaction.ID.String(),
	}, nil
}
