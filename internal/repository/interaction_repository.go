package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"gorm.io/gorm"
)

type InteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

// ListByContact returns a contact's interactions, newest first
func (r *InteractionRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]domain.Interaction, error) {
	var interactions []domain.Interaction
	err := r.db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("date DESC, created_at DESC").
		Find(&interactions).Error
	return interactions, err
}

// LogEmailSent records a sent email as an interaction and stamps the
// contact's last_contacted date in the same transaction
func (r *InteractionRepository) LogEmailSent(ctx context.Context, interaction *domain.Interaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(interaction).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Contact{}).
			Where("id = ?", interaction.ContactID).
			Update("last_contacted", interaction.Date).Error
	})
}
