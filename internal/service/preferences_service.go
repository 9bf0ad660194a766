package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/mapper"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"gorm.io/gorm"
)

type PreferencesService struct {
	prefsRepo *repository.PreferencesRepository
}

func NewPreferencesService(prefsRepo *repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{prefsRepo: prefsRepo}
}

// Get returns the user's preferences, falling back to defaults when no
// row exists yet
func (s *PreferencesService) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferencesDTO, error) {
	prefs, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.UserPreferencesDTO{
				UserID:       userID,
				ItemsPerPage: 20,
				DateFormat:   "2006-01-02",
				Theme:        "light",
			}, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	dto := mapper.ToUserPreferencesDTO(prefs)
	return &dto, nil
}

// Upsert writes the user's single preferences row, creating or updating
// as needed
func (s *PreferencesService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertPreferencesRequest) (*domain.UserPreferencesDTO, error) {
	prefs := &domain.UserPreferences{
		UserID:       userID,
		ItemsPerPage: req.ItemsPerPage,
		DateFormat:   req.DateFormat,
		Theme:        req.Theme,
	}

	if err := s.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	dto := mapper.ToUserPreferencesDTO(prefs)
	return &dto, nil
}
