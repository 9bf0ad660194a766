package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gustmic/consulting-crm-api/internal/auth"
	"github.com/gustmic/consulting-crm-api/internal/config"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/mapper"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProvisionService struct {
	userRepo *repository.UserRepository
	admin    config.AdminConfig
	logger   *zap.Logger
}

func NewProvisionService(userRepo *repository.UserRepository, admin config.AdminConfig, logger *zap.Logger) *ProvisionService {
	return &ProvisionService{
		userRepo: userRepo,
		admin:    admin,
		logger:   logger,
	}
}

// ProvisionAdmin creates the configured admin account or resets its
// password when the account already exists. Running it again is a no-op
// beyond the password reset, and the unique role index guarantees a
// single admin role row either way.
func (s *ProvisionService) ProvisionAdmin(ctx context.Context) (*domain.UserDTO, error) {
	if s.admin.Email == "" || s.admin.Password == "" {
		return nil, fmt.Errorf("%w: admin email and password must be configured", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(s.admin.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, s.admin.Email)
	switch {
	case err == nil:
		if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
			return nil, fmt.Errorf("failed to reset admin password: %w", err)
		}
		s.logger.Info("admin password reset", zap.String("email", s.admin.Email))
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &domain.User{
			Email:        s.admin.Email,
			DisplayName:  "Administrator",
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create admin user: %w", err)
		}
		s.logger.Info("admin account created", zap.String("email", s.admin.Email))
	default:
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	if err := s.userRepo.EnsureRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to ensure admin role: %w", err)
	}

	provisioned, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload admin user: %w", err)
	}

	dto := mapper.ToUserDTO(provisioned)
	return &dto, nil
}
