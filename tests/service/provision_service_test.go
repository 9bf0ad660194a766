package service_test

import (
	"context"
	"testing"

	"github.com/gustmic/consulting-crm-api/internal/auth"
	"github.com/gustmic/consulting-crm-api/internal/config"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"github.com/gustmic/consulting-crm-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupProvisionService(t *testing.T, admin config.AdminConfig) (*service.ProvisionService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	return service.NewProvisionService(userRepo, admin, zap.NewNop()), db
}

func TestProvisionService_CreatesAdminAccount(t *testing.T) {
	svc, db := setupProvisionService(t, config.AdminConfig{
		Email:    "admin@gustmic.io",
		Password: "correct horse battery staple",
	})

	dto, err := svc.ProvisionAdmin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "admin@gustmic.io", dto.Email)
	assert.Contains(t, dto.Roles, "admin")
	assert.True(t, dto.IsActive)

	var user domain.User
	require.NoError(t, db.First(&user, "email = ?", "admin@gustmic.io").Error)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "correct horse battery staple"))
	assert.False(t, auth.CheckPassword(user.PasswordHash, "wrong password"))
}

func TestProvisionService_IsIdempotent(t *testing.T) {
	svc, db := setupProvisionService(t, config.AdminConfig{
		Email:    "admin@gustmic.io",
		Password: "first password",
	})

	_, err := svc.ProvisionAdmin(context.Background())
	require.NoError(t, err)
	_, err = svc.ProvisionAdmin(context.Background())
	require.NoError(t, err)

	var userCount int64
	require.NoError(t, db.Model(&domain.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)

	var roleCount int64
	require.NoError(t, db.Model(&domain.UserRole{}).Count(&roleCount).Error)
	assert.Equal(t, int64(1), roleCount, "repeat provisioning never duplicates the role row")
}

func TestProvisionService_ResetsExistingPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)

	first := service.NewProvisionService(userRepo, config.AdminConfig{
		Email:    "admin@gustmic.io",
		Password: "old password",
	}, zap.NewNop())
	_, err := first.ProvisionAdmin(context.Background())
	require.NoError(t, err)

	second := service.NewProvisionService(userRepo, config.AdminConfig{
		Email:    "admin@gustmic.io",
		Password: "new password",
	}, zap.NewNop())
	_, err = second.ProvisionAdmin(context.Background())
	require.NoError(t, err)

	var user domain.User
	require.NoError(t, db.First(&user, "email = ?", "admin@gustmic.io").Error)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "new password"))
	assert.False(t, auth.CheckPassword(user.PasswordHash, "old password"))
}

func TestProvisionService_RequiresConfiguredCredentials(t *testing.T) {
	svc, _ := setupProvisionService(t, config.AdminConfig{})

	_, err := svc.ProvisionAdmin(context.Background())
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
