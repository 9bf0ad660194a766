package router_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/auth"
	"github.com/gustmic/consulting-crm-api/internal/config"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/http/handler"
	"github.com/gustmic/consulting-crm-api/internal/http/middleware"
	"github.com/gustmic/consulting-crm-api/internal/http/router"
	"github.com/gustmic/consulting-crm-api/internal/mailer"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"github.com/gustmic/consulting-crm-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupRouter wires the full route tree the way cmd/api does, over an
// in-memory database, so role guards are exercised through real routing.
func setupRouter(t *testing.T) (http.Handler, *gorm.DB, *auth.TokenManager) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.Auth = config.AuthConfig{
		JWTSecret:       "router-test-secret-at-least-32-chars",
		TokenTTLMinutes: 60,
	}
	cfg.ApiKey.Value = "router-test-key"
	tokens := auth.NewTokenManager(&cfg.Auth, "crm-test")

	contactRepo := repository.NewContactRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	blogRepo := repository.NewBlogPostRepository(db)
	userRepo := repository.NewUserRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)

	contactService := service.NewContactService(contactRepo, projectRepo, log)
	interactionService := service.NewInteractionService(interactionRepo, contactRepo, log)
	projectService := service.NewProjectService(projectRepo, contactRepo, companyRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)
	testimonialService := service.NewTestimonialService(testimonialRepo, log)
	blogService := service.NewBlogService(blogRepo, log)
	preferencesService := service.NewPreferencesService(prefsRepo)
	emailService := service.NewEmailService(mailer.NewClient(&cfg.Email), contactRepo, interactionRepo, "hello@gustmic.io", log)
	authService := service.NewAuthService(userRepo, tokens, time.Hour, log)
	provisionService := service.NewProvisionService(userRepo, cfg.Admin, log)
	analyticsService := service.NewAnalyticsService(contactRepo, projectRepo, interactionRepo, cfg.Analytics)
	inquiryService := service.NewInquiryService(contactRepo, interactionRepo, log)

	authMiddleware := auth.NewMiddleware(cfg, tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		handler.NewContactHandler(contactService, log),
		handler.NewInteractionHandler(interactionService, log),
		handler.NewProjectHandler(projectService, log),
		handler.NewCompanyHandler(companyService, log),
		handler.NewTestimonialHandler(testimonialService, log),
		handler.NewBlogHandler(blogService, log),
		handler.NewPreferencesHandler(preferencesService, log),
		handler.NewEmailHandler(emailService, log),
		handler.NewAuthHandler(authService, log),
		handler.NewAdminHandler(provisionService, log),
		handler.NewAnalyticsHandler(analyticsService, log),
		handler.NewInquiryHandler(inquiryService, log),
	)
	return rt.Setup(), db, tokens
}

func issueToken(t *testing.T, tokens *auth.TokenManager, role domain.UserRoleType) string {
	t.Helper()
	user := &domain.User{
		Email:       "router-test@gustmic.io",
		DisplayName: "Router Test",
	}
	user.ID = uuid.New()
	user.Roles = []domain.UserRole{{UserID: user.ID, Role: role}}
	token, err := tokens.IssueToken(user, time.Now().UTC())
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTestimonialWrites_AdminRoleRequired(t *testing.T) {
	h, db, tokens := setupRouter(t)
	userToken := issueToken(t, tokens, domain.RoleUser)

	body := `{"author":"Ola Nordmann","quote":"Fantastisk samarbeid","published":true}`
	rec := doJSON(t, h, http.MethodPost, "/api/v1/testimonials", userToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	require.NoError(t, db.Model(&domain.Testimonial{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "non-admin write must not reach the store")
}

func TestTestimonialWrites_AdminAllowed(t *testing.T) {
	h, db, tokens := setupRouter(t)
	adminToken := issueToken(t, tokens, domain.RoleAdmin)

	body := `{"author":"Ola Nordmann","quote":"Fantastisk samarbeid","published":true}`
	rec := doJSON(t, h, http.MethodPost, "/api/v1/testimonials", adminToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var count int64
	require.NoError(t, db.Model(&domain.Testimonial{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTestimonialReads_OpenToAuthenticatedUsers(t *testing.T) {
	h, _, tokens := setupRouter(t)
	userToken := issueToken(t, tokens, domain.RoleUser)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/testimonials", userToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBlogPostWrites_AdminRoleRequired(t *testing.T) {
	h, db, tokens := setupRouter(t)
	userToken := issueToken(t, tokens, domain.RoleUser)

	body := `{"title":"Ny artikkel","slug":"ny-artikkel","body":"Innhold","published":true}`
	rec := doJSON(t, h, http.MethodPost, "/api/v1/blog-posts", userToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/v1/blog-posts/"+uuid.NewString(), userToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/blog-posts/"+uuid.NewString(), userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	require.NoError(t, db.Model(&domain.BlogPost{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestBlogPostWrites_AdminAllowed(t *testing.T) {
	h, _, tokens := setupRouter(t)
	adminToken := issueToken(t, tokens, domain.RoleAdmin)

	body := `{"title":"Ny artikkel","slug":"ny-artikkel","body":"Innhold","published":true}`
	rec := doJSON(t, h, http.MethodPost, "/api/v1/blog-posts", adminToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestContentWrites_RejectMissingToken(t *testing.T) {
	h, _, _ := setupRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/testimonials", "", `{"author":"X","quote":"Y"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/blog-posts", "", `{"title":"X","slug":"x","body":"Y"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
