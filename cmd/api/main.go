package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gustmic/consulting-crm-api/docs"
	"github.com/gustmic/consulting-crm-api/internal/auth"
	"github.com/gustmic/consulting-crm-api/internal/config"
	"github.com/gustmic/consulting-crm-api/internal/database"
	"github.com/gustmic/consulting-crm-api/internal/http/handler"
	"github.com/gustmic/consulting-crm-api/internal/http/middleware"
	"github.com/gustmic/consulting-crm-api/internal/http/router"
	"github.com/gustmic/consulting-crm-api/internal/jobs"
	"github.com/gustmic/consulting-crm-api/internal/logger"
	"github.com/gustmic/consulting-crm-api/internal/mailer"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"github.com/gustmic/consulting-crm-api/internal/service"
	"go.uber.org/zap"
)

// @title Consulting CRM API
// @version 1.0
// @description CRM API for contact, interaction, and project pipeline management with a public marketing surface
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@gustmic.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch cfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "crm-staging.gustmic.io"
	case "production":
		docs.SwaggerInfo.Host = "api.gustmic.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		log.Info("Database schema migrated")
	}

	// Initialize repositories
	contactRepo := repository.NewContactRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	blogPostRepo := repository.NewBlogPostRepository(db)
	userRepo := repository.NewUserRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)

	// Initialize auth and outbound email
	tokens := auth.NewTokenManager(&cfg.Auth, cfg.App.Name)
	emailProvider := mailer.NewClient(&cfg.Email)

	// Initialize services
	contactService := service.NewContactService(contactRepo, projectRepo, log)
	interactionService := service.NewInteractionService(interactionRepo, contactRepo, log)
	projectService := service.NewProjectService(projectRepo, contactRepo, companyRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)
	testimonialService := service.NewTestimonialService(testimonialRepo, log)
	blogService := service.NewBlogService(blogPostRepo, log)
	preferencesService := service.NewPreferencesService(prefsRepo)
	emailService := service.NewEmailService(emailProvider, contactRepo, interactionRepo, cfg.Email.DefaultFrom, log)
	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.TokenTTL(), log)
	provisionService := service.NewProvisionService(userRepo, cfg.Admin, log)
	analyticsService := service.NewAnalyticsService(contactRepo, projectRepo, interactionRepo, cfg.Analytics)
	inquiryService := service.NewInquiryService(contactRepo, interactionRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	contactHandler := handler.NewContactHandler(contactService, log)
	interactionHandler := handler.NewInteractionHandler(interactionService, log)
	projectHandler := handler.NewProjectHandler(projectService, log)
	companyHandler := handler.NewCompanyHandler(companyService, log)
	testimonialHandler := handler.NewTestimonialHandler(testimonialService, log)
	blogHandler := handler.NewBlogHandler(blogService, log)
	preferencesHandler := handler.NewPreferencesHandler(preferencesService, log)
	emailHandler := handler.NewEmailHandler(emailService, log)
	authHandler := handler.NewAuthHandler(authService, log)
	adminHandler := handler.NewAdminHandler(provisionService, log)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, log)
	inquiryHandler := handler.NewInquiryHandler(inquiryService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		contactHandler,
		interactionHandler,
		projectHandler,
		companyHandler,
		testimonialHandler,
		blogHandler,
		preferencesHandler,
		emailHandler,
		authHandler,
		adminHandler,
		analyticsHandler,
		inquiryHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.EngagementRecomputeEnabled {
		scheduler = jobs.NewScheduler(log)

		engagementJob := jobs.NewEngagementJob(contactRepo, interactionRepo, log, 10*time.Minute)
		if err := scheduler.AddJob(jobs.EngagementJobName, cfg.Jobs.EngagementRecomputeCron, engagementJob.Run); err != nil {
			log.Error("Failed to register engagement recompute job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with engagement recompute job",
				zap.String("cron_expr", cfg.Jobs.EngagementRecomputeCron),
			)
		}
	} else {
		log.Info("Engagement recompute job disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
