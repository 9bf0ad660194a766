package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gustmic/consulting-crm-api/internal/auth"
	"github.com/gustmic/consulting-crm-api/internal/config"
	"github.com/gustmic/consulting-crm-api/internal/database"
	"github.com/gustmic/consulting-crm-api/internal/http/handler"
	"github.com/gustmic/consulting-crm-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/gustmic/consulting-crm-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	db                 *gorm.DB
	authMiddleware     *auth.Middleware
	rateLimiter        *middleware.RateLimiter
	contactHandler     *handler.ContactHandler
	interactionHandler *handler.InteractionHandler
	projectHandler     *handler.ProjectHandler
	companyHandler     *handler.CompanyHandler
	testimonialHandler *handler.TestimonialHandler
	blogHandler        *handler.BlogHandler
	preferencesHandler *handler.PreferencesHandler
	emailHandler       *handler.EmailHandler
	authHandler        *handler.AuthHandler
	adminHandler       *handler.AdminHandler
	analyticsHandler   *handler.AnalyticsHandler
	inquiryHandler     *handler.InquiryHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	contactHandler *handler.ContactHandler,
	interactionHandler *handler.InteractionHandler,
	projectHandler *handler.ProjectHandler,
	companyHandler *handler.CompanyHandler,
	testimonialHandler *handler.TestimonialHandler,
	blogHandler *handler.BlogHandler,
	preferencesHandler *handler.PreferencesHandler,
	emailHandler *handler.EmailHandler,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	analyticsHandler *handler.AnalyticsHandler,
	inquiryHandler *handler.InquiryHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		db:                 db,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
		contactHandler:     contactHandler,
		interactionHandler: interactionHandler,
		projectHandler:     projectHandler,
		companyHandler:     companyHandler,
		testimonialHandler: testimonialHandler,
		blogHandler:        blogHandler,
		preferencesHandler: preferencesHandler,
		emailHandler:       emailHandler,
		authHandler:        authHandler,
		adminHandler:       adminHandler,
		analyticsHandler:   analyticsHandler,
		inquiryHandler:     inquiryHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes for the marketing site (no auth required)
		r.Get("/public/testimonials", rt.testimonialHandler.ListPublishedTestimonials)
		r.Get("/public/blog-posts", rt.blogHandler.ListPublishedPosts)
		r.Get("/public/blog-posts/{slug}", rt.blogHandler.GetPublishedPost)
		r.Post("/public/inquiries", rt.inquiryHandler.SubmitInquiry)

		// Login
		r.Post("/auth/login", rt.authHandler.Login)

		// System endpoints guarded by the shared API key
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireAPIKey)
			r.Post("/admin/provision", rt.adminHandler.ProvisionAdmin)
		})

		// Protected admin panel routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)

			// Preferences
			r.Get("/preferences", rt.preferencesHandler.GetPreferences)
			r.Put("/preferences", rt.preferencesHandler.UpsertPreferences)

			// Contacts
			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", rt.contactHandler.ListContacts)
				r.Post("/", rt.contactHandler.CreateContact)
				r.Get("/{id}", rt.contactHandler.GetContact)
				r.Put("/{id}", rt.contactHandler.UpdateContact)
				r.Put("/{id}/stage", rt.contactHandler.UpdateContactStage)
				r.Delete("/{id}", rt.contactHandler.DeleteContact)
				r.Get("/{id}/interactions", rt.interactionHandler.ListContactInteractions)
			})

			// Interactions (append-only)
			r.Post("/interactions", rt.interactionHandler.CreateInteraction)

			// Projects
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.ListProjects)
				r.Post("/", rt.projectHandler.CreateProject)
				r.Get("/{id}", rt.projectHandler.GetProject)
				r.Put("/{id}", rt.projectHandler.UpdateProject)
				r.Put("/{id}/pipeline-status", rt.projectHandler.UpdatePipelineStatus)
				r.Post("/{id}/win", rt.projectHandler.WinProject)
				r.Delete("/{id}", rt.projectHandler.DeleteProject)
			})

			// Companies
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", rt.companyHandler.ListCompanies)
				r.Post("/", rt.companyHandler.CreateCompany)
				r.Get("/{id}", rt.companyHandler.GetCompany)
				r.Put("/{id}", rt.companyHandler.UpdateCompany)
				r.Delete("/{id}", rt.companyHandler.DeleteCompany)
			})

			// Testimonials (writes publish to the marketing site, admin only)
			r.Route("/testimonials", func(r chi.Router) {
				r.Get("/", rt.testimonialHandler.ListTestimonials)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/", rt.testimonialHandler.CreateTestimonial)
					r.Put("/{id}", rt.testimonialHandler.UpdateTestimonial)
					r.Delete("/{id}", rt.testimonialHandler.DeleteTestimonial)
				})
			})

			// Blog posts (writes publish to the marketing site, admin only)
			r.Route("/blog-posts", func(r chi.Router) {
				r.Get("/", rt.blogHandler.ListPosts)
				r.Get("/{id}", rt.blogHandler.GetPost)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/", rt.blogHandler.CreatePost)
					r.Put("/{id}", rt.blogHandler.UpdatePost)
					r.Delete("/{id}", rt.blogHandler.DeletePost)
				})
			})

			// Outbound email
			r.Post("/emails", rt.emailHandler.SendEmail)

			// Analytics
			r.Route("/analytics", func(r chi.Router) {
				r.Get("/contacts/{id}/engagement", rt.analyticsHandler.GetEngagement)
				r.Get("/funnel", rt.analyticsHandler.GetFunnel)
				r.Get("/velocity", rt.analyticsHandler.GetVelocity)
				r.Get("/profitability", rt.analyticsHandler.GetProfitability)
				r.Get("/capacity", rt.analyticsHandler.GetCapacity)
			})
		})
	})

	return r
}
