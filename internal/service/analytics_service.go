package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gustmic/consulting-crm-api/internal/analytics"
	"github.com/gustmic/consulting-crm-api/internal/config"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"gorm.io/gorm"
)

// AnalyticsService assembles the reporting endpoints. All of the math
// lives in the analytics package as pure functions; this layer only
// fetches data and maps results.
type AnalyticsService struct {
	contactRepo     *repository.ContactRepository
	projectRepo     *repository.ProjectRepository
	interactionRepo *repository.InteractionRepository
	cfg             config.AnalyticsConfig
}

func NewAnalyticsService(
	contactRepo *repository.ContactRepository,
	projectRepo *repository.ProjectRepository,
	interactionRepo *repository.InteractionRepository,
	cfg config.AnalyticsConfig,
) *AnalyticsService {
	return &AnalyticsService{
		contactRepo:     contactRepo,
		projectRepo:     projectRepo,
		interactionRepo: interactionRepo,
		cfg:             cfg,
	}
}

func (s *AnalyticsService) assumptions() analytics.Assumptions {
	return analytics.Assumptions{
		DefaultHourlyRate: s.cfg.DefaultHourlyRate,
		CostRatio:         s.cfg.CostRatio,
	}
}

// Engagement computes a contact's current engagement score and tier from
// its interaction history
func (s *AnalyticsService) Engagement(ctx context.Context, contactID uuid.UUID) (*domain.EngagementDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	interactions, err := s.interactionRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}

	score := analytics.EngagementScore(contact, interactions, time.Now().UTC())
	return &domain.EngagementDTO{
		ContactID: contactID,
		Score:     score,
		Tier:      analytics.EngagementTier(score),
	}, nil
}

// Funnel returns the per-stage contact counts and conversion rates
func (s *AnalyticsService) Funnel(ctx context.Context) ([]domain.FunnelStageDTO, error) {
	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	stages := analytics.ConversionFunnel(contacts)
	dtos := make([]domain.FunnelStageDTO, len(stages))
	for i, st := range stages {
		dtos[i] = domain.FunnelStageDTO{
			Stage:          st.Stage,
			Count:          st.Count,
			ConversionRate: st.ConversionRate,
		}
	}
	return dtos, nil
}

// Velocity returns the average pipeline age per non-terminal stage
func (s *AnalyticsService) Velocity(ctx context.Context) ([]domain.VelocityStageDTO, error) {
	contacts, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	stages := analytics.DealVelocity(contacts, nil, time.Now().UTC())
	dtos := make([]domain.VelocityStageDTO, len(stages))
	for i, st := range stages {
		dtos[i] = domain.VelocityStageDTO{
			Stage:   st.Stage,
			AvgDays: st.AvgDays,
		}
	}
	return dtos, nil
}

// Profitability returns per-service-type revenue, cost and margin figures
func (s *AnalyticsService) Profitability(ctx context.Context) ([]domain.ServiceProfitabilityDTO, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	groups := analytics.ServiceProfitability(projects, s.assumptions())
	dtos := make([]domain.ServiceProfitabilityDTO, len(groups))
	for i, g := range groups {
		dtos[i] = domain.ServiceProfitabilityDTO{
			ServiceType:         g.ServiceType,
			ProjectCount:        g.ProjectCount,
			TotalRevenue:        g.TotalRevenue,
			EstimatedHours:      g.EstimatedHours,
			ActualHours:         g.ActualHours,
			TotalCost:           g.TotalCost,
			ProfitMarginPercent: g.ProfitMarginPercent,
			UtilizationPercent:  g.UtilizationPercent,
		}
	}
	return dtos, nil
}

// Capacity returns the ongoing-project load against configured caps
func (s *AnalyticsService) Capacity(ctx context.Context) ([]domain.CapacityRowDTO, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	rows := analytics.Capacity(projects, s.cfg.CapacityCaps)
	dtos := make([]domain.CapacityRowDTO, len(rows))
	for i, r := range rows {
		dtos[i] = domain.CapacityRowDTO{
			ServiceType:    r.ServiceType,
			ActiveProjects: r.ActiveProjects,
			Cap:            r.Cap,
			AvailableSlots: r.AvailableSlots,
		}
	}
	return dtos, nil
}
