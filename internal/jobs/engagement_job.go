package jobs

import (
	"context"
	"time"

	"github.com/gustmic/consulting-crm-api/internal/analytics"
	"github.com/gustmic/consulting-crm-api/internal/repository"
	"go.uber.org/zap"
)

// EngagementJobName is the name of the nightly score refresh job
const EngagementJobName = "engagement_recompute"

// EngagementJob recomputes every contact's stored engagement score.
// Scores decay as interactions age, so the stored column drifts from
// the live value until this refresh runs.
type EngagementJob struct {
	contactRepo     *repository.ContactRepository
	interactionRepo *repository.InteractionRepository
	logger          *zap.Logger
	timeout         time.Duration
}

// NewEngagementJob creates a new engagement recompute job
func NewEngagementJob(
	contactRepo *repository.ContactRepository,
	interactionRepo *repository.InteractionRepository,
	logger *zap.Logger,
	timeout time.Duration,
) *EngagementJob {
	return &EngagementJob{
		contactRepo:     contactRepo,
		interactionRepo: interactionRepo,
		logger:          logger,
		timeout:         timeout,
	}
}

// Run executes the engagement recompute job.
// This is called by the scheduler according to the cron expression.
func (j *EngagementJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	now := time.Now().UTC()
	j.logger.Info("starting engagement recompute job")

	contacts, err := j.contactRepo.ListAll(ctx)
	if err != nil {
		j.logger.Error("engagement recompute failed to list contacts", zap.Error(err))
		return
	}

	updated := 0
	failed := 0
	for i := range contacts {
		contact := &contacts[i]

		interactions, err := j.interactionRepo.ListByContact(ctx, contact.ID)
		if err != nil {
			j.logger.Warn("failed to load interactions",
				zap.String("contact_id", contact.ID.String()),
				zap.Error(err))
			failed++
			continue
		}

		score := analytics.EngagementScore(contact, interactions, now)
		if score == contact.EngagementScore {
			continue
		}

		if err := j.contactRepo.UpdateEngagementScore(ctx, contact.ID, score); err != nil {
			j.logger.Warn("failed to store engagement score",
				zap.String("contact_id", contact.ID.String()),
				zap.Error(err))
			failed++
			continue
		}
		updated++
	}

	j.logger.Info("engagement recompute job finished",
		zap.Int("contacts", len(contacts)),
		zap.Int("updated", updated),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}
