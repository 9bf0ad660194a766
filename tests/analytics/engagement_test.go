package analytics_test

import (
	"testing"
	"time"

	"github.com/gustmic/consulting-crm-api/internal/analytics"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func daysAgo(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func interactionAt(interactionType domain.InteractionType, date time.Time) domain.Interaction {
	return domain.Interaction{Type: interactionType, Date: date}
}

func TestEngagementScore_NoInteractions(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contact := &domain.Contact{}

	score := analytics.EngagementScore(contact, nil, now)

	assert.Equal(t, 0, score)
	assert.Equal(t, "D", analytics.EngagementTier(score))
}

func TestEngagementScore_SingleRecentEmail(t *testing.T) {
	// One email 5 days ago: 3 (recent) + 1 (frequency) + 0 (followup) + 1 (channel) = 5
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contact := &domain.Contact{}
	interactions := []domain.Interaction{
		interactionAt(domain.InteractionTypeEmail, daysAgo(now, 5)),
	}

	score := analytics.EngagementScore(contact, interactions, now)

	assert.Equal(t, 5, score)
	assert.Equal(t, "B", analytics.EngagementTier(score))
}

func TestEngagementScore_ThirtyDayBoundaryIsExclusive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contact := &domain.Contact{}

	// Exactly 30 days old: outside the recency window, inside the 90-day frequency window
	onBoundary := []domain.Interaction{
		interactionAt(domain.InteractionTypeMeeting, daysAgo(now, 30)),
	}
	assert.Equal(t, 1, analytics.EngagementScore(contact, onBoundary, now))

	// One second inside the window earns the recency points
	justInside := []domain.Interaction{
		interactionAt(domain.InteractionTypeMeeting, daysAgo(now, 30).Add(time.Second)),
	}
	assert.Equal(t, 4, analytics.EngagementScore(contact, justInside, now))
}

func TestEngagementScore_FrequencyCappedAtThree(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contact := &domain.Contact{}

	var interactions []domain.Interaction
	for i := 0; i < 6; i++ {
		interactions = append(interactions, interactionAt(domain.InteractionTypeMeeting, daysAgo(now, 40+i)))
	}

	// All outside the 30-day window, all inside 90 days: frequency alone, capped
	assert.Equal(t, 3, analytics.EngagementScore(contact, interactions, now))
}

func TestEngagementScore_ChannelCappedAtTwo(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contact := &domain.Contact{}

	// Emails and calls older than 90 days still count toward the channel mix
	interactions := []domain.Interaction{
		interactionAt(domain.InteractionTypeEmail, daysAgo(now, 100)),
		interactionAt(domain.InteractionTypeCall, daysAgo(now, 120)),
		interactionAt(domain.InteractionTypeEmail, daysAgo(now, 140)),
	}

	assert.Equal(t, 2, analytics.EngagementScore(contact, interactions, now))
}

func TestEngagementScore_FollowupTodayCounts(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	contact := &domain.Contact{NextFollowup: &today}
	assert.Equal(t, 2, analytics.EngagementScore(contact, nil, now))

	yesterday := today.AddDate(0, 0, -1)
	overdue := &domain.Contact{NextFollowup: &yesterday}
	assert.Equal(t, 0, analytics.EngagementScore(overdue, nil, now))

	future := today.AddDate(0, 0, 7)
	scheduled := &domain.Contact{NextFollowup: &future}
	assert.Equal(t, 2, analytics.EngagementScore(scheduled, nil, now))
}

func TestEngagementScore_ClampedAtTen(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	followup := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	contact := &domain.Contact{NextFollowup: &followup}

	// Max out every component: 3 + 3 + 2 + 2 = 10
	interactions := []domain.Interaction{
		interactionAt(domain.InteractionTypeEmail, daysAgo(now, 1)),
		interactionAt(domain.InteractionTypeCall, daysAgo(now, 2)),
		interactionAt(domain.InteractionTypeEmail, daysAgo(now, 3)),
		interactionAt(domain.InteractionTypeCall, daysAgo(now, 4)),
		interactionAt(domain.InteractionTypeEmail, daysAgo(now, 5)),
	}

	score := analytics.EngagementScore(contact, interactions, now)
	assert.Equal(t, 10, score)
	assert.Equal(t, "A", analytics.EngagementTier(score))
}

func TestEngagementTier_PartitionsFullRange(t *testing.T) {
	expected := map[int]string{
		0: "D", 1: "D",
		2: "C", 3: "C", 4: "C",
		5: "B", 6: "B", 7: "B",
		8: "A", 9: "A", 10: "A",
	}
	for score, tier := range expected {
		assert.Equal(t, tier, analytics.EngagementTier(score), "score %d", score)
	}
}
