// Package analytics holds the CRM's pure calculation functions.
// Every function here is deterministic and side-effect free: callers
// fetch rows first and pass them in, together with an explicit clock
// where time matters, so the math is independently testable.
package analytics

import (
	"time"

	"github.com/gustmic/consulting-crm-api/internal/domain"
)

const (
	recentWindowDays    = 30
	frequencyWindowDays = 90

	recencyPoints      = 3
	maxFrequencyPoints = 3
	followupPoints     = 2
	maxChannelPoints   = 2

	// MaxEngagementScore bounds the score; tiers partition [0, MaxEngagementScore].
	MaxEngagementScore = 10
)

// EngagementScore scores a contact 0-10 from its interaction history.
//
// Recency counts interactions strictly within the last 30 days: an
// interaction dated exactly 30 days before now does not count. The
// frequency window (90 days) uses the same strict comparison.
func EngagementScore(contact *domain.Contact, interactions []domain.Interaction, now time.Time) int {
	score := 0

	recentCutoff := now.AddDate(0, 0, -recentWindowDays)
	frequencyCutoff := now.AddDate(0, 0, -frequencyWindowDays)

	recent := false
	frequency := 0
	channel := 0
	for _, in := range interactions {
		if in.Date.After(recentCutoff) {
			recent = true
		}
		if in.Date.After(frequencyCutoff) {
			frequency++
		}
		if in.Type == domain.InteractionTypeEmail || in.Type == domain.InteractionTypeCall {
			channel++
		}
	}

	if recent {
		score += recencyPoints
	}
	score += min(frequency, maxFrequencyPoints)

	if contact.NextFollowup != nil && !contact.NextFollowup.Before(startOfDay(now)) {
		score += followupPoints
	}

	score += min(channel, maxChannelPoints)

	if score > MaxEngagementScore {
		score = MaxEngagementScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

// EngagementTier maps a score to its ordinal tier label.
// The four tiers partition [0,10]: A 8-10, B 5-7, C 2-4, D 0-1.
func EngagementTier(score int) string {
	switch {
	case score >= 8:
		return "A"
	case score >= 5:
		return "B"
	case score >= 2:
		return "C"
	default:
		return "D"
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
