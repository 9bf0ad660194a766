package analytics_test

import (
	"testing"
	"time"

	"github.com/gustmic/consulting-crm-api/internal/analytics"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactInStageAged(stage domain.ContactStage, now time.Time, ageDays int) domain.Contact {
	c := domain.Contact{Stage: stage}
	c.CreatedAt = now.AddDate(0, 0, -ageDays)
	return c
}

func TestDealVelocity_AveragesAgePerStage(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contacts := []domain.Contact{
		contactInStageAged(domain.ContactStageLead, now, 10),
		contactInStageAged(domain.ContactStageLead, now, 20),
		contactInStageAged(domain.ContactStageProspect, now, 6),
	}

	result := analytics.DealVelocity(contacts, nil, now)
	require.Len(t, result, 4, "defaults to the non-terminal stages")

	assert.Equal(t, domain.ContactStageLead, result[0].Stage)
	assert.InDelta(t, 15.0, result[0].AvgDays, 0.001)

	assert.Equal(t, domain.ContactStageProspect, result[1].Stage)
	assert.InDelta(t, 6.0, result[1].AvgDays, 0.001)
}

func TestDealVelocity_EmptyStageIsZero(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	result := analytics.DealVelocity(nil, nil, now)
	require.Len(t, result, 4)
	for _, row := range result {
		assert.Equal(t, 0.0, row.AvgDays)
	}
}

func TestDealVelocity_ClientStageExcludedByDefault(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contacts := []domain.Contact{
		contactInStageAged(domain.ContactStageClient, now, 100),
	}

	result := analytics.DealVelocity(contacts, nil, now)
	for _, row := range result {
		assert.NotEqual(t, domain.ContactStageClient, row.Stage)
	}
}

func TestDealVelocity_ExplicitStageSet(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contacts := []domain.Contact{
		contactInStageAged(domain.ContactStageClient, now, 30),
	}

	result := analytics.DealVelocity(contacts, []domain.ContactStage{domain.ContactStageClient}, now)
	require.Len(t, result, 1)
	assert.InDelta(t, 30.0, result[0].AvgDays, 0.001)
}
