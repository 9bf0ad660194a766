package analytics_test

import (
	"testing"

	"github.com/gustmic/consulting-crm-api/internal/analytics"
	"github.com/gustmic/consulting-crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceProfitability_SingleProject(t *testing.T) {
	projects := []domain.Project{
		{Type: "Assessment", ValueKr: 150000, ActualHours: 80},
	}

	result := analytics.ServiceProfitability(projects, analytics.DefaultAssumptions())
	require.Len(t, result, 1)

	group := result[0]
	assert.Equal(t, "Assessment", group.ServiceType)
	assert.Equal(t, 1, group.ProjectCount)
	assert.Equal(t, 150000.0, group.TotalRevenue)
	// 150000 / 1500 = 100 estimated hours
	assert.Equal(t, 100, group.EstimatedHours)
	assert.Equal(t, 80, group.ActualHours)
	// 80 * 1500 * 0.7 = 84000
	assert.Equal(t, 84000.0, group.TotalCost)
	// (150000 - 84000) / 150000 = 44%
	assert.Equal(t, 44, group.ProfitMarginPercent)
	// 80 / 100 = 80%
	assert.Equal(t, 80, group.UtilizationPercent)
}

func TestServiceProfitability_ProjectRateOverridesDefault(t *testing.T) {
	rate := 2000.0
	projects := []domain.Project{
		{Type: "Pilot", ValueKr: 200000, ActualHours: 50, HourlyRate: &rate},
	}

	result := analytics.ServiceProfitability(projects, analytics.DefaultAssumptions())
	require.Len(t, result, 1)

	assert.Equal(t, 100, result[0].EstimatedHours)
	assert.Equal(t, 70000.0, result[0].TotalCost)
}

func TestServiceProfitability_ZeroRevenueGroupHasZeroMargin(t *testing.T) {
	projects := []domain.Project{
		{Type: "Pilot", ValueKr: 0, ActualHours: 10},
	}

	result := analytics.ServiceProfitability(projects, analytics.DefaultAssumptions())
	require.Len(t, result, 1)

	assert.Equal(t, 0, result[0].ProfitMarginPercent)
	assert.Equal(t, 0, result[0].UtilizationPercent)
}

func TestServiceProfitability_MissingTypeGroupedAsUnspecified(t *testing.T) {
	projects := []domain.Project{
		{Type: "", ValueKr: 30000},
		{Type: "", ValueKr: 45000},
	}

	result := analytics.ServiceProfitability(projects, analytics.DefaultAssumptions())
	require.Len(t, result, 1)

	assert.Equal(t, analytics.UnspecifiedServiceType, result[0].ServiceType)
	assert.Equal(t, 2, result[0].ProjectCount)
	assert.Equal(t, 75000.0, result[0].TotalRevenue)
}

func TestServiceProfitability_GroupsSortedByServiceType(t *testing.T) {
	projects := []domain.Project{
		{Type: "Pilot", ValueKr: 10000},
		{Type: "Assessment", ValueKr: 10000},
	}

	result := analytics.ServiceProfitability(projects, analytics.DefaultAssumptions())
	require.Len(t, result, 2)
	assert.Equal(t, "Assessment", result[0].ServiceType)
	assert.Equal(t, "Pilot", result[1].ServiceType)
}

func TestCapacity_ReportsSlotsPerCappedType(t *testing.T) {
	projects := []domain.Project{
		{Type: "Assessment", Status: domain.ProjectStatusOngoing},
		{Type: "Pilot", Status: domain.ProjectStatusOngoing},
		{Type: "Pilot", Status: domain.ProjectStatusOngoing},
		{Type: "Pilot", Status: domain.ProjectStatusPlanned},
		{Type: "Assessment", Status: domain.ProjectStatusCompleted},
	}
	caps := map[string]int{"Assessment": 2, "Pilot": 4}

	rows := analytics.Capacity(projects, caps)
	require.Len(t, rows, 2)

	assert.Equal(t, "Assessment", rows[0].ServiceType)
	assert.Equal(t, 1, rows[0].ActiveProjects)
	assert.Equal(t, 1, rows[0].AvailableSlots)

	assert.Equal(t, "Pilot", rows[1].ServiceType)
	assert.Equal(t, 2, rows[1].ActiveProjects)
	assert.Equal(t, 2, rows[1].AvailableSlots)
}

func TestCapacity_OverCapacityNeverNegative(t *testing.T) {
	projects := []domain.Project{
		{Type: "Assessment", Status: domain.ProjectStatusOngoing},
		{Type: "Assessment", Status: domain.ProjectStatusOngoing},
		{Type: "Assessment", Status: domain.ProjectStatusOngoing},
	}
	caps := map[string]int{"Assessment": 2}

	rows := analytics.Capacity(projects, caps)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].ActiveProjects)
	assert.Equal(t, 0, rows[0].AvailableSlots)
}

func TestCapacity_UncappedTypesOmitted(t *testing.T) {
	projects := []domain.Project{
		{Type: "Retainer", Status: domain.ProjectStatusOngoing},
	}
	caps := map[string]int{"Assessment": 2}

	rows := analytics.Capacity(projects, caps)
	require.Len(t, rows, 1)
	assert.Equal(t, "Assessment", rows[0].ServiceType)
}
