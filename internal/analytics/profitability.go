package analytics

import (
	"math"
	"sort"

	"github.com/gustmic/consulting-crm-api/internal/domain"
)

// UnspecifiedServiceType groups projects without a service type.
const UnspecifiedServiceType = "Unspecified"

// Assumptions carries the business constants the profitability model
// depends on. The defaults mirror the firm's standing assumptions but
// they are configuration, not literals in the math.
type Assumptions struct {
	// DefaultHourlyRate (kr/hour) is used when a project has no rate of its own.
	DefaultHourlyRate float64
	// CostRatio is the assumed cost share of billed hours.
	CostRatio float64
}

// DefaultAssumptions returns the firm's standing model parameters.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		DefaultHourlyRate: 1500,
		CostRatio:         0.7,
	}
}

// ServiceGroup aggregates revenue, hours and derived margins for one
// service type. Hour figures are rounded to whole hours.
type ServiceGroup struct {
	ServiceType         string
	ProjectCount        int
	TotalRevenue        float64
	EstimatedHours      int
	ActualHours         int
	TotalCost           float64
	ProfitMarginPercent int
	UtilizationPercent  int
}

// ServiceProfitability groups projects by service type and derives
// per-group revenue, cost, margin and utilization figures.
//
// Estimated hours back out of revenue at the project's hourly rate (or
// the default); cost is actual hours priced at the same rate times the
// cost ratio. Margin is 0 for zero-revenue groups and utilization is 0
// when either hour figure is 0, so no group ever yields NaN.
func ServiceProfitability(projects []domain.Project, cfg Assumptions) []ServiceGroup {
	type accumulator struct {
		count          int
		revenue        float64
		estimatedHours float64
		actualHours    float64
		cost           float64
	}

	groups := make(map[string]*accumulator)
	for _, p := range projects {
		serviceType := p.Type
		if serviceType == "" {
			serviceType = UnspecifiedServiceType
		}

		acc := groups[serviceType]
		if acc == nil {
			acc = &accumulator{}
			groups[serviceType] = acc
		}

		rate := cfg.DefaultHourlyRate
		if p.HourlyRate != nil && *p.HourlyRate > 0 {
			rate = *p.HourlyRate
		}

		acc.count++
		acc.revenue += p.ValueKr
		if rate > 0 {
			acc.estimatedHours += p.ValueKr / rate
		}
		acc.actualHours += p.ActualHours
		acc.cost += p.ActualHours * rate * cfg.CostRatio
	}

	result := make([]ServiceGroup, 0, len(groups))
	for serviceType, acc := range groups {
		group := ServiceGroup{
			ServiceType:    serviceType,
			ProjectCount:   acc.count,
			TotalRevenue:   acc.revenue,
			EstimatedHours: int(math.Round(acc.estimatedHours)),
			ActualHours:    int(math.Round(acc.actualHours)),
			TotalCost:      acc.cost,
		}
		if acc.revenue > 0 {
			group.ProfitMarginPercent = int(math.Round((acc.revenue - acc.cost) / acc.revenue * 100))
		}
		if acc.estimatedHours > 0 && acc.actualHours > 0 {
			group.UtilizationPercent = int(math.Round(acc.actualHours / acc.estimatedHours * 100))
		}
		result = append(result, group)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ServiceType < result[j].ServiceType
	})
	return result
}
