package analytics

import (
	"sort"

	"github.com/gustmic/consulting-crm-api/internal/domain"
)

// CapacityRow compares the number of currently ongoing projects of one
// service type against its configured cap.
type CapacityRow struct {
	ServiceType    string
	ActiveProjects int
	Cap            int
	AvailableSlots int
}

// Capacity reports, for every capped service type, how many ongoing
// projects of that type exist and how many slots remain. Types without
// a cap are omitted; AvailableSlots never goes below 0.
func Capacity(projects []domain.Project, caps map[string]int) []CapacityRow {
	active := make(map[string]int)
	for _, p := range projects {
		if p.Status != domain.ProjectStatusOngoing {
			continue
		}
		serviceType := p.Type
		if serviceType == "" {
			serviceType = UnspecifiedServiceType
		}
		active[serviceType]++
	}

	rows := make([]CapacityRow, 0, len(caps))
	for serviceType, limit := range caps {
		row := CapacityRow{
			ServiceType:    serviceType,
			ActiveProjects: active[serviceType],
			Cap:            limit,
		}
		if remaining := limit - row.ActiveProjects; remaining > 0 {
			row.AvailableSlots = remaining
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ServiceType < rows[j].ServiceType
	})
	return rows
}
