package analytics

import (
	"math"

	"github.com/gustmic/consulting-crm-api/internal/domain"
)

// FunnelStage is one row of the conversion funnel. ConversionRate is nil
// for the first stage; for every later stage it is defined as 0 when the
// previous stage is empty, never NaN.
type FunnelStage struct {
	Stage          domain.ContactStage
	Count          int
	ConversionRate *int
}

// ConversionFunnel counts contacts per pipeline stage in the fixed stage
// order and derives stage-to-stage conversion percentages.
//
// This is a cross-sectional snapshot: it reports how many contacts sit at
// each stage right now, not what fraction of entrants to a stage ever
// reached the next one. No stage-entry history is persisted, so cohort
// conversion cannot be derived here.
func ConversionFunnel(contacts []domain.Contact) []FunnelStage {
	counts := make(map[domain.ContactStage]int, len(domain.ContactStageOrder))
	for _, c := range contacts {
		counts[c.Stage]++
	}

	stages := make([]FunnelStage, 0, len(domain.ContactStageOrder))
	for i, stage := range domain.ContactStageOrder {
		row := FunnelStage{Stage: stage, Count: counts[stage]}
		if i > 0 {
			rate := 0
			if prev := stages[i-1].Count; prev > 0 {
				rate = int(math.Round(float64(row.Count) / float64(prev) * 100))
			}
			row.ConversionRate = &rate
		}
		stages = append(stages, row)
	}
	return stages
}
