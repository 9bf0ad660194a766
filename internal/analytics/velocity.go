package analytics

import (
	"time"

	"github.com/gustmic/consulting-crm-api/internal/domain"
)

// VelocityStage reports the average pipeline age of contacts currently in
// a stage. AvgDays is 0 for an empty stage, never NaN.
type VelocityStage struct {
	Stage   domain.ContactStage
	AvgDays float64
}

// NonTerminalStages is the default stage set for velocity: every stage a
// contact can still move out of.
var NonTerminalStages = []domain.ContactStage{
	domain.ContactStageLead,
	domain.ContactStageProspect,
	domain.ContactStageProposal,
	domain.ContactStageContract,
}

// DealVelocity averages, per stage, the whole-day age (now - created_at)
// of each contact currently in that stage.
//
// Ages are measured from contact creation, not from stage entry: no
// stage-transition timestamps exist, so actual dwell time per stage is
// not recoverable. Like the funnel this is a snapshot metric.
func DealVelocity(contacts []domain.Contact, stages []domain.ContactStage, now time.Time) []VelocityStage {
	if stages == nil {
		stages = NonTerminalStages
	}

	result := make([]VelocityStage, 0, len(stages))
	for _, stage := range stages {
		totalDays := 0
		count := 0
		for _, c := range contacts {
			if c.Stage != stage {
				continue
			}
			totalDays += int(now.Sub(c.CreatedAt).Hours() / 24)
			count++
		}

		avg := 0.0
		if count > 0 {
			avg = float64(totalDays) / float64(count)
		}
		result = append(result, VelocityStage{Stage: stage, AvgDays: avg})
	}
	return result
}
