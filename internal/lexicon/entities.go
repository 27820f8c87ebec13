package lexicon

import "github.com/hpungsan/voxplan/internal/plan"

// ExtractEntities runs the cross-cutting extractors over canonical
// text and returns everything found. Attached to every planning
// result for diagnostics and downstream slot-filling; never decides
// which skill wins.
func ExtractEntities(canonical string, ctx plan.UserContext) plan.Entities {
	return plan.Entities{
		Medications:   FindMedications(canonical, ctx.Medications),
		TimeRangeDays: ExtractTimeRange(canonical),
		Ordinal:       ExtractOrdinal(canonical),
		Numbers:       ExtractNumbers(canonical),
	}
}
