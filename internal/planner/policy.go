package planner

import (
	"github.com/hpungsan/voxplan/internal/config"
	"github.com/hpungsan/voxplan/internal/plan"
	"github.com/hpungsan/voxplan/internal/skill"
)

// TierThresholds gates one risk tier. AutoExecute zero means the tier
// is never auto-executed.
type TierThresholds struct {
	// AutoExecute is the minimum confidence for returning the plan
	// unwrapped.
	AutoExecute float64 `json:"auto_execute"`

	// Confirm is the minimum confidence for offering the plan behind
	// a confirmation; below it the planner falls back to the action
	// picker.
	Confirm float64 `json:"confirm"`
}

// Policy holds the planner's decision constants. The defaults are
// empirically chosen; they are configuration with stated defaults,
// not hard invariants, and the property tests pin their behavior.
type Policy struct {
	// AmbiguityWindow is the confidence gap under which the two top
	// candidates are treated as ambiguous.
	AmbiguityWindow float64 `json:"ambiguity_window"`

	// CandidateFloor drops matches below this confidence; the planner
	// hands it to the registry on every FindMatches call.
	CandidateFloor float64 `json:"candidate_floor"`

	Low    TierThresholds `json:"low"`
	Medium TierThresholds `json:"medium"`
	High   TierThresholds `json:"high"`

	// UndoWindowMs overrides the undo window attached to undoable
	// mutations.
	UndoWindowMs int64 `json:"undo_window_ms"`
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		AmbiguityWindow: 0.15,
		CandidateFloor:  skill.DefaultCandidateFloor,
		Low:             TierThresholds{AutoExecute: 0.80, Confirm: 0.55},
		Medium:          TierThresholds{AutoExecute: 0.90, Confirm: 0.70},
		High:            TierThresholds{AutoExecute: 0, Confirm: 0.2}, // never auto, always confirm
		UndoWindowMs:    8000,
	}
}

// PolicyFromConfig maps loaded configuration onto a Policy, falling
// back to the defaults for unset values.
func PolicyFromConfig(cfg *config.Config) Policy {
	p := DefaultPolicy()
	if cfg == nil {
		return p
	}
	if cfg.AmbiguityWindow > 0 {
		p.AmbiguityWindow = cfg.AmbiguityWindow
	}
	if cfg.CandidateFloor > 0 {
		p.CandidateFloor = cfg.CandidateFloor
	}
	if cfg.LowAutoExecute > 0 {
		p.Low.AutoExecute = cfg.LowAutoExecute
	}
	if cfg.LowConfirm > 0 {
		p.Low.Confirm = cfg.LowConfirm
	}
	if cfg.MediumAutoExecute > 0 {
		p.Medium.AutoExecute = cfg.MediumAutoExecute
	}
	if cfg.MediumConfirm > 0 {
		p.Medium.Confirm = cfg.MediumConfirm
	}
	if cfg.UndoWindowMs > 0 {
		p.UndoWindowMs = cfg.UndoWindowMs
	}
	return p
}

// Tier returns the thresholds for a risk tier.
func (p Policy) Tier(r plan.Risk) TierThresholds {
	switch r {
	case plan.RiskMedium:
		return p.Medium
	case plan.RiskHigh:
		return p.High
	default:
		return p.Low
	}
}
