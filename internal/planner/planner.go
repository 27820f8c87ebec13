// Package planner orchestrates one voice-command turn: canonicalize,
// guard, match, disambiguate, apply the safety policy, and emit
// exactly one Plan. One call is a pure, synchronous computation over
// the supplied context snapshot; the planner holds no per-user state.
package planner

import (
	"fmt"
	"time"

	"github.com/hpungsan/voxplan/internal/dialog"
	"github.com/hpungsan/voxplan/internal/guard"
	"github.com/hpungsan/voxplan/internal/lexicon"
	"github.com/hpungsan/voxplan/internal/plan"
	"github.com/hpungsan/voxplan/internal/skill"
)

// genericSuggestions are offered when nothing matched at all.
var genericSuggestions = []string{"hilfe", "öffne tagebuch", "zeige analyse"}

// Planner turns utterances into plans. Safe for concurrent use; the
// registry is read-only and each call works on its own data.
type Planner struct {
	registry *skill.Registry
	policy   Policy
}

// New creates a planner over an immutable registry.
func New(registry *skill.Registry, policy Policy) *Planner {
	return &Planner{registry: registry, policy: policy}
}

// Plan runs one full planning cycle for a fresh utterance.
func (pl *Planner) Plan(utt plan.Utterance, ctx plan.UserContext) *plan.Result {
	start := time.Now()

	canonical := lexicon.Canonicalize(utt.Text)
	diag := plan.Diagnostics{
		CanonicalText: canonical,
		Operator:      string(lexicon.DetectOperator(canonical)),
	}

	g := guard.Check(utt.Text)
	if g.IsNoise {
		diag.NoiseReason = g.Reason
		return pl.finish(plan.NewNotSupported("Das habe ich nicht verstanden", plan.NotSupported{
			Reason:      g.Reason,
			Suggestions: genericSuggestions,
		}), diag, start)
	}

	diag.Entities = lexicon.ExtractEntities(canonical, ctx)

	if g.IsAmbiguousNumber {
		diag.NoiseReason = g.Reason
		return pl.finish(pl.ambiguousNumberPlan(g, ctx, diag.Entities), diag, start)
	}

	matches := pl.registry.FindMatches(skill.MatchInput{
		RawText:   utt.Text,
		Canonical: canonical,
		Context:   ctx,
		Entities:  diag.Entities,
	}, pl.policy.CandidateFloor)
	diag.Candidates = topCandidates(matches, 5)

	if len(matches) == 0 {
		return pl.finish(plan.NewNotSupported("Das kann ich nicht", plan.NotSupported{
			Reason:      "no matching skill",
			Suggestions: genericSuggestions,
		}), diag, start)
	}

	top := matches[0]
	tier := pl.policy.Tier(top.Skill.Risk)

	if top.Result.Confidence < tier.Confirm {
		return pl.finish(pl.actionPicker(matches), diag, start)
	}

	// Several near-equal candidates: ask instead of guessing.
	if len(matches) > 1 && top.Result.Confidence-matches[1].Result.Confidence < pl.policy.AmbiguityWindow {
		return pl.finish(pl.ambiguousChoice(utt.Text, matches, ctx, &diag), diag, start)
	}

	built := pl.buildCandidate(utt.Text, top, ctx)
	built = pl.applySafety(utt.Text, built, &diag)
	built = pl.gate(top.Skill, built)
	return pl.finish(built, diag, start)
}

// Resume feeds a follow-up utterance into a pending slot-filling
// dialogue. The noise guard is suppressed: a bare number is often the
// expected answer here.
func (pl *Planner) Resume(partial plan.PartialPlan, answer string, ctx plan.UserContext) *plan.Result {
	start := time.Now()
	canonical := lexicon.Canonicalize(answer)
	diag := plan.Diagnostics{
		CanonicalText: canonical,
		Entities:      lexicon.ExtractEntities(canonical, ctx),
	}

	if dialog.IsCancel(answer) {
		return pl.finish(plan.NewNotSupported("Okay, abgebrochen", plan.NotSupported{
			Reason: "cancelled by user",
		}), diag, start)
	}

	sk := pl.registry.Get(partial.SkillID)
	if sk == nil {
		return pl.finish(plan.NewNotSupported("Das kann ich nicht", plan.NotSupported{
			Reason:      fmt.Sprintf("unknown skill %q", partial.SkillID),
			Suggestions: genericSuggestions,
		}), diag, start)
	}

	st := dialog.Restore(sk, partial)
	if def, ok := st.NextSlot(); ok {
		v := dialog.ParseAnswer(def.Name, answer, ctx)
		if v.IsZero() {
			// Re-prompt the same slot once more.
			reprompt := skill.RequestSlot(sk, st.Filled, st.Confidence, nil)
			reprompt.SlotFilling.Prompt = "Das habe ich nicht verstanden. " + reprompt.SlotFilling.Prompt
			reprompt.Summary = reprompt.SlotFilling.Prompt
			reprompt.SlotFilling.Partial.RawText = partial.RawText
			return pl.finish(reprompt, diag, start)
		}
		st = st.Fill(def.Name, v)
	}

	built := sk.Build(skill.BuildInput{
		Slots:      st.Filled,
		Context:    ctx,
		Confidence: st.Confidence,
	})
	if built.Kind == plan.KindSlotFilling {
		built.SlotFilling.Partial.RawText = partial.RawText
		return pl.finish(built, diag, start)
	}
	built = pl.applySafety(partial.RawText, built, &diag)
	built = pl.gate(sk, built)
	return pl.finish(built, diag, start)
}

// buildCandidate runs one skill's plan-builder and stamps the raw
// utterance into any slot-filling continuation.
func (pl *Planner) buildCandidate(rawText string, m skill.Match, ctx plan.UserContext) *plan.Plan {
	built := m.Skill.Build(skill.BuildInput{
		Slots:      m.Result.Slots,
		Context:    ctx,
		Confidence: m.Result.Confidence,
	})
	if built.Kind == plan.KindSlotFilling {
		built.SlotFilling.Partial.RawText = rawText
	}
	if built.Kind == plan.KindMutation && built.Mutation.Undo != nil && pl.policy.UndoWindowMs > 0 {
		built.Mutation.Undo.WindowMs = pl.policy.UndoWindowMs
	}
	return built
}

// ambiguousNumberPlan turns a bare 0-10 number into a confirmation
// for a quick pain entry, the most likely reading.
func (pl *Planner) ambiguousNumberPlan(g guard.Result, ctx plan.UserContext, ents plan.Entities) *plan.Plan {
	sk := pl.registry.Get("quick_pain_entry")
	if sk == nil || len(ents.Numbers) == 0 {
		return plan.NewNotSupported("Das habe ich nicht verstanden", plan.NotSupported{
			Reason:      g.Reason,
			Suggestions: genericSuggestions,
		})
	}
	pending := sk.Build(skill.BuildInput{
		Slots:      map[string]plan.SlotValue{"level": plan.NumberSlot(ents.Numbers[0])},
		Context:    ctx,
		Confidence: 0.5,
	})
	return plan.NewConfirm(0.5, g.DisambiguationQuestion, plan.Confirm{
		ConfirmType: plan.ConfirmAmbiguous,
		Question:    g.DisambiguationQuestion,
		Pending:     pending,
	})
}

// ambiguousChoice builds plans for the top candidates and asks which
// one was meant.
func (pl *Planner) ambiguousChoice(rawText string, matches []skill.Match, ctx plan.UserContext, diag *plan.Diagnostics) *plan.Plan {
	n := len(matches)
	if n > 3 {
		n = 3
	}
	plans := make([]*plan.Plan, 0, n)
	for _, m := range matches[:n] {
		built := pl.buildCandidate(rawText, m, ctx)
		built = pl.applySafety(rawText, built, diag)
		plans = append(plans, built)
	}
	top := matches[0]
	return plan.NewConfirm(top.Result.Confidence, "Meintest du:", plan.Confirm{
		ConfirmType:  plan.ConfirmAmbiguous,
		Question:     "Meintest du:",
		Pending:      plans[0],
		Alternatives: plans[1:],
	})
}

// actionPicker is the low-confidence fallback: the top skill labels
// as selectable suggestions plus help.
func (pl *Planner) actionPicker(matches []skill.Match) *plan.Plan {
	suggestions := make([]string, 0, 5)
	for i, m := range matches {
		if i == 4 {
			break
		}
		suggestions = append(suggestions, m.Skill.Label)
	}
	suggestions = append(suggestions, "Hilfe")
	return plan.NewNotSupported("Ich bin nicht sicher, was du meinst", plan.NotSupported{
		Reason:      "confidence below threshold",
		Suggestions: suggestions,
	})
}

// requiredOperator maps a mutation family to the operator family the
// safety policy requires as an explicit whole word in the raw
// utterance. Confidence scores can be fooled by incidental keyword
// overlap; the trigger-word check is independent of scoring.
func requiredOperator(t plan.MutationType) (lexicon.OperatorKind, bool) {
	switch {
	case plan.IsDeleteFamily(t):
		return lexicon.OperatorDelete, true
	case t == plan.MutationEditReminder:
		return lexicon.OperatorEdit, true
	case t == plan.MutationRateIntake:
		return lexicon.OperatorRate, true
	}
	return lexicon.OperatorNone, false
}

// applySafety enforces the explicit-trigger-word policy on mutation
// plans and wraps every delete in a danger confirmation. Downgrades
// are recorded in diagnostics so they are distinguishable from plain
// no-match results.
func (pl *Planner) applySafety(rawText string, built *plan.Plan, diag *plan.Diagnostics) *plan.Plan {
	if built.Kind != plan.KindMutation {
		return built
	}
	m := built.Mutation

	op, needed := requiredOperator(m.MutationType)
	if needed && !lexicon.HasOperatorWord(rawText, op) {
		diag.SafetyDowngrade = fmt.Sprintf("%s_requires_explicit_%s_word", m.MutationType, op)
		words := lexicon.OperatorWords(op)
		return plan.NewNotSupported("Dafür brauche ich ein eindeutiges Kommando", plan.NotSupported{
			Reason:      fmt.Sprintf("missing explicit %s word", op),
			Suggestions: []string{fmt.Sprintf("sag zum Beispiel „%s …“", words[0])},
		})
	}

	if plan.IsDeleteFamily(m.MutationType) {
		diag.SafetyDowngrade = "delete_requires_confirmation"
		question := fmt.Sprintf("Wirklich löschen? %s", built.Summary)
		return plan.NewConfirm(built.Confidence, question, plan.Confirm{
			ConfirmType: plan.ConfirmDanger,
			Question:    question,
			Pending:     built,
		})
	}
	return built
}

// gate applies the per-tier auto-execute thresholds to plans that
// survived the safety policy untouched.
func (pl *Planner) gate(sk *skill.Skill, built *plan.Plan) *plan.Plan {
	switch built.Kind {
	case plan.KindConfirm, plan.KindSlotFilling, plan.KindNotSupported:
		return built
	}
	tier := pl.policy.Tier(sk.Risk)
	if tier.AutoExecute > 0 && built.Confidence >= tier.AutoExecute {
		return built
	}
	question := fmt.Sprintf("Soll ich das tun: %s?", built.Summary)
	return plan.NewConfirm(built.Confidence, question, plan.Confirm{
		ConfirmType: plan.ConfirmAmbiguous,
		Question:    question,
		Pending:     built,
	})
}

// topCandidates converts matches into diagnostics entries.
func topCandidates(matches []skill.Match, n int) []plan.Candidate {
	if len(matches) < n {
		n = len(matches)
	}
	out := make([]plan.Candidate, 0, n)
	for _, m := range matches[:n] {
		out = append(out, plan.Candidate{
			SkillID:    m.Skill.ID,
			Label:      m.Skill.Label,
			Confidence: m.Result.Confidence,
			Reasons:    m.Result.Reasons,
		})
	}
	return out
}

// finish stamps the elapsed time and pairs plan with diagnostics.
func (pl *Planner) finish(p *plan.Plan, diag plan.Diagnostics, start time.Time) *plan.Result {
	diag.ElapsedMs = time.Since(start).Milliseconds()
	return &plan.Result{Plan: p, Diagnostics: diag}
}
