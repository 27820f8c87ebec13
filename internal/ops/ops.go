package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/voxplan/internal/config"
	"github.com/hpungsan/voxplan/internal/errors"
	"github.com/hpungsan/voxplan/internal/plan"
)

// List limits
const (
	DefaultEntryListLimit = 20
	MaxEntryListLimit     = 100
	RecentEntryLimit      = 10
)

// ExecuteResult is the outcome of running a plan against storage.
// For navigation and list plans Data carries what the UI should show;
// for mutations Undo carries the revert ticket when one applies.
type ExecuteResult struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	Undo    *UndoTicket    `json:"undo,omitempty"`
}

// UndoTicket is an executable revert handed back to the caller. The
// plan inside is complete (IDs resolved) and valid until ExpiresAtMs.
type UndoTicket struct {
	Plan        *plan.Plan `json:"plan"`
	ExpiresAtMs int64      `json:"expires_at_ms"`
}

// ExecutePlan runs a finalized plan. Confirm and slot-filling plans
// are rejected; they must be resolved through the dialogue first.
func ExecutePlan(ctx context.Context, database *sql.DB, cfg *config.Config, p *plan.Plan) (*ExecuteResult, error) {
	if p == nil {
		return nil, errors.NewInvalidRequest("plan is required")
	}
	if err := p.Validate(); err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	switch p.Kind {
	case plan.KindNavigate:
		return executeNavigate(p)
	case plan.KindOpenEntry:
		return executeOpenEntry(ctx, database, p)
	case plan.KindOpenList:
		return executeOpenList(ctx, database, p)
	case plan.KindQuery:
		return executeQuery(ctx, database, p)
	case plan.KindMutation:
		return executeMutation(ctx, database, cfg, p)
	case plan.KindConfirm, plan.KindSlotFilling:
		return nil, errors.NewNotConfirmable(string(p.Kind))
	case plan.KindNotSupported:
		return &ExecuteResult{
			Kind:    string(plan.KindNotSupported),
			Message: p.NotSupported.Reason,
			Data:    map[string]any{"suggestions": p.NotSupported.Suggestions},
		}, nil
	default:
		return nil, errors.NewUnsupportedPlan(string(p.Kind))
	}
}

func executeMutation(ctx context.Context, database *sql.DB, cfg *config.Config, p *plan.Plan) (*ExecuteResult, error) {
	m := p.Mutation
	switch m.MutationType {
	case plan.MutationCreateReminder:
		return executeCreateReminder(ctx, database, m)
	case plan.MutationEditReminder:
		return executeEditReminder(ctx, database, m)
	case plan.MutationDeleteReminder:
		return executeDeleteReminder(ctx, database, m)
	case plan.MutationCreateNote:
		return executeCreateNote(ctx, database, m)
	case plan.MutationRateIntake:
		return executeRateIntake(ctx, database, m)
	case plan.MutationCreatePainEntry:
		return executeCreatePainEntry(ctx, database, m)
	case plan.MutationDeleteEntry:
		return executeDeleteEntry(ctx, database, m)
	default:
		return nil, errors.NewUnsupportedPlan(string(m.MutationType))
	}
}

// undoTicket resolves an UndoSpec into an executable ticket. Returns
// nil when the mutation carries no undo.
func undoTicket(spec *plan.UndoSpec) *UndoTicket {
	if spec == nil || spec.UndoPlan == nil {
		return nil
	}
	return &UndoTicket{
		Plan:        spec.UndoPlan,
		ExpiresAtMs: time.Now().UnixMilli() + spec.WindowMs,
	}
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// sinceUnix converts a "days" parameter into a Unix lower bound.
// Empty or non-positive means no bound (returns 0).
func sinceUnix(days string, now time.Time) (int64, error) {
	if days == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(days)
	if err != nil || n < 0 {
		return 0, errors.NewInvalidRequest("days must be a non-negative integer")
	}
	if n == 0 {
		return 0, nil
	}
	return now.AddDate(0, 0, -n).Unix(), nil
}
