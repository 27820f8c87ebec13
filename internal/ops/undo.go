package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/voxplan/internal/config"
	"github.com/hpungsan/voxplan/internal/errors"
)

// ExecuteUndo runs the revert plan from an UndoTicket, rejecting
// tickets whose window has passed.
func ExecuteUndo(ctx context.Context, database *sql.DB, cfg *config.Config, ticket *UndoTicket) (*ExecuteResult, error) {
	if ticket == nil || ticket.Plan == nil {
		return nil, errors.NewInvalidRequest("undo ticket is required")
	}
	if ticket.ExpiresAtMs > 0 && time.Now().UnixMilli() > ticket.ExpiresAtMs {
		return nil, errors.NewInvalidRequest("undo window has expired")
	}
	return ExecutePlan(ctx, database, cfg, ticket.Plan)
}
