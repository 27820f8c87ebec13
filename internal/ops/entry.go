package ops

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hpungsan/voxplan/internal/db"
	"github.com/hpungsan/voxplan/internal/errors"
	"github.com/hpungsan/voxplan/internal/plan"
)

func executeCreatePainEntry(ctx context.Context, database *sql.DB, m *plan.Mutation) (*ExecuteResult, error) {
	payload := m.CreatePainEntry
	if payload.Level < 0 || payload.Level > 10 {
		return nil, errors.NewInvalidRequest("level must be between 0 and 10")
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	row := &db.EntryRow{
		ID:        id,
		Level:     payload.Level,
		CreatedAt: time.Now().Unix(),
	}
	if payload.Note != "" {
		row.Note = &payload.Note
	}
	if err := db.InsertEntry(ctx, database, row); err != nil {
		return nil, err
	}

	// The planner left the undo target blank; fill in the new ID.
	if m.Undo != nil && m.Undo.UndoPlan != nil && m.Undo.UndoPlan.Mutation != nil {
		if del := m.Undo.UndoPlan.Mutation.DeleteEntry; del != nil {
			del.EntryID = id
		}
	}

	return &ExecuteResult{
		Kind:    string(plan.KindMutation),
		Message: fmt.Sprintf("Schmerzeintrag mit Stärke %d gespeichert", payload.Level),
		Data:    map[string]any{"entry_id": id, "level": payload.Level},
		Undo:    undoTicket(m.Undo),
	}, nil
}

func executeDeleteEntry(ctx context.Context, database *sql.DB, m *plan.Mutation) (*ExecuteResult, error) {
	entryID := m.DeleteEntry.EntryID
	if entryID == "" {
		return nil, errors.NewInvalidRequest("entry_id is required")
	}

	if err := db.SoftDeleteEntry(ctx, database, entryID, time.Now().Unix()); err != nil {
		return nil, err
	}

	return &ExecuteResult{
		Kind:    string(plan.KindMutation),
		Message: "Eintrag gelöscht",
		Data:    map[string]any{"entry_id": entryID},
	}, nil
}
