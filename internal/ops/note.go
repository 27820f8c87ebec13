package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hpungsan/voxplan/internal/db"
	"github.com/hpungsan/voxplan/internal/errors"
	"github.com/hpungsan/voxplan/internal/plan"
)

func executeCreateNote(ctx context.Context, database *sql.DB, m *plan.Mutation) (*ExecuteResult, error) {
	body := strings.TrimSpace(m.CreateNote.Text)
	if body == "" {
		return nil, errors.NewInvalidRequest("note text is required")
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	row := &db.NoteRow{
		ID:        id,
		Body:      body,
		CreatedAt: time.Now().Unix(),
	}
	if err := db.InsertNote(ctx, database, row); err != nil {
		return nil, err
	}

	return &ExecuteResult{
		Kind:    string(plan.KindMutation),
		Message: "Notiz gespeichert",
		Data:    map[string]any{"note_id": id},
	}, nil
}
