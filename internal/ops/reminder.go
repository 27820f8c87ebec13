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

func executeCreateReminder(ctx context.Context, database *sql.DB, m *plan.Mutation) (*ExecuteResult, error) {
	payload := m.CreateReminder
	if payload.Medication == "" || payload.Time == "" {
		return nil, errors.NewInvalidRequest("medication and time are required")
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	now := time.Now().Unix()

	row := &db.ReminderRow{
		ID:         id,
		Medication: payload.Medication,
		ClockTime:  payload.Time,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if payload.MedicationID != "" {
		row.MedicationID = &payload.MedicationID
	}
	if err := db.InsertReminder(ctx, database, row); err != nil {
		return nil, err
	}

	// The planner built the undo against the medication name; now
	// that the row exists, address it by ID.
	if m.Undo != nil && m.Undo.UndoPlan != nil && m.Undo.UndoPlan.Mutation != nil {
		if del := m.Undo.UndoPlan.Mutation.DeleteReminder; del != nil {
			del.ReminderID = id
		}
	}

	return &ExecuteResult{
		Kind:    string(plan.KindMutation),
		Message: fmt.Sprintf("Erinnerung für %s um %s erstellt", payload.Medication, payload.Time),
		Data:    map[string]any{"reminder_id": id},
		Undo:    undoTicket(m.Undo),
	}, nil
}

func executeEditReminder(ctx context.Context, database *sql.DB, m *plan.Mutation) (*ExecuteResult, error) {
	payload := m.EditReminder
	if payload.NewTime == "" {
		return nil, errors.NewInvalidRequest("new_time is required")
	}

	reminder, err := resolveReminder(ctx, database, payload.ReminderID, payload.Medication)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	if err := db.UpdateReminderTime(ctx, database, reminder.ID, payload.NewTime, now); err != nil {
		return nil, err
	}

	// Undo moves the reminder back to its previous time.
	undo := &plan.UndoSpec{
		WindowMs: undoWindow(m.Undo),
		UndoPlan: plan.NewMutation(1.0,
			fmt.Sprintf("Verschiebe Erinnerung für %s zurück auf %s", reminder.Medication, reminder.ClockTime),
			plan.Mutation{
				MutationType: plan.MutationEditReminder,
				Risk:         plan.RiskMedium,
				EditReminder: &plan.EditReminderPayload{
					ReminderID: reminder.ID,
					Medication: reminder.Medication,
					NewTime:    reminder.ClockTime,
				},
			}),
	}

	return &ExecuteResult{
		Kind:    string(plan.KindMutation),
		Message: fmt.Sprintf("Erinnerung für %s auf %s verschoben", reminder.Medication, payload.NewTime),
		Data:    map[string]any{"reminder_id": reminder.ID, "new_time": payload.NewTime},
		Undo:    undoTicket(undo),
	}, nil
}

func executeDeleteReminder(ctx context.Context, database *sql.DB, m *plan.Mutation) (*ExecuteResult, error) {
	payload := m.DeleteReminder

	reminder, err := resolveReminder(ctx, database, payload.ReminderID, payload.Medication)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	if err := db.SoftDeleteReminder(ctx, database, reminder.ID, now); err != nil {
		return nil, err
	}

	return &ExecuteResult{
		Kind:    string(plan.KindMutation),
		Message: fmt.Sprintf("Erinnerung für %s gelöscht", reminder.Medication),
		Data:    map[string]any{"reminder_id": reminder.ID},
	}, nil
}

// resolveReminder looks up a reminder by ID when given, otherwise by
// medication name.
func resolveReminder(ctx context.Context, database *sql.DB, id, medication string) (*db.ReminderRow, error) {
	if id != "" {
		reminders, err := db.ListReminders(ctx, database)
		if err != nil {
			return nil, err
		}
		for i := range reminders {
			if reminders[i].ID == id {
				return &reminders[i], nil
			}
		}
		return nil, errors.NewNotFound("reminder", id)
	}
	if medication == "" {
		return nil, errors.NewInvalidRequest("reminder_id or medication is required")
	}
	return db.GetReminderByMedication(ctx, database, medication)
}

// undoWindow carries forward the window the planner attached, falling
// back to the stock window when none was set.
func undoWindow(spec *plan.UndoSpec) int64 {
	if spec != nil && spec.WindowMs > 0 {
		return spec.WindowMs
	}
	return 8000
}
