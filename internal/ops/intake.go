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

func executeRateIntake(ctx context.Context, database *sql.DB, m *plan.Mutation) (*ExecuteResult, error) {
	payload := m.RateIntake
	if payload.Medication == "" {
		return nil, errors.NewInvalidRequest("medication is required")
	}
	if payload.Rating < 0 || payload.Rating > 10 {
		return nil, errors.NewInvalidRequest("rating must be between 0 and 10")
	}

	// Link to the medication record when the name matches one.
	medicationID := payload.MedicationID
	if medicationID == "" {
		if med, err := db.GetMedicationByName(ctx, database, payload.Medication); err == nil {
			medicationID = med.ID
		}
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := db.InsertIntake(ctx, database, id, medicationID, payload.Medication, payload.Rating, time.Now().Unix()); err != nil {
		return nil, err
	}

	return &ExecuteResult{
		Kind:    string(plan.KindMutation),
		Message: fmt.Sprintf("%s mit %d von 10 bewertet", payload.Medication, payload.Rating),
		Data:    map[string]any{"intake_id": id, "rating": payload.Rating},
	}, nil
}
