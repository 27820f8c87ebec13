package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/voxplan/internal/db"
	"github.com/hpungsan/voxplan/internal/plan"
)

// LoadUserContext assembles the planning context from storage: the
// medication list and the most recent diary entries.
func LoadUserContext(ctx context.Context, database *sql.DB) (*plan.UserContext, error) {
	meds, err := db.ListMedications(ctx, database)
	if err != nil {
		return nil, err
	}
	entryIDs, err := db.RecentEntryIDs(ctx, database, RecentEntryLimit)
	if err != nil {
		return nil, err
	}

	uc := &plan.UserContext{
		RecentEntryIDs: entryIDs,
		Timezone:       time.Local.String(),
		Language:       "de",
	}
	for _, m := range meds {
		uc.Medications = append(uc.Medications, plan.Medication{ID: m.ID, Name: m.Name})
	}
	return uc, nil
}
