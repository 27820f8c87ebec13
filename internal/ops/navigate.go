package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hpungsan/voxplan/internal/db"
	"github.com/hpungsan/voxplan/internal/plan"
)

// executeNavigate needs no storage; it echoes the target view so the
// UI layer can switch to it.
func executeNavigate(p *plan.Plan) (*ExecuteResult, error) {
	data := map[string]any{"target_view": p.Navigate.TargetView}
	if len(p.Navigate.Payload) > 0 {
		data["payload"] = p.Navigate.Payload
	}
	return &ExecuteResult{
		Kind:    string(plan.KindNavigate),
		Message: fmt.Sprintf("Öffne %s", p.Navigate.TargetView),
		Data:    data,
	}, nil
}

// executeOpenEntry verifies the entry exists before handing it to the UI.
func executeOpenEntry(ctx context.Context, database *sql.DB, p *plan.Plan) (*ExecuteResult, error) {
	entry, err := db.GetEntry(ctx, database, p.OpenEntry.EntryID)
	if err != nil {
		return nil, err
	}
	return &ExecuteResult{
		Kind:    string(plan.KindOpenEntry),
		Message: p.Summary,
		Data:    map[string]any{"entry": entry},
	}, nil
}

func executeOpenList(ctx context.Context, database *sql.DB, p *plan.Plan) (*ExecuteResult, error) {
	data := map[string]any{"list_type": p.OpenList.ListType}
	if len(p.OpenList.Filter) > 0 {
		data["filter"] = p.OpenList.Filter
	}

	// For entry lists, include the rows so a voice-only client can
	// read them out without a second round trip.
	if p.OpenList.ListType == "entries" {
		entries, err := db.ListEntries(ctx, database, DefaultEntryListLimit)
		if err != nil {
			return nil, err
		}
		data["entries"] = entries
	}

	return &ExecuteResult{
		Kind:    string(plan.KindOpenList),
		Message: p.Summary,
		Data:    data,
	}, nil
}
