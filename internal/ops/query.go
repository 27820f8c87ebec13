package ops

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/hpungsan/voxplan/internal/db"
	"github.com/hpungsan/voxplan/internal/errors"
	"github.com/hpungsan/voxplan/internal/plan"
)

// executeQuery answers a read-only question and fills the plan's
// Result map so the caller can render an answer.
func executeQuery(ctx context.Context, database *sql.DB, p *plan.Plan) (*ExecuteResult, error) {
	q := p.Query
	switch q.QueryType {
	case plan.QueryEntryCount:
		return executeEntryCount(ctx, database, p)
	case plan.QueryMedStats:
		return executeMedStats(ctx, database, p)
	default:
		return nil, errors.NewUnsupportedPlan(string(q.QueryType))
	}
}

func executeEntryCount(ctx context.Context, database *sql.DB, p *plan.Plan) (*ExecuteResult, error) {
	since, err := sinceUnix(p.Query.Params["days"], time.Now())
	if err != nil {
		return nil, err
	}
	count, err := db.CountEntries(ctx, database, since)
	if err != nil {
		return nil, err
	}

	p.Query.Result = map[string]any{"count": count}
	msg := fmt.Sprintf("Du hast %d Einträge", count)
	if days := p.Query.Params["days"]; days != "" {
		p.Query.Result["days"] = days
		msg = fmt.Sprintf("Du hast %d Einträge in den letzten %s Tagen", count, days)
	}

	return &ExecuteResult{
		Kind:    string(plan.KindQuery),
		Message: msg,
		Data:    p.Query.Result,
	}, nil
}

func executeMedStats(ctx context.Context, database *sql.DB, p *plan.Plan) (*ExecuteResult, error) {
	medication := p.Query.Params["medication"]
	if medication == "" {
		return nil, errors.NewInvalidRequest("medication parameter is required for med_stats")
	}
	since, err := sinceUnix(p.Query.Params["days"], time.Now())
	if err != nil {
		return nil, err
	}

	count, avg, err := db.IntakeStats(ctx, database, medication, since)
	if err != nil {
		return nil, err
	}

	p.Query.Result = map[string]any{
		"medication": medication,
		"count":      count,
		"avg_rating": math.Round(avg*10) / 10,
	}

	msg := fmt.Sprintf("Keine Einnahmen von %s gefunden", medication)
	if count > 0 {
		msg = fmt.Sprintf("%s: %d Einnahmen, durchschnittliche Wirkung %.1f von 10", medication, count, avg)
	}

	return &ExecuteResult{
		Kind:    string(plan.KindQuery),
		Message: msg,
		Data:    p.Query.Result,
	}, nil
}
