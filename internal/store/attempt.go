package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/italienapp/italienapp/internal/progress"
)

// AttemptEvent is a stored attempt with its identity and global order.
type AttemptEvent struct {
	ID       string
	Sequence int64
	progress.Attempt
}

// QueryOpts configures attempt queries.
type QueryOpts struct {
	Limit    int    // max results (0 = unlimited)
	SchedaID string // only this scheda when set
}

// AttemptRepo is the append-only log of exercise attempts. It implements
// progress.AttemptLog.
type AttemptRepo struct {
	db  DBTX
	seq *sequenceCounter
}

var _ progress.AttemptLog = (*AttemptRepo)(nil)

// Append stores a with a fresh id and the next sequence number.
func (r *AttemptRepo) Append(ctx context.Context, a progress.Attempt) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().
		Insert("attempt_events").
		Columns("id", "sequence", "scheda_id", "exercise_id", "score", "total", "open_ended", "at").
		Values(uuid.NewString(), seq, a.SchedaID, a.ExerciseID, a.Score, a.Total, a.OpenEnded, a.At.UTC().Format(time.RFC3339Nano)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

// Recent returns attempts newest first.
func (r *AttemptRepo) Recent(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	sel := builder().
		Select("id", "sequence", "scheda_id", "exercise_id", "score", "total", "open_ended", "at").
		From(entsql.Table("attempt_events")).
		OrderBy(entsql.Desc("sequence"))
	if opts.SchedaID != "" {
		sel = sel.Where(entsql.EQ("scheda_id", opts.SchedaID))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var events []AttemptEvent
	for rows.Next() {
		ev, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return events, nil
}

// Count returns the number of stored attempts.
func (r *AttemptRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table("attempt_events")).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}

// Clear removes every stored attempt.
func (r *AttemptRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete("attempt_events").Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}

func scanAttempt(rows *sql.Rows) (AttemptEvent, error) {
	var (
		ev AttemptEvent
		at string
	)
	err := rows.Scan(&ev.ID, &ev.Sequence, &ev.SchedaID, &ev.ExerciseID,
		&ev.Score, &ev.Total, &ev.OpenEnded, &at)
	if err != nil {
		return AttemptEvent{}, fmt.Errorf("scan attempt: %w", err)
	}
	ev.At, err = time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return AttemptEvent{}, fmt.Errorf("parse attempt time %q: %w", at, err)
	}
	return ev, nil
}
