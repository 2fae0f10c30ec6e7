package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by ent's SQL builders and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(QuizEventsTable.Name).
		Columns("sequence", "timestamp", "action", "user_id", "username", "pool_size", "answered", "correct", "early").
		Values(seqNum, time.Now().UTC(), data.Action, data.UserID, data.Username, data.PoolSize, data.Answered, data.Correct, data.Early).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, userID string, opts QueryOpts) ([]QuizEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp", "action", "user_id", "username", "pool_size", "answered", "correct", "early").
		From(entsql.Table(QuizEventsTable.Name))
	if userID != "" {
		sel.Where(entsql.EQ("user_id", userID))
	}
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var events []QuizEvent
	for rows.Next() {
		var e QuizEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Action, &e.UserID, &e.Username,
			&e.PoolSize, &e.Answered, &e.Correct, &e.Early); err != nil {
			return nil, fmt.Errorf("scan quiz event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// applyQueryOpts adds sequence bounds, newest-first ordering and the limit.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
