package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// QueryOpts configures attempt queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	Topic   string // exact topic match when non-empty
	Correct *bool  // only correct (true) or wrong (false) attempts when set
}

// AttemptData captures one answered drill.
type AttemptData struct {
	Topic    string
	Question string
	Picked   string
	Answer   string
	Correct  bool
	Source   string // "live", "offline" or "proxy"
}

// AttemptRecord is a stored attempt with its ordering metadata.
type AttemptRecord struct {
	Sequence  int64
	Timestamp time.Time
	AttemptData
}

// AttemptStats summarizes the attempt log.
type AttemptStats struct {
	Total   int
	Correct int
}

// Accuracy returns the share of correct attempts in [0, 1].
func (s AttemptStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// AttemptRepo is an append-only log of answered drills. Records are never
// updated; sequence numbers are strictly increasing.
type AttemptRepo interface {
	Append(ctx context.Context, data AttemptData) (int64, error)

	// Query returns matching attempts, newest first.
	Query(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	Stats(ctx context.Context) (AttemptStats, error)

	// Clear deletes the whole log.
	Clear(ctx context.Context) error
}

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Append(ctx context.Context, data AttemptData) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts (timestamp, topic, question, picked, answer, correct, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.Topic, data.Question, data.Picked, data.Answer, data.Correct, data.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("save attempt: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("attempt sequence: %w", err)
	}
	return seq, nil
}

func (r *attemptRepo) Query(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where = append(where, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UTC())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To.UTC())
	}
	if opts.Topic != "" {
		where = append(where, "topic = ?")
		args = append(args, opts.Topic)
	}
	if opts.Correct != nil {
		where = append(where, "correct = ?")
		args = append(args, *opts.Correct)
	}

	q := `SELECT sequence, timestamp, topic, question, picked, answer, correct, source FROM attempts`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var rec AttemptRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.Topic, &rec.Question,
			&rec.Picked, &rec.Answer, &rec.Correct, &rec.Source); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) Stats(ctx context.Context) (AttemptStats, error) {
	var s AttemptStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0) FROM attempts`,
	).Scan(&s.Total, &s.Correct)
	if err != nil {
		return AttemptStats{}, fmt.Errorf("attempt stats: %w", err)
	}
	return s, nil
}

func (r *attemptRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attempts`); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}
