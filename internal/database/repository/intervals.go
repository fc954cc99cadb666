package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jask/tomato/internal/database"
)

// Interval is a finished focus or break interval.
type Interval struct {
	ID          string
	Kind        string
	Length      time.Duration
	CompletedAt time.Time
	CaughtUp    bool
}

// IntervalRepo stores the interval journal.
type IntervalRepo struct{ db *sql.DB }

func NewIntervalRepo(db *sql.DB) *IntervalRepo { return &IntervalRepo{db: db} }

const insertInterval = `INSERT INTO intervals(id, kind, length_seconds, completed_at, caught_up) VALUES(?, ?, ?, ?, ?)`

// AddAll inserts ivs atomically.
func (r *IntervalRepo) AddAll(ctx context.Context, ivs []Interval) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertInterval)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, iv := range ivs {
			if _, err := stmt.ExecContext(ctx,
				iv.ID, iv.Kind, int64(iv.Length/time.Second), database.Normalize(iv.CompletedAt), iv.CaughtUp); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListRecent returns up to limit intervals, newest first.
func (r *IntervalRepo) ListRecent(ctx context.Context, limit int) ([]Interval, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind, length_seconds, completed_at, caught_up FROM intervals ORDER BY completed_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanIntervals(rows)
}

// ListBetween returns intervals completed in [from, to), oldest first.
func (r *IntervalRepo) ListBetween(ctx context.Context, from, to time.Time) ([]Interval, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind, length_seconds, completed_at, caught_up FROM intervals WHERE completed_at >= ? AND completed_at < ? ORDER BY completed_at ASC, id`,
		database.Normalize(from), database.Normalize(to))
	if err != nil {
		return nil, err
	}
	return scanIntervals(rows)
}

func scanIntervals(rows *sql.Rows) ([]Interval, error) {
	defer rows.Close()
	var out []Interval
	for rows.Next() {
		var (
			iv      Interval
			seconds int64
		)
		if err := rows.Scan(&iv.ID, &iv.Kind, &seconds, &iv.CompletedAt, &iv.CaughtUp); err != nil {
			return nil, err
		}
		iv.Length = time.Duration(seconds) * time.Second
		iv.CompletedAt = iv.CompletedAt.UTC()
		out = append(out, iv)
	}
	return out, rows.Err()
}
