package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jask/tomato/internal/database/repository"
	"github.com/jask/tomato/internal/timer"
)

// Journal records finished intervals. It never affects the running timer:
// callers log and drop its errors.
type Journal struct {
	Intervals *repository.IntervalRepo
	Log       zerolog.Logger
}

// Summary aggregates the journal over a time range.
type Summary struct {
	From, To   time.Time
	Focus      int
	Breaks     int
	CaughtUp   int
	FocusTotal time.Duration
}

// Record stores cs in one transaction.
func (j *Journal) Record(ctx context.Context, cs []timer.Completion) error {
	if len(cs) == 0 {
		return nil
	}
	ivs := make([]repository.Interval, 0, len(cs))
	for _, c := range cs {
		ivs = append(ivs, repository.Interval{
			ID:          uuid.NewString(),
			Kind:        c.Kind.String(),
			Length:      c.Length,
			CompletedAt: c.CompletedAt,
			CaughtUp:    c.CaughtUp,
		})
	}
	if err := j.Intervals.AddAll(ctx, ivs); err != nil {
		return errors.Wrapf(err, "record %d intervals", len(ivs))
	}
	j.Log.Debug().Int("count", len(ivs)).Msg("intervals recorded")
	return nil
}

// Recent returns the last n intervals, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]repository.Interval, error) {
	if n <= 0 {
		n = 10
	}
	ivs, err := j.Intervals.ListRecent(ctx, n)
	return ivs, errors.Wrap(err, "list recent intervals")
}

// Summarize aggregates intervals completed in [from, to).
func (j *Journal) Summarize(ctx context.Context, from, to time.Time) (Summary, error) {
	ivs, err := j.Intervals.ListBetween(ctx, from, to)
	if err != nil {
		return Summary{}, errors.Wrap(err, "list intervals")
	}
	s := Summary{From: from, To: to}
	for _, iv := range ivs {
		switch iv.Kind {
		case timer.KindFocus.String():
			s.Focus++
			s.FocusTotal += iv.Length
		case timer.KindBreak.String():
			s.Breaks++
		}
		if iv.CaughtUp {
			s.CaughtUp++
		}
	}
	return s, nil
}

// Day returns the [start, end) bounds of the calendar day containing t in
// t's location.
func Day(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
