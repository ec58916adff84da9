// Package stats keeps the study streak, cumulative focus minutes and the
// badges derived from them.
package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/storage"
)

type Tracker struct {
	store storage.Store
	state model.Stats
}

func Open(ctx context.Context, store storage.Store) (*Tracker, error) {
	t := &Tracker{store: store}
	if _, err := storage.Load(ctx, store, storage.KeyStats, &t.state); err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	if t.state.CurrentStreak < 0 {
		t.state.CurrentStreak = 0
	}
	if t.state.TotalFocusMinutes < 0 {
		t.state.TotalFocusMinutes = 0
	}
	return t, nil
}

func (t *Tracker) Stats() model.Stats { return t.state }

// Advance applies one completed session on day today to s. A second session on
// the same day leaves the streak alone; a session the day after the last one
// extends it; anything else starts over at 1.
func Advance(s model.Stats, today model.Date, seconds int) model.Stats {
	switch {
	case s.LastStudyDate == today:
	case !s.LastStudyDate.IsZero() && s.LastStudyDate == today.AddDays(-1):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	s.LastStudyDate = today
	s.TotalFocusMinutes += SessionMinutes(seconds)
	return s
}

// SessionMinutes rounds to the nearest whole minute, halves rounding up.
func SessionMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Round(float64(seconds) / 60))
}

// RecordSession credits a finished session that ended at now (local time).
func (t *Tracker) RecordSession(ctx context.Context, now time.Time, seconds int) (model.Stats, error) {
	t.state = Advance(t.state, model.DateOf(now), seconds)
	return t.state, t.persist(ctx)
}

func (t *Tracker) Reset(ctx context.Context) error {
	t.state = model.Stats{}
	return t.persist(ctx)
}

func (t *Tracker) persist(ctx context.Context) error {
	if err := t.store.Set(ctx, storage.KeyStats, t.state); err != nil {
		return &model.StorageError{Key: storage.KeyStats, Err: err}
	}
	return nil
}
