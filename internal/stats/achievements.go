package stats

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/storage"
)

// Evaluate returns cur with any newly reached badge set, plus the badges that
// flipped in this call. Flags already set are never cleared.
func Evaluate(cur model.Achievements, taskCount, streak int) (model.Achievements, []model.Badge) {
	earned := make([]model.Badge, 0)
	if !cur.FirstTask && taskCount >= 1 {
		cur.FirstTask = true
		earned = append(earned, model.BadgeFirstTask)
	}
	if !cur.FiveTasks && taskCount >= 5 {
		cur.FiveTasks = true
		earned = append(earned, model.BadgeFiveTasks)
	}
	if !cur.ThreeDayStreak && streak >= 3 {
		cur.ThreeDayStreak = true
		earned = append(earned, model.BadgeThreeDayStreak)
	}
	return cur, earned
}

type Badges struct {
	store storage.Store
	state model.Achievements
}

func OpenBadges(ctx context.Context, store storage.Store) (*Badges, error) {
	b := &Badges{store: store}
	if _, err := storage.Load(ctx, store, storage.KeyAchievements, &b.state); err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	return b, nil
}

func (b *Badges) State() model.Achievements { return b.state }

// Check evaluates and persists only when something changed.
func (b *Badges) Check(ctx context.Context, taskCount, streak int) ([]model.Badge, error) {
	next, earned := Evaluate(b.state, taskCount, streak)
	if len(earned) == 0 {
		return nil, nil
	}
	b.state = next
	return earned, b.persist(ctx)
}

// Reset clears every badge. Only the full bulk reset calls this.
func (b *Badges) Reset(ctx context.Context) error {
	b.state = model.Achievements{}
	return b.persist(ctx)
}

func (b *Badges) persist(ctx context.Context) error {
	if err := b.store.Set(ctx, storage.KeyAchievements, b.state); err != nil {
		return &model.StorageError{Key: storage.KeyAchievements, Err: err}
	}
	return nil
}
