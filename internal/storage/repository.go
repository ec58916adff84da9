package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Document keys, one JSON document per logical entity.
const (
	KeyTasks        = "studyd.tasks.v1"
	KeySettings     = "studyd.settings.v1"
	KeyNotes        = "studyd.notes.v1"
	KeyMoods        = "studyd.moods.v1"
	KeyStats        = "studyd.stats.v1"
	KeyAchievements = "studyd.achievements.v1"
	KeyFocusHistory = "studyd.focus_history.v1"
)

// Store persists JSON-serializable documents under string keys. Each key is
// read and written independently; there are no cross-key transactions.
type Store interface {
	// Get decodes the document at key into dest, or returns ErrNotFound.
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Load reads key into dest and reports whether the document existed.
func Load(ctx context.Context, s Store, key string, dest any) (bool, error) {
	err := s.Get(ctx, key, dest)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
