package focus

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/storage"
)

const HistoryLimit = 50

type History struct {
	store   storage.Store
	entries []model.FocusEntry
}

func OpenHistory(ctx context.Context, store storage.Store) (*History, error) {
	h := &History{store: store, entries: make([]model.FocusEntry, 0)}
	if _, err := storage.Load(ctx, store, storage.KeyFocusHistory, &h.entries); err != nil {
		return nil, fmt.Errorf("load focus history: %w", err)
	}
	if h.entries == nil {
		h.entries = make([]model.FocusEntry, 0)
	}
	h.entries = truncate(h.entries)
	return h, nil
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Entries() []model.FocusEntry {
	return append([]model.FocusEntry{}, h.entries...)
}

// Append adds e and drops the oldest entries beyond HistoryLimit.
func (h *History) Append(ctx context.Context, e model.FocusEntry) error {
	h.entries = truncate(append(h.entries, e))
	return h.persist(ctx)
}

// Recent returns the last n entries in chronological order.
func (h *History) Recent(n int) []model.FocusEntry {
	if n <= 0 {
		return []model.FocusEntry{}
	}
	start := len(h.entries) - n
	if start < 0 {
		start = 0
	}
	return append([]model.FocusEntry{}, h.entries[start:]...)
}

type DayBucket struct {
	Day     model.Date `json:"day" yaml:"day"`
	Label   string     `json:"label" yaml:"label"`
	Minutes int        `json:"minutes" yaml:"minutes"`
}

// WeeklyBuckets sums minutes per local calendar day for the seven days
// ending on ref, oldest first.
func (h *History) WeeklyBuckets(ref time.Time) []DayBucket {
	return WeeklyBuckets(h.entries, ref)
}

func WeeklyBuckets(entries []model.FocusEntry, ref time.Time) []DayBucket {
	loc := ref.Location()
	buckets := make([]DayBucket, 7)
	index := make(map[model.Date]int, 7)
	for i := 0; i < 7; i++ {
		day := ref.AddDate(0, 0, i-6)
		key := model.DateOf(day)
		buckets[i] = DayBucket{Day: key, Label: day.Format("Mon")}
		index[key] = i
	}
	for _, e := range entries {
		key := model.DateOf(e.Timestamp.In(loc))
		if i, ok := index[key]; ok {
			buckets[i].Minutes += e.Minutes
		}
	}
	return buckets
}

// Reset empties the log. Used by the full bulk reset.
func (h *History) Reset(ctx context.Context) error {
	h.entries = make([]model.FocusEntry, 0)
	return h.persist(ctx)
}

func (h *History) persist(ctx context.Context) error {
	if err := h.store.Set(ctx, storage.KeyFocusHistory, h.entries); err != nil {
		return &model.StorageError{Key: storage.KeyFocusHistory, Err: err}
	}
	return nil
}

func truncate(entries []model.FocusEntry) []model.FocusEntry {
	if len(entries) <= HistoryLimit {
		return entries
	}
	return append([]model.FocusEntry{}, entries[len(entries)-HistoryLimit:]...)
}
