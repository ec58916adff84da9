package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/storage"
)

func TestAdvanceFirstSessionStartsStreak(t *testing.T) {
	got := Advance(model.Stats{}, "2026-02-09", 1500)
	assert.Equal(t, model.Stats{CurrentStreak: 1, LastStudyDate: "2026-02-09", TotalFocusMinutes: 25}, got)
}

func TestAdvanceSameDayIsIdempotentForStreak(t *testing.T) {
	s := Advance(model.Stats{}, "2026-02-09", 1500)
	s = Advance(s, "2026-02-09", 1500)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 50, s.TotalFocusMinutes)
}

func TestAdvanceConsecutiveDayExtends(t *testing.T) {
	s := model.Stats{CurrentStreak: 4, LastStudyDate: "2026-02-28"}
	s = Advance(s, "2026-03-01", 60)
	assert.Equal(t, 5, s.CurrentStreak)
	assert.Equal(t, model.Date("2026-03-01"), s.LastStudyDate)
}

func TestAdvanceGapResetsToOne(t *testing.T) {
	for _, last := range []model.Date{"2026-02-07", "2026-01-01", "2026-02-10"} {
		s := Advance(model.Stats{CurrentStreak: 9, LastStudyDate: last}, "2026-02-09", 60)
		assert.Equal(t, 1, s.CurrentStreak, "last=%s", last)
	}
}

func TestSessionMinutesRounding(t *testing.T) {
	cases := map[int]int{0: 0, 5: 0, 29: 0, 30: 1, 89: 1, 90: 2, 1500: 25, -10: 0}
	for secs, want := range cases {
		assert.Equal(t, want, SessionMinutes(secs), "seconds=%d", secs)
	}
}

func TestTrackerPersistsAndResets(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	tr, err := Open(ctx, store)
	require.NoError(t, err)

	now := time.Date(2026, 2, 9, 20, 0, 0, 0, time.Local)
	_, err = tr.RecordSession(ctx, now.AddDate(0, 0, -1), 1500)
	require.NoError(t, err)
	got, err := tr.RecordSession(ctx, now, 1500)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentStreak)

	reopened, err := Open(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, got, reopened.Stats())

	require.NoError(t, reopened.Reset(ctx))
	assert.Equal(t, model.Stats{}, reopened.Stats())
}

func TestStatsDocumentShape(t *testing.T) {
	store := storage.NewMemoryStore()
	tr, err := Open(context.Background(), store)
	require.NoError(t, err)
	require.NoError(t, tr.Reset(context.Background()))

	raw, ok := store.Raw(storage.KeyStats)
	require.True(t, ok)
	assert.JSONEq(t, `{"currentStreak":0,"lastStudyDate":null,"totalFocusMinutes":0}`, string(raw))
}
