package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/studyd/internal/focus"
	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/notify"
	"github.com/sandeepkv93/studyd/internal/storage"
	"github.com/sandeepkv93/studyd/internal/tasks"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type failingStore struct {
	*storage.MemoryStore
	fail bool
}

func (s *failingStore) Set(ctx context.Context, key string, value any) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

type stubPlayer struct {
	played []string
	err    error
}

func (p *stubPlayer) Play(_ context.Context, name string) error {
	p.played = append(p.played, name)
	return p.err
}

func openPlanner(t *testing.T, store storage.Store, opts Options) *Planner {
	t.Helper()
	if opts.Now == nil {
		c := &clock{now: time.Date(2026, 2, 9, 10, 0, 0, 0, time.Local)}
		opts.Now = c.Now
	}
	if opts.Intn == nil {
		opts.Intn = func(int) int { return 2 }
	}
	p, err := Open(context.Background(), store, opts)
	require.NoError(t, err)
	return p
}

func runSession(t *testing.T, p *Planner) []focus.TickResult {
	t.Helper()
	ctx := context.Background()
	res, err := p.Dispatch(ctx, StartTimer{})
	require.NoError(t, err)
	require.True(t, res.Arm)
	gen := res.Generation
	var out []focus.TickResult
	for i := 0; i < 10000; i++ {
		tick := p.Tick(ctx, gen)
		out = append(out, tick)
		if !tick.Rearm {
			return out
		}
		gen = tick.Generation
	}
	t.Fatal("session never completed")
	return nil
}

func texts(in []model.Task) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		out = append(out, t.Text)
	}
	return out
}

func TestAddTwoTasksAndListByPriority(t *testing.T) {
	ctx := context.Background()
	p := openPlanner(t, storage.NewMemoryStore(), Options{})

	_, err := p.Dispatch(ctx, AddTask{Text: "Read ch.1", Priority: model.PriorityHigh})
	require.NoError(t, err)
	_, err = p.Dispatch(ctx, AddTask{Text: "Review notes", Priority: model.PriorityLow})
	require.NoError(t, err)
	_, err = p.Dispatch(ctx, SetSortMode{Mode: model.SortPriority})
	require.NoError(t, err)

	assert.Equal(t, 2, p.Dashboard().Counts.Total)
	assert.True(t, p.Achievements().FirstTask)
	assert.False(t, p.Achievements().FiveTasks)
	assert.Equal(t, []string{"Read ch.1", "Review notes"}, texts(p.Tasks(tasks.FilterAll)))

	events := p.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventBadgeEarned, events[0].Kind)
	assert.Equal(t, model.BadgeFirstTask, events[0].Badge)
	assert.Empty(t, p.DrainEvents())
}

func TestAddRejectsBlankText(t *testing.T) {
	p := openPlanner(t, storage.NewMemoryStore(), Options{})
	_, err := p.Dispatch(context.Background(), AddTask{Text: "   "})
	assert.True(t, model.IsValidation(err))
	assert.Equal(t, 0, p.Dashboard().Counts.Total)
	assert.False(t, p.Achievements().FirstTask)
}

func TestShortSessionCreditsZeroMinutes(t *testing.T) {
	ctx := context.Background()
	player := &stubPlayer{}
	p := openPlanner(t, storage.NewMemoryStore(), Options{Sound: player})
	_, err := p.Dispatch(ctx, SetTimerLength{Seconds: 5})
	require.NoError(t, err)

	results := runSession(t, p)
	require.Len(t, results, 5)
	assert.True(t, results[4].Completed)

	assert.Equal(t, 0, p.Stats().TotalFocusMinutes)
	assert.Equal(t, 1, p.Stats().CurrentStreak)
	history := p.History()
	require.Len(t, history, 1)
	assert.Equal(t, 0, history[0].Minutes)
	assert.Equal(t, []string{notify.BellSound}, player.played)
	assert.Equal(t, Quotes()[2], p.Quote())

	timer := p.Timer()
	assert.Equal(t, focus.StateIdle, timer.State)
	assert.Equal(t, 5, timer.Remaining)

	events := p.DrainEvents()
	require.NotEmpty(t, events)
	assert.Equal(t, EventSessionCompleted, events[0].Kind)
	assert.Equal(t, Quotes()[2], events[0].Quote)
}

func TestDesktopNotificationsForBadgesAndSessions(t *testing.T) {
	ctx := context.Background()
	desk := &notify.RecordingNotifier{}
	p := openPlanner(t, storage.NewMemoryStore(), Options{Notifier: desk})
	_, err := p.Dispatch(ctx, AddTask{Text: "Outline essay"})
	require.NoError(t, err)
	_, err = p.Dispatch(ctx, SetTimerLength{Seconds: 2})
	require.NoError(t, err)
	runSession(t, p)

	require.Len(t, desk.Sent, 2)
	assert.Equal(t, "Achievement unlocked", desk.Sent[0].Title)
	assert.Equal(t, model.BadgeFirstTask.Title(), desk.Sent[0].Body)
	assert.Equal(t, "Focus session complete!", desk.Sent[1].Title)
}

func TestSessionAfterYesterdayExtendsStreak(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	now := time.Date(2026, 2, 9, 18, 0, 0, 0, time.Local)
	require.NoError(t, store.Set(ctx, storage.KeyStats, model.Stats{
		CurrentStreak:     2,
		LastStudyDate:     "2026-02-08",
		TotalFocusMinutes: 50,
	}))
	p := openPlanner(t, store, Options{Now: func() time.Time { return now }})
	_, err := p.Dispatch(ctx, SetTimerLength{Seconds: 90})
	require.NoError(t, err)

	runSession(t, p)

	s := p.Stats()
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, model.Date("2026-02-09"), s.LastStudyDate)
	assert.Equal(t, 52, s.TotalFocusMinutes)
	assert.True(t, p.Achievements().ThreeDayStreak)

	var kinds []EventKind
	for _, e := range p.DrainEvents() {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{EventSessionCompleted, EventBadgeEarned}, kinds)
}

func TestPauseCancelsPendingTick(t *testing.T) {
	ctx := context.Background()
	p := openPlanner(t, storage.NewMemoryStore(), Options{})
	res, err := p.Dispatch(ctx, StartTimer{})
	require.NoError(t, err)

	first := p.Tick(ctx, res.Generation)
	require.True(t, first.Accepted)
	_, err = p.Dispatch(ctx, PauseTimer{})
	require.NoError(t, err)

	stale := p.Tick(ctx, first.Generation)
	assert.False(t, stale.Accepted)
	assert.Equal(t, model.DefaultTimerLength-1, p.Timer().Remaining)
	assert.Equal(t, focus.StatePaused, p.Timer().State)

	again, err := p.Dispatch(ctx, StartTimer{})
	require.NoError(t, err)
	assert.True(t, again.Arm)
	dup, err := p.Dispatch(ctx, StartTimer{})
	require.NoError(t, err)
	assert.False(t, dup.Arm)
}

func TestResetTimerStopsCountdown(t *testing.T) {
	ctx := context.Background()
	p := openPlanner(t, storage.NewMemoryStore(), Options{})
	res, err := p.Dispatch(ctx, StartTimer{})
	require.NoError(t, err)
	p.Tick(ctx, res.Generation)
	_, err = p.Dispatch(ctx, ResetTimer{})
	require.NoError(t, err)

	assert.False(t, p.Tick(ctx, res.Generation).Accepted)
	assert.Equal(t, model.DefaultTimerLength, p.Timer().Remaining)
	assert.Empty(t, p.History())
}

func TestUnknownIDsAreIgnored(t *testing.T) {
	ctx := context.Background()
	p := openPlanner(t, storage.NewMemoryStore(), Options{})
	_, err := p.Dispatch(ctx, AddTask{Text: "one"})
	require.NoError(t, err)
	p.DrainEvents()

	for _, a := range []Action{ToggleTask{ID: 42}, DeleteTask{ID: 42}, EditTask{ID: 42}} {
		res, err := p.Dispatch(ctx, a)
		require.NoError(t, err, a.Name())
		assert.Nil(t, res.Task, a.Name())
	}
	assert.Equal(t, 1, p.Dashboard().Counts.Total)
	assert.Empty(t, p.DrainEvents())
}

func TestStorageFailureIsAWarning(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), fail: true}
	p := openPlanner(t, store, Options{})

	res, err := p.Dispatch(ctx, AddTask{Text: "kept in memory"})
	require.NoError(t, err)
	require.NotNil(t, res.Task)
	assert.Equal(t, []string{"kept in memory"}, texts(p.Tasks(tasks.FilterAll)))

	var warnings int
	for _, e := range p.DrainEvents() {
		if e.Kind == EventWarning {
			warnings++
			assert.True(t, model.IsStorage(e.Err))
		}
	}
	assert.GreaterOrEqual(t, warnings, 1)
}

func TestPlaybackFailureDoesNotStopSession(t *testing.T) {
	ctx := context.Background()
	player := &stubPlayer{err: &notify.PlaybackError{Sound: notify.BellSound, Err: notify.ErrNoPlayer}}
	p := openPlanner(t, storage.NewMemoryStore(), Options{Sound: player})
	_, err := p.Dispatch(ctx, SetTimerLength{Seconds: 2})
	require.NoError(t, err)

	runSession(t, p)
	assert.Len(t, p.History(), 1)

	var sawWarning, sawDone bool
	for _, e := range p.DrainEvents() {
		switch e.Kind {
		case EventWarning:
			var pe *notify.PlaybackError
			sawWarning = errors.As(e.Err, &pe)
		case EventSessionCompleted:
			sawDone = true
		}
	}
	assert.True(t, sawWarning)
	assert.True(t, sawDone)
}

func TestSettingsPersistAcrossOpen(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	p := openPlanner(t, store, Options{})
	for _, a := range []Action{
		SetFontSize{Size: model.FontLarge},
		SetSortMode{Mode: model.SortDeadline},
		SetShowDeadlines{Show: false},
		SetCompact{Compact: true},
		SetTimerLength{Seconds: 600},
		SaveNotes{Text: "# Week 1"},
		LogMood{Mood: "focused"},
	} {
		_, err := p.Dispatch(ctx, a)
		require.NoError(t, err, a.Name())
	}

	reopened := openPlanner(t, store, Options{})
	s := reopened.Settings()
	assert.Equal(t, model.FontLarge, s.FontSize)
	assert.Equal(t, model.SortDeadline, s.SortMode)
	assert.False(t, s.ShowDeadlines)
	assert.True(t, s.ShowPriorities)
	assert.True(t, s.Compact)
	assert.Equal(t, 600, s.TimerLength)
	assert.Equal(t, 600, reopened.Timer().Remaining)
	assert.Equal(t, "# Week 1", reopened.Notes())
	require.Len(t, reopened.Moods(), 1)
	assert.Equal(t, "focused", reopened.Moods()[0].Mood)
}

func TestInvalidSettingsAreRejected(t *testing.T) {
	ctx := context.Background()
	p := openPlanner(t, storage.NewMemoryStore(), Options{})
	for _, a := range []Action{SetFontSize{Size: "huge"}, SetSortMode{Mode: "random"}, SetTimerLength{Seconds: 0}, LogMood{}} {
		_, err := p.Dispatch(ctx, a)
		assert.True(t, model.IsValidation(err), a.Name())
	}
	assert.Equal(t, model.DefaultSettings(), p.Settings())
}

func TestResetScopes(t *testing.T) {
	ctx := context.Background()
	p := openPlanner(t, storage.NewMemoryStore(), Options{})
	_, err := p.Dispatch(ctx, AddTask{Text: "one"})
	require.NoError(t, err)
	_, err = p.Dispatch(ctx, SetTimerLength{Seconds: 60})
	require.NoError(t, err)
	runSession(t, p)

	_, err = p.Dispatch(ctx, ResetTasks{})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Dashboard().Counts.Total)
	assert.True(t, p.Achievements().FirstTask)
	assert.Equal(t, 1, p.Stats().TotalFocusMinutes)

	_, err = p.Dispatch(ctx, ResetStats{})
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, p.Stats())
	assert.Len(t, p.History(), 1)

	_, err = p.Dispatch(ctx, ResetAll{})
	require.NoError(t, err)
	assert.Equal(t, model.Achievements{}, p.Achievements())
	assert.Empty(t, p.History())
	assert.Equal(t, model.DefaultSettings(), p.Settings())
	assert.Equal(t, model.DefaultTimerLength, p.Timer().Remaining)
}

func TestSeedWelcomeOnlyWhenEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	p := openPlanner(t, store, Options{SeedWelcome: true})
	assert.Equal(t, 2, p.Dashboard().Counts.Total)

	_, err := p.Dispatch(context.Background(), DeleteTask{ID: p.Tasks(tasks.FilterAll)[0].ID})
	require.NoError(t, err)
	again := openPlanner(t, store, Options{SeedWelcome: true})
	assert.Equal(t, 1, again.Dashboard().Counts.Total)
}

func TestResetTasksIsNotUndoneBySeeding(t *testing.T) {
	store := storage.NewMemoryStore()
	p := openPlanner(t, store, Options{SeedWelcome: true})
	require.Equal(t, 2, p.Dashboard().Counts.Total)

	_, err := p.Dispatch(context.Background(), ResetTasks{})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Dashboard().Counts.Total)

	again := openPlanner(t, store, Options{SeedWelcome: true})
	assert.Equal(t, 0, again.Dashboard().Counts.Total)
}

func TestOpenWarnsAboutInvalidTaskRecords(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), storage.KeyTasks, []model.Task{{ID: 0, Text: "broken"}}))
	p := openPlanner(t, store, Options{})
	assert.Equal(t, 0, p.Dashboard().Counts.Total)

	events := p.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventWarning, events[0].Kind)
	assert.Contains(t, events[0].Message, "1 invalid task")
}

func TestAddRejectsUnknownPriority(t *testing.T) {
	p := openPlanner(t, storage.NewMemoryStore(), Options{})
	_, err := p.Dispatch(context.Background(), AddTask{Text: "read", Priority: model.Priority("urgnet")})
	assert.True(t, model.IsValidation(err))
	assert.Equal(t, 0, p.Dashboard().Counts.Total)
}

func TestDashboardAndCharts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.Local)
	p := openPlanner(t, storage.NewMemoryStore(), Options{Now: func() time.Time { return now }})

	for i, d := range []model.Date{"2026-02-20", "", "2026-02-10"} {
		_, err := p.Dispatch(ctx, AddTask{Text: string(rune('a' + i)), Deadline: d})
		require.NoError(t, err)
		now = now.Add(time.Millisecond)
	}
	first := p.Tasks(tasks.FilterAll)
	_, err := p.Dispatch(ctx, ToggleTask{ID: first[len(first)-1].ID})
	require.NoError(t, err)
	_, err = p.Dispatch(ctx, SetTimerLength{Seconds: 120})
	require.NoError(t, err)
	runSession(t, p)

	d := p.Dashboard()
	assert.Equal(t, 3, d.Counts.Total)
	assert.Equal(t, 1, d.Counts.Completed)
	assert.Equal(t, 33, d.Percent)
	assert.Equal(t, 2, d.TotalFocusMinutes)
	assert.Equal(t, []string{"c"}, texts(d.Upcoming))

	c := p.Charts()
	assert.Equal(t, 1, c.Completed)
	assert.Equal(t, 2, c.Remaining)
	require.Len(t, c.Weekly, 7)
	assert.Equal(t, 2, c.Weekly[6].Minutes)
	require.Len(t, c.Recent, 1)
	assert.Equal(t, "2026-02-09", c.Recent[0].Label)

	snap := p.Snapshot()
	assert.Len(t, snap.Tasks, 3)
	assert.Len(t, snap.FocusHistory, 1)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "00:05", FormatClock(5))
	assert.Equal(t, "00:00", FormatClock(-3))
}
