// Package planner owns the application state and is its only writer. Every
// mutation goes through Dispatch or Tick; readers use the accessor methods.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sandeepkv93/studyd/internal/focus"
	"github.com/sandeepkv93/studyd/internal/logging"
	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/notify"
	"github.com/sandeepkv93/studyd/internal/stats"
	"github.com/sandeepkv93/studyd/internal/storage"
	"github.com/sandeepkv93/studyd/internal/tasks"
)

type Options struct {
	Now                func() time.Time
	Logger             *slog.Logger
	Sound              notify.SoundPlayer
	Notifier           notify.DesktopNotifier
	SeedWelcome        bool
	DefaultTimerLength int
	// Intn picks a quote index; tests pin it.
	Intn func(n int) int
}

// Planner is not safe for concurrent use. The TUI calls it from its update
// loop and the CLI from a single goroutine.
type Planner struct {
	store    storage.Store
	log      *slog.Logger
	now      func() time.Time
	sound    notify.SoundPlayer
	notifier notify.DesktopNotifier
	intn     func(int) int

	tasks    *tasks.Repository
	tracker  *stats.Tracker
	badges   *stats.Badges
	history  *focus.History
	timer    *focus.Timer
	settings model.Settings
	notes    string
	moods    []model.MoodEntry
	quote    string
	events   []Event
}

// Open loads every document from store. Missing documents start from their
// defaults; a document that fails to decode is an error.
func Open(ctx context.Context, store storage.Store, opts Options) (*Planner, error) {
	p := &Planner{
		store:    store,
		log:      opts.Logger,
		now:      opts.Now,
		sound:    opts.Sound,
		notifier: opts.Notifier,
		intn:     opts.Intn,
		moods:    make([]model.MoodEntry, 0),
	}
	if p.log == nil {
		p.log = logging.Discard()
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.sound == nil {
		p.sound = notify.NoopSoundPlayer{}
	}
	if p.notifier == nil {
		p.notifier = notify.NoopDesktopNotifier{}
	}
	if p.intn == nil {
		p.intn = rand.Intn
	}

	var err error
	if p.tasks, err = tasks.Open(ctx, store, p.now); err != nil {
		return nil, err
	}
	if p.tracker, err = stats.Open(ctx, store); err != nil {
		return nil, err
	}
	if p.badges, err = stats.OpenBadges(ctx, store); err != nil {
		return nil, err
	}
	if n := p.tasks.Dropped(); n > 0 {
		p.warn(fmt.Errorf("skipped %d invalid task record(s)", n))
	}
	if p.history, err = focus.OpenHistory(ctx, store); err != nil {
		return nil, err
	}

	p.settings = model.DefaultSettings()
	if opts.DefaultTimerLength > 0 {
		p.settings.TimerLength = opts.DefaultTimerLength
	}
	if _, err := storage.Load(ctx, store, storage.KeySettings, &p.settings); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	p.settings = p.settings.Normalize()
	if _, err := storage.Load(ctx, store, storage.KeyNotes, &p.notes); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	if _, err := storage.Load(ctx, store, storage.KeyMoods, &p.moods); err != nil {
		return nil, fmt.Errorf("load moods: %w", err)
	}
	if p.moods == nil {
		p.moods = make([]model.MoodEntry, 0)
	}
	p.timer = focus.NewTimer(p.settings.TimerLength)

	if opts.SeedWelcome {
		seeded, err := p.tasks.SeedWelcome(ctx)
		p.warn(err)
		if seeded {
			p.log.Info("seeded welcome tasks")
		}
	}
	p.log.Debug("planner opened", "tasks", p.tasks.Len(), "history", p.history.Len())
	return p, nil
}

func (p *Planner) Today() model.Date { return model.DateOf(p.now()) }

// Tasks lists tasks in the configured sort order, narrowed by filter.
func (p *Planner) Tasks(filter tasks.Filter) []model.Task {
	return p.tasks.List(p.settings.SortMode, filter, p.Today())
}

func (p *Planner) Task(id model.TaskID) (model.Task, error) {
	return p.tasks.Get(id)
}

func (p *Planner) Settings() model.Settings         { return p.settings }
func (p *Planner) Stats() model.Stats               { return p.tracker.Stats() }
func (p *Planner) Achievements() model.Achievements { return p.badges.State() }
func (p *Planner) Notes() string                    { return p.notes }
func (p *Planner) Quote() string                    { return p.quote }

func (p *Planner) Moods() []model.MoodEntry {
	return append([]model.MoodEntry{}, p.moods...)
}

func (p *Planner) History() []model.FocusEntry {
	return p.history.Entries()
}

type TimerView struct {
	State      focus.State
	Remaining  int
	Length     int
	Generation uint64
	Progress   float64
}

func (p *Planner) Timer() TimerView {
	return TimerView{
		State:      p.timer.State(),
		Remaining:  p.timer.Remaining(),
		Length:     p.timer.Length(),
		Generation: p.timer.Generation(),
		Progress:   p.timer.Progress(),
	}
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
