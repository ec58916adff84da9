package planner

import (
	"context"

	"github.com/sandeepkv93/studyd/internal/focus"
	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/notify"
	"github.com/sandeepkv93/studyd/internal/stats"
)

// Tick delivers one elapsed second armed with generation. Stale generations
// are ignored. When the countdown reaches zero the session is credited with
// the configured length, logged, and announced.
func (p *Planner) Tick(ctx context.Context, generation uint64) focus.TickResult {
	res := p.timer.Tick(generation)
	if !res.Accepted {
		p.log.Debug("stale tick ignored", "generation", generation, "current", p.timer.Generation())
		return res
	}
	if res.Completed {
		p.completeSession(ctx)
	}
	return res
}

func (p *Planner) completeSession(ctx context.Context) {
	seconds := p.settings.TimerLength
	now := p.now()
	minutes := stats.SessionMinutes(seconds)

	_, err := p.tracker.RecordSession(ctx, now, seconds)
	p.warn(err)
	p.warn(p.history.Append(ctx, model.FocusEntry{Minutes: minutes, Timestamp: now}))
	p.quote = p.pickQuote()
	p.log.Info("focus session complete", "minutes", minutes, "streak", p.tracker.Stats().CurrentStreak)

	if err := p.sound.Play(ctx, notify.BellSound); err != nil {
		p.warn(err)
	}
	p.emit(ctx, Event{Kind: EventSessionCompleted, Minutes: minutes, Quote: p.quote, Message: "Focus session complete!"})
	p.checkBadges(ctx)
}
