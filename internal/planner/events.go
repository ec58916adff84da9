package planner

import (
	"context"
	"time"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/notify"
)

type EventKind string

const (
	EventSessionCompleted EventKind = "session_completed"
	EventBadgeEarned      EventKind = "badge_earned"
	EventWarning          EventKind = "warning"
)

type Event struct {
	Kind    EventKind
	At      time.Time
	Message string
	Badge   model.Badge
	Minutes int
	Quote   string
	Err     error
}

// DrainEvents returns the queued events in emission order and clears the
// queue.
func (p *Planner) DrainEvents() []Event {
	out := p.events
	p.events = nil
	return out
}

func (p *Planner) emit(ctx context.Context, e Event) {
	e.At = p.now()
	p.events = append(p.events, e)
	switch e.Kind {
	case EventSessionCompleted:
		p.desktop(ctx, notify.Notification{Title: "Focus session complete!", Body: e.Quote, At: e.At})
	case EventBadgeEarned:
		p.desktop(ctx, notify.Notification{Title: "Achievement unlocked", Body: e.Badge.Title(), At: e.At})
	}
}

func (p *Planner) desktop(ctx context.Context, n notify.Notification) {
	if err := p.notifier.Send(ctx, n); err != nil {
		p.log.Warn("desktop notification failed", "title", n.Title, "err", err)
	}
}

// warn records a non-fatal error: a failed write or a failed sound. The
// in-memory state stays as it is.
func (p *Planner) warn(err error) {
	if err == nil {
		return
	}
	p.log.Warn("operation degraded", "err", err)
	p.events = append(p.events, Event{Kind: EventWarning, At: p.now(), Message: err.Error(), Err: err})
}

func (p *Planner) checkBadges(ctx context.Context) {
	earned, err := p.badges.Check(ctx, p.tasks.Len(), p.tracker.Stats().CurrentStreak)
	for _, b := range earned {
		p.log.Info("badge earned", "badge", string(b))
		p.emit(ctx, Event{Kind: EventBadgeEarned, Badge: b, Message: "Achievement: " + b.Title()})
	}
	p.warn(err)
}
