// Package focus holds the countdown timer and the log of finished sessions.
package focus

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Timer is a one-second countdown. Every state change bumps Generation, and a
// tick is only honoured when it carries the current generation, so a tick
// armed before a pause or reset can never land in the new state.
type Timer struct {
	state      State
	remaining  int
	length     int
	generation uint64
}

func NewTimer(lengthSec int) *Timer {
	if lengthSec <= 0 {
		lengthSec = 1
	}
	return &Timer{state: StateIdle, remaining: lengthSec, length: lengthSec}
}

func (t *Timer) State() State       { return t.state }
func (t *Timer) Remaining() int     { return t.remaining }
func (t *Timer) Length() int        { return t.length }
func (t *Timer) Generation() uint64 { return t.generation }
func (t *Timer) Running() bool      { return t.state == StateRunning }

// Progress is the elapsed fraction of the current countdown.
func (t *Timer) Progress() float64 {
	if t.length <= 0 {
		return 0
	}
	p := float64(t.length-t.remaining) / float64(t.length)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Start begins or resumes the countdown. It reports false when the timer was
// already running, in which case no new tick must be armed.
func (t *Timer) Start() (uint64, bool) {
	if t.state == StateRunning {
		return t.generation, false
	}
	if t.remaining <= 0 {
		t.remaining = t.length
	}
	t.state = StateRunning
	t.generation++
	return t.generation, true
}

func (t *Timer) Pause() bool {
	if t.state != StateRunning {
		return false
	}
	t.state = StatePaused
	t.generation++
	return true
}

func (t *Timer) Reset() {
	t.state = StateIdle
	t.remaining = t.length
	t.generation++
}

// SetLength changes the configured session length. An idle timer picks it up
// at once; a running or paused countdown keeps going and the new length only
// applies from the next reset or completion.
func (t *Timer) SetLength(sec int) {
	if sec <= 0 {
		return
	}
	t.length = sec
	if t.state == StateIdle {
		t.remaining = sec
	}
}

type TickResult struct {
	// Accepted is false for stale or out-of-state ticks, which change nothing.
	Accepted  bool
	Completed bool
	// Rearm tells the caller to schedule the next tick with Generation.
	Rearm      bool
	Generation uint64
	Remaining  int
}

// Tick consumes one elapsed second.
func (t *Timer) Tick(generation uint64) TickResult {
	if t.state != StateRunning || generation != t.generation {
		return TickResult{Generation: t.generation, Remaining: t.remaining}
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return TickResult{Accepted: true, Rearm: true, Generation: t.generation, Remaining: t.remaining}
	}
	t.state = StateIdle
	t.remaining = t.length
	t.generation++
	return TickResult{Accepted: true, Completed: true, Generation: t.generation, Remaining: t.remaining}
}
