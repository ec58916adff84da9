package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidInterval = errors.New("scheduler: invalid interval")

type Tick struct {
	Generation uint64
	At         time.Time
}

// Ticker is a cancellable periodic source. Stop blocks until the loop has
// exited, and the output channel is closed afterwards, so no tick is
// delivered once Stop returns.
type Ticker struct {
	mu         sync.Mutex
	interval   time.Duration
	generation uint64
	out        chan Tick
	stopCh     chan struct{}
	doneCh     chan struct{}
	started    bool
	stopped    bool
	dropped    uint64
}

func NewTicker(interval time.Duration, generation uint64) (*Ticker, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Ticker{
		interval:   interval,
		generation: generation,
		out:        make(chan Tick, 1),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}, nil
}

func (t *Ticker) C() <-chan Tick {
	return t.out
}

func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.stopped {
		return
	}
	t.started = true
	go t.loop()
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	close(t.stopCh)
	started := t.started
	t.mu.Unlock()
	if !started {
		close(t.out)
		return
	}
	<-t.doneCh
}

// Dropped counts ticks discarded because the consumer had not taken the
// previous one yet.
func (t *Ticker) Dropped() uint64 {
	return atomic.LoadUint64(&t.dropped)
}

func (t *Ticker) loop() {
	defer close(t.doneCh)
	defer close(t.out)

	clock := time.NewTicker(t.interval)
	defer clock.Stop()
	for {
		select {
		case at := <-clock.C:
			// Re-check so a tick racing with Stop is not delivered.
			select {
			case <-t.stopCh:
				return
			default:
			}
			select {
			case t.out <- Tick{Generation: t.generation, At: at}:
			default:
				atomic.AddUint64(&t.dropped, 1)
			}
		case <-t.stopCh:
			return
		}
	}
}
