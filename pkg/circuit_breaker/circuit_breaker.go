package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return "unknown"
}

var ErrOpenCB = errors.New("circuit breaker is open")

type Settings struct {
	// Window is how many recent calls are tracked.
	Window int
	// Timeout is how long an open breaker rejects calls before it lets a trial call through.
	Timeout time.Duration
	// FailureRatio of failed calls in the window opens the breaker.
	FailureRatio float64
	// RecoveryRequests is how many consecutive half-open successes close it again.
	RecoveryRequests int
	// OnStateChange, if set, is called with the lock held.
	OnStateChange func(from, to Status)
}

type CircuitBreaker interface {
	Call(service func() error) error
	State() Status
	Reset()
}

type circuitBreaker struct {
	mu        sync.Mutex
	settings  Settings
	state     Status
	openedAt  time.Time
	outcomes  window
	successes int
	now       func() time.Time
}

func New(s Settings) CircuitBreaker {
	if s.Window < 1 {
		s.Window = 1
	}
	return &circuitBreaker{
		settings: s,
		state:    Closed,
		outcomes: newWindow(s.Window),
		now:      time.Now,
	}
}

func (cb *circuitBreaker) Call(service func() error) error {
	if err := cb.before(); err != nil {
		return err
	}
	err := service()
	cb.after(err == nil)
	return err
}

func (cb *circuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state != Open {
		return nil
	}
	if cb.now().Sub(cb.openedAt) <= cb.settings.Timeout {
		return ErrOpenCB
	}
	cb.setState(HalfOpen)
	return nil
}

func (cb *circuitBreaker) after(ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.outcomes.record(!ok)

	if cb.state == HalfOpen {
		if !ok {
			cb.setState(Open)
			return
		}
		cb.successes++
		if cb.successes >= cb.settings.RecoveryRequests {
			cb.setState(Closed)
		}
		return
	}
	if cb.outcomes.failureRatio() >= cb.settings.FailureRatio {
		cb.setState(Open)
	}
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.setState(Closed)
}

func (cb *circuitBreaker) setState(to Status) {
	from := cb.state
	cb.state = to
	cb.successes = 0
	switch to {
	case Open:
		cb.openedAt = cb.now()
	case Closed:
		cb.outcomes.clear()
	}
	if from != to && cb.settings.OnStateChange != nil {
		cb.settings.OnStateChange(from, to)
	}
}

// window is a ring of the latest call outcomes; true marks a failure.
type window struct {
	failed []bool
	next   int
}

func newWindow(size int) window {
	return window{failed: make([]bool, size)}
}

func (w *window) record(failed bool) {
	w.failed[w.next] = failed
	w.next = (w.next + 1) % len(w.failed)
}

func (w *window) failureRatio() float64 {
	n := 0
	for _, f := range w.failed {
		if f {
			n++
		}
	}
	return float64(n) / float64(len(w.failed))
}

func (w *window) clear() {
	clear(w.failed)
	w.next = 0
}
