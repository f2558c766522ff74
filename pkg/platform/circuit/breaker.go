// Package circuit tracks consecutive failures of a downstream dependency so
// callers can stop treating its outages as fatal.
package circuit

import "sync"

// Transition reports a state change caused by the last recorded outcome.
type Transition int

const (
	NoChange Transition = iota
	Opened
	Closed
)

// Breaker is a two-state breaker. It opens after FailureThreshold failures
// in a row and closes again after SuccessThreshold successes in a row.
type Breaker struct {
	mu               sync.Mutex
	name             string
	open             bool
	failures         int
	successes        int
	failureThreshold int
	successThreshold int
}

type Option func(*Breaker)

// WithFailureThreshold defaults to 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold defaults to 3.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{name: name, failureThreshold: 5, successThreshold: 3}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Failure records a failed call and reports whether the breaker is open
// afterwards.
func (b *Breaker) Failure() (open bool, t Transition) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.successes = 0
	if b.open {
		return true, NoChange
	}
	if b.failures >= b.failureThreshold {
		b.open = true
		return true, Opened
	}
	return false, NoChange
}

// Success records a successful call.
func (b *Breaker) Success() Transition {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		b.failures = 0
		return NoChange
	}
	b.successes++
	if b.successes < b.successThreshold {
		return NoChange
	}
	b.open = false
	b.failures = 0
	b.successes = 0
	return Closed
}
