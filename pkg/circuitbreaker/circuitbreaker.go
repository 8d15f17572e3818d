package circuitbreaker

import (
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

type Config struct {
	Name string
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval clears the counts while closed. Zero never clears.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout time.Duration
	// ConsecutiveFailures that trip the breaker.
	ConsecutiveFailures uint32
	// IsSuccessful decides which errors count as failures. nil counts all.
	IsSuccessful func(err error) bool
}

func DefaultConfig(name string) Config {
	return Config{
		Name:                name,
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

func New[T any](cfg Config) *Breaker[T] {
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	st := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
		IsSuccessful: cfg.IsSuccessful,
	}
	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](st)}
}

func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	return b.cb.Execute(fn)
}

func (b *Breaker[T]) State() gobreaker.State {
	return b.cb.State()
}

// IsOpen reports whether err was returned because the breaker rejected the
// call without running it.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
