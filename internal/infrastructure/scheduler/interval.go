// Package scheduler drives the ingestion loop on a fixed delay between
// cycles. A new cycle never starts while the previous one is running.
package scheduler

import (
	"context"
	"sync"
	"time"

	"habernexus/internal/ports"
)

// IntervalScheduler runs the job, then waits the configured interval before
// running it again. The delay is measured from cycle end, so long cycles
// can never overlap.
type IntervalScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	started bool
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler with the given pause between
// cycle runs.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	return &IntervalScheduler{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the loop. The first cycle runs immediately; each following
// cycle starts interval after the previous one finished.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		for {
			job(time.Now())

			timer := time.NewTimer(s.interval)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return
			case <-s.stop:
				timer.Stop()
				return
			}
		}
	}()

	return nil
}

// Stop signals the loop to exit and waits for the in-flight cycle to finish.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	s.mu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
