package usecase

import (
	"context"
	"time"

	"habernexus/internal/ports"
)

// Scheduler binds the pipeline to a cycle driver.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
}

// NewScheduler wires a driver and a pipeline.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline}
}

// Start registers the ingestion cycle with the driver.
func (s *Scheduler) Start(ctx context.Context) error {
	return s.driver.Start(ctx, func(time.Time) {
		s.pipeline.RunCycle(ctx)
	})
}

// Stop halts the driver, waiting out any in-flight cycle.
func (s *Scheduler) Stop(ctx context.Context) error {
	return s.driver.Stop(ctx)
}
