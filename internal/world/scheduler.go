package world

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// Scheduler drives condition ticks for a World.
type Scheduler struct {
	world    *World
	interval time.Duration
	last     int64
}

// NewScheduler creates a scheduler ticking every interval.
func NewScheduler(w *World, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{world: w, interval: interval}
}

// Run ticks the world until ctx is canceled.
// Each tick carries the milliseconds actually elapsed since the previous one.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.last = s.world.Now()
	slog.Info("condition scheduler started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("condition scheduler stopped")
			return nil
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step performs one tick and returns the interval it used.
func (s *Scheduler) Step() int32 {
	now := s.world.Now()
	if s.last == 0 {
		s.last = now - s.interval.Milliseconds()
	}

	elapsed := max(0, min(now-s.last, math.MaxInt32))
	s.last = now

	s.world.Tick(int32(elapsed))
	return int32(elapsed)
}
