package services

import (
	"log/slog"
	"sync"
	"time"
)

// Sweeper periodically settles ended auctions so winners get their
// payment even when nobody is reading the API. It owns its goroutine and
// stops cleanly between iterations.
type Sweeper struct {
	lifecycle *LifecycleService
	interval  time.Duration
	done      chan struct{}
	wg        sync.WaitGroup
}

func NewSweeper(lifecycle *LifecycleService, interval time.Duration) *Sweeper {
	return &Sweeper{
		lifecycle: lifecycle,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Sweeper) run() {
	defer s.wg.Done()
	slog.Info("auction sweeper started", "interval", s.interval.String())

	// First pass immediately, then on the ticker.
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			slog.Info("auction sweeper stopped")
			return
		}
	}
}

func (s *Sweeper) sweep() {
	if err := s.lifecycle.SettleDue(); err != nil {
		slog.Error("auction sweep iteration failed", "error", err)
	}
}

// Stop signals the sweeper and waits for the in-flight iteration.
func (s *Sweeper) Stop() {
	close(s.done)
	s.wg.Wait()
}
