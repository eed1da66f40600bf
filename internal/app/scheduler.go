package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/meishi-app/meishi-backend/internal/slotgen"
)

// Scheduler advances the slot horizon once a day in the background.
type Scheduler struct {
	generator *slotgen.Generator
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
	doneChan  chan struct{}
}

func NewScheduler(generator *slotgen.Generator, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		generator: generator,
		interval:  24 * time.Hour,
		logger:    logger,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// Start runs one advance immediately, then ticks daily until Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.doneChan)

		s.run(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.run(ctx)
			case <-s.stopChan:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Scheduler) run(ctx context.Context) {
	s.logger.Info("advancing slot horizon")
	if err := s.generator.AdvanceHorizon(ctx); err != nil {
		s.logger.Error("slot horizon advance finished with errors", zap.Error(err))
		return
	}
	s.logger.Info("slot horizon advance complete")
}

// Stop signals the scheduler to exit and waits for the loop to finish.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	<-s.doneChan
}
