// Package service содержит планировщик выгрузок.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler управляет выполнением выгрузок по расписанию
type Scheduler struct {
	extract    *ExtractService
	cron       *cron.Cron
	schedule   string
	runTimeout time.Duration
	logger     *zap.Logger
	mu         sync.Mutex
	running    bool
	entryID    cron.EntryID
}

// NewScheduler создает новый планировщик
func NewScheduler(extract *ExtractService, schedule string, runTimeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		extract:    extract,
		cron:       cron.New(cron.WithLocation(time.UTC)),
		schedule:   schedule,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

// Start запускает планировщик
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runExtract)
	if err != nil {
		return fmt.Errorf("failed to add extraction to cron: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.running = true

	next := s.cron.Entry(entryID).Next
	if s.extract.metrics != nil {
		s.extract.metrics.SetNextRun(next)
	}

	s.logger.Info("Scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", next))

	return nil
}

// Stop останавливает планировщик и дожидается текущей выгрузки
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.logger.Info("Stopping scheduler")

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.running = false

	s.logger.Info("Scheduler stopped")
}

// runExtract выполняет одну выгрузку по расписанию
func (s *Scheduler) runExtract() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	if _, err := s.extract.Run(ctx); err != nil {
		s.logger.Error("Scheduled extraction failed", zap.Error(err))
	}

	if s.extract.metrics != nil {
		s.extract.metrics.SetNextRun(s.cron.Entry(s.entryID).Next)
	}
}
