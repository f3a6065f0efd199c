package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Service implements SchedulerService interface. It triggers full corpus
// rebuilds on a cron schedule.
type Service struct {
	indexer interfaces.IndexerService
	cron    *cron.Cron
	logger  arbor.ILogger
	mu      sync.Mutex
	running bool
}

// NewService creates a new scheduler service
func NewService(indexer interfaces.IndexerService, logger arbor.ILogger) interfaces.SchedulerService {
	return &Service{
		indexer: indexer,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start begins the scheduler with the given cron expression. An empty
// expression means scheduled rebuilds are disabled.
func (s *Service) Start(cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if cronExpr == "" {
		s.logger.Info().Msg("No rebuild schedule configured, scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(cronExpr, s.runScheduledRebuild)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("cron_expr", cronExpr).
		Msg("Scheduled index rebuild enabled")

	return nil
}

// runScheduledRebuild performs one scheduled rebuild. An already-running
// rebuild is skipped rather than queued; the next tick picks it up.
func (s *Service) runScheduledRebuild() {
	s.logger.Info().Msg("Scheduled index rebuild triggered")

	stats, err := s.indexer.RebuildIndex(context.Background())
	if err != nil {
		if errors.Is(err, models.ErrRebuildInProgress) {
			s.logger.Warn().Msg("Skipping scheduled rebuild, another rebuild is in progress")
			return
		}
		s.logger.Error().Err(err).Msg("Scheduled index rebuild failed")
		return
	}

	s.logger.Info().
		Str("generation", stats.Generation).
		Int("total_documents", stats.TotalDocuments).
		Msg("Scheduled index rebuild complete")
}

// Stop halts the scheduler and waits for an in-flight run to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info().Msg("Scheduler stopped")
}

// IsRunning reports whether the scheduler has been started.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
