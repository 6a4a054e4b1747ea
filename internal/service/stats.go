package service

import (
	"context"

	"wordbook/internal/domain"
	"wordbook/internal/repository"

	"go.uber.org/zap"
)

// StatsService handles history statistics and cleanup
type StatsService struct {
	historyRepo   repository.HistoryRepository
	retentionDays int
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(historyRepo repository.HistoryRepository, retentionDays int, logger *zap.Logger) *StatsService {
	return &StatsService{
		historyRepo:   historyRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldData removes sessions older than the retention period
func (s *StatsService) CleanupOldData(ctx context.Context) error {
	if s.retentionDays <= 0 {
		return nil
	}

	s.logger.Info("Starting cleanup of old sessions", zap.Int("retention_days", s.retentionDays))

	err := s.historyRepo.CleanOldSessions(ctx, s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old sessions", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}

// HardestTerms returns the most missed terms across stored sessions
func (s *StatsService) HardestTerms(ctx context.Context, limit int) ([]domain.TermStat, error) {
	if limit < 1 {
		limit = 5
	}
	return s.historyRepo.HardestTerms(ctx, limit)
}
