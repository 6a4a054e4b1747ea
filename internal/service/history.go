package service

import (
	"context"
	"time"

	"wordbook/internal/domain"
	"wordbook/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HistoryRecorder tracks a session and mirrors it into the history repository.
// Repository failures are logged and never interrupt the quiz.
type HistoryRecorder struct {
	repo   repository.HistoryRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewHistoryRecorder creates a new history recorder
func NewHistoryRecorder(repo repository.HistoryRepository, logger *zap.Logger) *HistoryRecorder {
	return &HistoryRecorder{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Begin starts a new session record
func (h *HistoryRecorder) Begin(ctx context.Context, mode domain.Mode) *domain.SessionResult {
	s := &domain.SessionResult{
		ID:        uuid.NewString(),
		Mode:      mode,
		Status:    domain.StatusRunning,
		StartedAt: h.now(),
	}

	if err := h.repo.SaveSession(context.WithoutCancel(ctx), *s); err != nil {
		h.logger.Warn("Failed to store session start", zap.String("session_id", s.ID), zap.Error(err))
	}
	return s
}

// Record counts an answered question and stores the attempt
func (h *HistoryRecorder) Record(ctx context.Context, s *domain.SessionResult, e domain.Entry, outcome domain.Outcome) {
	s.Asked++
	if outcome == domain.OutcomeCorrect {
		s.Correct++
	}

	attempt := domain.Attempt{
		SessionID:  s.ID,
		Term:       e.Term,
		Definition: e.Definition,
		Outcome:    outcome,
		AnsweredAt: h.now(),
	}
	if err := h.repo.SaveAttempt(context.WithoutCancel(ctx), attempt); err != nil {
		h.logger.Warn("Failed to store attempt",
			zap.String("session_id", s.ID),
			zap.String("term", e.Term),
			zap.Error(err),
		)
	}
}

// Finish marks the session terminal and stores the final counters
func (h *HistoryRecorder) Finish(ctx context.Context, s *domain.SessionResult, status domain.SessionStatus) {
	s.Status = status
	s.FinishedAt = h.now()

	if err := h.repo.SaveSession(context.WithoutCancel(ctx), *s); err != nil {
		h.logger.Warn("Failed to store session result", zap.String("session_id", s.ID), zap.Error(err))
	}

	h.logger.Info("Session finished",
		zap.String("session_id", s.ID),
		zap.String("mode", string(s.Mode)),
		zap.String("status", string(status)),
		zap.Int("asked", s.Asked),
		zap.Int("correct", s.Correct),
	)
}
