package repository

import (
	"context"

	"wordbook/internal/domain"
)

// VocabRepository defines read access to the source vocabulary
type VocabRepository interface {
	Load() ([]domain.Entry, error)
}

// WordBookStore defines persistence of the wrong-word book.
// The store is the single source of truth; callers reload before each use.
type WordBookStore interface {
	Exists() (bool, error)
	Load() ([]domain.Entry, error)
	Save(entries []domain.Entry) error
}

// MistakeLog defines output of exam mistakes
type MistakeLog interface {
	Write(entries []domain.Entry) (string, error)
}

// HistoryRepository defines session history operations
type HistoryRepository interface {
	SaveSession(ctx context.Context, s domain.SessionResult) error
	SaveAttempt(ctx context.Context, a domain.Attempt) error
	HardestTerms(ctx context.Context, limit int) ([]domain.TermStat, error)
	CleanOldSessions(ctx context.Context, days int) error
}

// NopHistory discards history when no database is configured
type NopHistory struct{}

// SaveSession discards the session
func (NopHistory) SaveSession(context.Context, domain.SessionResult) error { return nil }

// SaveAttempt discards the attempt
func (NopHistory) SaveAttempt(context.Context, domain.Attempt) error { return nil }

// CleanOldSessions has nothing to clean
func (NopHistory) CleanOldSessions(context.Context, int) error { return nil }

// HardestTerms always returns no terms
func (NopHistory) HardestTerms(context.Context, int) ([]domain.TermStat, error) {
	return nil, nil
}
