package testutil

import (
	"context"

	"wordbook/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockVocabRepository is a mock for VocabRepository
type MockVocabRepository struct {
	mock.Mock
}

func (m *MockVocabRepository) Load() ([]domain.Entry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

// MockWordBookStore is a mock for WordBookStore
type MockWordBookStore struct {
	mock.Mock
}

func (m *MockWordBookStore) Exists() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockWordBookStore) Load() ([]domain.Entry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockWordBookStore) Save(entries []domain.Entry) error {
	args := m.Called(entries)
	return args.Error(0)
}

// MockMistakeLog is a mock for MistakeLog
type MockMistakeLog struct {
	mock.Mock
}

func (m *MockMistakeLog) Write(entries []domain.Entry) (string, error) {
	args := m.Called(entries)
	return args.String(0), args.Error(1)
}

// MockHistoryRepository is a mock for HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) SaveSession(ctx context.Context, s domain.SessionResult) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockHistoryRepository) SaveAttempt(ctx context.Context, a domain.Attempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockHistoryRepository) HardestTerms(ctx context.Context, limit int) ([]domain.TermStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TermStat), args.Error(1)
}

func (m *MockHistoryRepository) CleanOldSessions(ctx context.Context, days int) error {
	args := m.Called(ctx, days)
	return args.Error(0)
}
