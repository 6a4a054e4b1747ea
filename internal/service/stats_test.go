package service

import (
	"context"
	"fmt"
	"testing"

	"wordbook/internal/domain"
	"wordbook/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatsService_CleanupOldData(t *testing.T) {
	tests := []struct {
		name          string
		retentionDays int
		mockError     error
		expectCall    bool
		expectedError bool
	}{
		{
			name:          "successful cleanup",
			retentionDays: 60,
			expectCall:    true,
		},
		{
			name:          "database error",
			retentionDays: 60,
			mockError:     fmt.Errorf("db error"),
			expectCall:    true,
			expectedError: true,
		},
		{
			name:          "retention disabled",
			retentionDays: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockHistoryRepository)
			if tt.expectCall {
				mockRepo.On("CleanOldSessions", mock.Anything, tt.retentionDays).Return(tt.mockError)
			}

			logger := testutil.NewTestLogger()
			service := NewStatsService(mockRepo, tt.retentionDays, logger)

			err := service.CleanupOldData(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.expectCall {
				mockRepo.AssertExpectations(t)
			} else {
				mockRepo.AssertNotCalled(t, "CleanOldSessions", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestStatsService_HardestTerms(t *testing.T) {
	stats := []domain.TermStat{{Term: "vivid", Misses: 3, Attempts: 4}}

	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{name: "explicit limit", limit: 10, expectedLimit: 10},
		{name: "zero defaults to five", limit: 0, expectedLimit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockHistoryRepository)
			mockRepo.On("HardestTerms", mock.Anything, tt.expectedLimit).Return(stats, nil)

			service := NewStatsService(mockRepo, 60, testutil.NewTestLogger())

			got, err := service.HardestTerms(context.Background(), tt.limit)

			assert.NoError(t, err)
			assert.Equal(t, stats, got)
			mockRepo.AssertExpectations(t)
		})
	}
}
