package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"wordbook/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestHistoryRepo_SaveSession(t *testing.T) {
	started := time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		session       domain.SessionResult
		finishedArg   interface{}
		mockError     error
		expectedError bool
	}{
		{
			name: "running session has no finish time",
			session: domain.SessionResult{
				ID: "8d6f6a4e-7d8b-4a57-9a6b-2b7b2d1f0c11", Mode: domain.ModeDrill,
				Status: domain.StatusRunning, StartedAt: started,
			},
			finishedArg: sql.NullTime{},
		},
		{
			name: "finished session",
			session: domain.SessionResult{
				ID: "8d6f6a4e-7d8b-4a57-9a6b-2b7b2d1f0c11", Mode: domain.ModeExam,
				Status: domain.StatusDone, StartedAt: started, FinishedAt: started.Add(time.Minute),
				Asked: 4, Correct: 3, MistakeFile: "final_test_20241212_100100.txt",
			},
			finishedArg: sql.NullTime{Time: started.Add(time.Minute), Valid: true},
		},
		{
			name: "database error",
			session: domain.SessionResult{
				ID: "8d6f6a4e-7d8b-4a57-9a6b-2b7b2d1f0c11", Mode: domain.ModeDrill,
				Status: domain.StatusRunning, StartedAt: started,
			},
			finishedArg:   sql.NullTime{},
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewHistoryRepo(db)
			s := tt.session

			exp := mock.ExpectExec("INSERT INTO quiz_sessions").
				WithArgs(s.ID, string(s.Mode), string(s.Status), s.StartedAt, tt.finishedArg,
					s.Asked, s.Correct, s.MistakeFile, s.BookRemaining)
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err = repo.SaveSession(context.Background(), s)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHistoryRepo_SaveAttempt(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewHistoryRepo(db)

	attempt := domain.Attempt{
		SessionID:  "8d6f6a4e-7d8b-4a57-9a6b-2b7b2d1f0c11",
		Term:       "vivid",
		Definition: "生动的",
		Outcome:    domain.OutcomeWrong,
		AnsweredAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO quiz_attempts").
		WithArgs(attempt.SessionID, attempt.Term, attempt.Definition, "wrong", attempt.AnsweredAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.SaveAttempt(context.Background(), attempt)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepo_HardestTerms(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedLen   int
		expectedError bool
	}{
		{
			name: "terms found",
			mockRows: sqlmock.NewRows([]string{"term", "misses", "total"}).
				AddRow("vivid", 3, 4).
				AddRow("grant", 1, 2),
			expectedLen: 2,
		},
		{
			name:          "query error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
		{
			name: "scan error",
			mockRows: sqlmock.NewRows([]string{"term", "misses", "total"}).
				AddRow("vivid", "many", 4),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewHistoryRepo(db)

			exp := mock.ExpectQuery("SELECT term, COUNT").WithArgs(5)
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnRows(tt.mockRows)
			}

			stats, err := repo.HardestTerms(context.Background(), 5)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, stats, tt.expectedLen)
				assert.Equal(t, domain.TermStat{Term: "vivid", Misses: 3, Attempts: 4}, stats[0])
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHistoryRepo_CleanOldSessions(t *testing.T) {
	tests := []struct {
		name          string
		days          int
		mockError     error
		expectedError bool
	}{
		{name: "successful cleanup", days: 60},
		{name: "database error", days: 60, mockError: fmt.Errorf("db error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewHistoryRepo(db)

			exp := mock.ExpectExec("DELETE FROM quiz_sessions").WithArgs(tt.days)
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 3))
			}

			err = repo.CleanOldSessions(context.Background(), tt.days)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
