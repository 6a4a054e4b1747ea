package postgres

import (
	"context"
	"database/sql"

	"wordbook/internal/domain"
)

// HistoryRepo implements repository.HistoryRepository
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo creates a new history repository
func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// SaveSession inserts a session or updates its counters and status
func (r *HistoryRepo) SaveSession(ctx context.Context, s domain.SessionResult) error {
	var finishedAt sql.NullTime
	if !s.FinishedAt.IsZero() {
		finishedAt = sql.NullTime{Time: s.FinishedAt, Valid: true}
	}

	query := `
		INSERT INTO quiz_sessions (id, mode, status, started_at, finished_at, asked, correct, mistake_file, book_remaining)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id)
		DO UPDATE SET
			status = EXCLUDED.status,
			finished_at = EXCLUDED.finished_at,
			asked = EXCLUDED.asked,
			correct = EXCLUDED.correct,
			mistake_file = EXCLUDED.mistake_file,
			book_remaining = EXCLUDED.book_remaining
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, string(s.Mode), string(s.Status), s.StartedAt, finishedAt,
		s.Asked, s.Correct, s.MistakeFile, s.BookRemaining,
	)
	return err
}

// SaveAttempt stores a single answered question
func (r *HistoryRepo) SaveAttempt(ctx context.Context, a domain.Attempt) error {
	query := `
		INSERT INTO quiz_attempts (session_id, term, definition, outcome, answered_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, a.SessionID, a.Term, a.Definition, string(a.Outcome), a.AnsweredAt)
	return err
}

// HardestTerms returns terms with the most non-correct attempts
func (r *HistoryRepo) HardestTerms(ctx context.Context, limit int) ([]domain.TermStat, error) {
	query := `
		SELECT term, COUNT(*) FILTER (WHERE outcome <> 'correct') AS misses, COUNT(*) AS total
		FROM quiz_attempts
		GROUP BY term
		HAVING COUNT(*) FILTER (WHERE outcome <> 'correct') > 0
		ORDER BY misses DESC, term
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.TermStat
	for rows.Next() {
		var s domain.TermStat
		if err := rows.Scan(&s.Term, &s.Misses, &s.Attempts); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// CleanOldSessions deletes sessions (and their attempts) older than days
func (r *HistoryRepo) CleanOldSessions(ctx context.Context, days int) error {
	query := `
		DELETE FROM quiz_sessions
		WHERE started_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.ExecContext(ctx, query, days)
	return err
}
