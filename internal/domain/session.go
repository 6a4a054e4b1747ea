package domain

import "time"

// Mode identifies the quiz mode
type Mode string

const (
	ModeExam  Mode = "exam"
	ModeDrill Mode = "drill"
)

// SessionStatus is the state of a quiz run
type SessionStatus string

const (
	StatusRunning     SessionStatus = "running"
	StatusDone        SessionStatus = "done"
	StatusStopped     SessionStatus = "stopped"
	StatusInterrupted SessionStatus = "interrupted"
)

// Outcome of a single answered question
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeUnknown Outcome = "unknown"
)

// Attempt records one answered question
type Attempt struct {
	SessionID  string
	Term       string
	Definition string
	Outcome    Outcome
	AnsweredAt time.Time
}

// SessionResult summarizes a finished quiz run
type SessionResult struct {
	ID            string
	Mode          Mode
	Status        SessionStatus
	StartedAt     time.Time
	FinishedAt    time.Time
	Asked         int
	Correct       int
	Mistakes      []Entry
	MistakeFile   string
	BookRemaining int
}

// Wrong returns the number of questions not answered correctly
func (s SessionResult) Wrong() int {
	return s.Asked - s.Correct
}

// TermStat aggregates history for a single term
type TermStat struct {
	Term     string
	Misses   int
	Attempts int
}
