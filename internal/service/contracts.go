package service

import (
	"context"

	"wordbook/internal/domain"
)

// Prompter is the operator-facing side of a quiz
type Prompter interface {
	Present(q domain.Question)
	Choose(ctx context.Context, allowed []domain.Choice) (domain.Choice, error)
	Confirm(ctx context.Context, question string) (bool, error)
	Say(format string, args ...interface{})
}

// Reporter publishes a finished session somewhere outside the console
type Reporter interface {
	Report(ctx context.Context, s domain.SessionResult) error
}

// NopReporter is used when no report channel is configured
type NopReporter struct{}

func (NopReporter) Report(context.Context, domain.SessionResult) error { return nil }
