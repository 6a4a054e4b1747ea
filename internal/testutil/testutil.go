package testutil

import (
	"context"
	"fmt"
	"math/rand"

	"wordbook/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRand creates a deterministic random source
func NewTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// ScenarioVocab returns the four-word vocabulary used across scenario tests
func ScenarioVocab() []domain.Entry {
	return []domain.Entry{
		{Term: "consistent", Definition: "一致的"},
		{Term: "brief", Definition: "简短的"},
		{Term: "vivid", Definition: "生动的"},
		{Term: "grant", Definition: "授予"},
	}
}

// Answerer decides the reply to a presented question
type Answerer func(q domain.Question) domain.Choice

// AnswerCorrectly always picks the right option
func AnswerCorrectly(q domain.Question) domain.Choice {
	return domain.OptionLetters[q.Correct]
}

// AnswerWrongly always picks a wrong option
func AnswerWrongly(q domain.Question) domain.Choice {
	return domain.OptionLetters[(q.Correct+1)%len(q.Options)]
}

// AnswerUnknown always answers "don't know"
func AnswerUnknown(domain.Question) domain.Choice {
	return domain.ChoiceUnknown
}

// ScriptedPrompter is an in-memory Prompter driven by Answerer callbacks.
// Each presented question consumes the next answerer; the last one repeats.
// When Interrupt is set, Choose returns context.Canceled after that many answers.
// ConfirmErr, when set, is returned by every Confirm.
type ScriptedPrompter struct {
	Answerers  []Answerer
	Confirms   []bool
	ConfirmErr error
	Interrupt  int

	Presented []domain.Question
	Messages  []string
	answered  int
	confirmed int
}

func (p *ScriptedPrompter) Present(q domain.Question) {
	p.Presented = append(p.Presented, q)
}

func (p *ScriptedPrompter) Choose(ctx context.Context, allowed []domain.Choice) (domain.Choice, error) {
	if p.Interrupt > 0 && p.answered >= p.Interrupt {
		return "", context.Canceled
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(p.Presented) == 0 || len(p.Answerers) == 0 {
		return "", fmt.Errorf("nothing to answer")
	}

	i := p.answered
	if i >= len(p.Answerers) {
		i = len(p.Answerers) - 1
	}
	choice := p.Answerers[i](p.Presented[len(p.Presented)-1])
	p.answered++

	for _, a := range allowed {
		if a == choice {
			return choice, nil
		}
	}
	return "", fmt.Errorf("scripted answer %q not allowed", choice)
}

func (p *ScriptedPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	p.Messages = append(p.Messages, question)
	if p.ConfirmErr != nil {
		return false, p.ConfirmErr
	}
	if p.confirmed >= len(p.Confirms) {
		return false, nil
	}
	ok := p.Confirms[p.confirmed]
	p.confirmed++
	return ok, nil
}

func (p *ScriptedPrompter) Say(format string, args ...interface{}) {
	p.Messages = append(p.Messages, fmt.Sprintf(format, args...))
}

// MemoryWordBook is an in-memory WordBookStore
type MemoryWordBook struct {
	Entries   []domain.Entry
	Present   bool
	SaveCalls int
	SaveErr   error
}

func (m *MemoryWordBook) Exists() (bool, error) {
	return m.Present, nil
}

func (m *MemoryWordBook) Load() ([]domain.Entry, error) {
	out := make([]domain.Entry, len(m.Entries))
	copy(out, m.Entries)
	return out, nil
}

func (m *MemoryWordBook) Save(entries []domain.Entry) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SaveCalls++
	m.Present = true
	m.Entries = make([]domain.Entry, len(entries))
	copy(m.Entries, entries)
	return nil
}

// StaticVocab is a VocabRepository returning fixed entries
type StaticVocab struct {
	Entries []domain.Entry
	Err     error
	Loads   int
}

func (v *StaticVocab) Load() ([]domain.Entry, error) {
	v.Loads++
	if v.Err != nil {
		return nil, v.Err
	}
	out := make([]domain.Entry, len(v.Entries))
	copy(out, v.Entries)
	return out, nil
}

// Quit answers with the drill quit letter
func Quit(domain.Question) domain.Choice {
	return domain.ChoiceQuit
}
