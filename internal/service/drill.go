package service

import (
	"context"
	"fmt"
	"math/rand"

	"wordbook/internal/domain"
	"wordbook/internal/repository"

	"go.uber.org/zap"
)

// maxConsecutiveSkips bounds how often a question may be abandoned for lack
// of options before the drill gives up
const maxConsecutiveSkips = 100

// DrillService runs the unbounded loop over the wrong-word book
type DrillService struct {
	vocab    repository.VocabRepository
	book     *WordBookService
	history  *HistoryRecorder
	prompter Prompter
	rng      *rand.Rand
	logger   *zap.Logger
}

// NewDrillService creates a new drill service
func NewDrillService(
	vocab repository.VocabRepository,
	book *WordBookService,
	history *HistoryRecorder,
	prompter Prompter,
	rng *rand.Rand,
	logger *zap.Logger,
) *DrillService {
	return &DrillService{
		vocab:    vocab,
		book:     book,
		history:  history,
		prompter: prompter,
		rng:      rng,
		logger:   logger,
	}
}

// Run drills until the book is empty (StatusDone) or the operator quits
// (StatusStopped). The book is reloaded from the store before every question
// and saved right after every correct answer. An interrupt returns
// ErrInterrupted; nothing is lost since every removal is already persisted.
func (s *DrillService) Run(ctx context.Context) (domain.SessionResult, error) {
	if err := s.book.Ensure(ctx); err != nil {
		if isInterrupt(err) {
			s.prompter.Say("\n检测到中断，错题本未改动。再见！")
			return domain.SessionResult{Mode: domain.ModeDrill, Status: domain.StatusInterrupted}, domain.ErrInterrupted
		}
		return domain.SessionResult{}, err
	}

	session := s.history.Begin(ctx, domain.ModeDrill)
	s.logger.Info("Drill started", zap.String("session_id", session.ID))
	s.prompter.Say("无限循环直到完全学会模式已启动！")
	s.prompter.Say("说明：答对则该词从错题本删除；答错或选E则保留。错题本清空即完成。")
	s.prompter.Say("按 F 可随时安全退出。\n")

	counter := 0
	skips := 0
	for {
		if ctx.Err() != nil {
			return s.interrupted(ctx, session)
		}

		book, err := s.book.Load()
		if err != nil {
			s.history.Finish(ctx, session, domain.StatusInterrupted)
			return *session, err
		}
		session.BookRemaining = len(book)

		if len(book) == 0 {
			s.prompter.Say("恭喜！错题本已清空，全部掌握！")
			s.history.Finish(ctx, session, domain.StatusDone)
			return *session, nil
		}

		idx := s.rng.Intn(len(book))
		entry := book[idx]

		options, correct, ok, err := s.buildOptions(book, entry.Definition)
		if err != nil {
			s.history.Finish(ctx, session, domain.StatusInterrupted)
			return *session, err
		}
		if !ok {
			skips++
			s.logger.Debug("Question skipped, not enough options", zap.String("term", entry.Term))
			if skips >= maxConsecutiveSkips {
				s.history.Finish(ctx, session, domain.StatusInterrupted)
				return *session, fmt.Errorf("%w: cannot build options for the wrong-word book", domain.ErrInsufficientData)
			}
			continue
		}
		skips = 0

		counter++
		q := domain.Question{
			Number:    counter,
			Remaining: len(book),
			Term:      entry.Term,
			Options:   options,
			Correct:   correct,
			AllowQuit: true,
		}
		s.prompter.Present(q)

		choice, err := s.prompter.Choose(ctx, q.Allowed())
		if err != nil {
			if isInterrupt(err) {
				return s.interrupted(ctx, session)
			}
			s.history.Finish(ctx, session, domain.StatusInterrupted)
			return *session, err
		}

		if choice == domain.ChoiceQuit {
			s.prompter.Say("已选择退出。错题本在每题后即时保存，进度安全。再见！")
			s.history.Finish(ctx, session, domain.StatusStopped)
			return *session, nil
		}

		outcome := judge(q, choice)
		switch outcome {
		case domain.OutcomeCorrect:
			s.prompter.Say("答对了！该词将从错题本移除。\n")
			remaining, err := RemoveAt(book, idx)
			if err != nil {
				s.history.Finish(ctx, session, domain.StatusInterrupted)
				return *session, err
			}
			if err := s.book.Save(remaining); err != nil {
				s.logger.Error("Failed to save wrong-word book", zap.Error(err))
				s.history.Finish(ctx, session, domain.StatusInterrupted)
				return *session, fmt.Errorf("failed to save wrong-word book: %w", err)
			}
			session.BookRemaining = len(remaining)
		case domain.OutcomeUnknown:
			s.prompter.Say("正确答案：%s\n", entry.Definition)
		default:
			s.prompter.Say("答错了。正确答案：%s（该词继续保留在错题本）\n", entry.Definition)
		}
		s.history.Record(ctx, session, entry, outcome)
	}
}

// buildOptions takes distractors from the book first and tops up from the
// full vocabulary. ok is false when fewer than four options can be built.
func (s *DrillService) buildOptions(book []domain.Entry, correct string) ([]string, int, bool, error) {
	distractors := PickDistractors(s.rng, domain.Definitions(book), correct, DistractorCount)

	if len(distractors) < DistractorCount {
		vocab, err := s.vocab.Load()
		if err != nil {
			return nil, 0, false, err
		}
		extra := PickDistractors(s.rng, domain.Definitions(vocab), correct,
			DistractorCount-len(distractors), distractors...)
		distractors = append(distractors, extra...)
	}

	if len(distractors)+1 < minOptions {
		return nil, 0, false, nil
	}

	options, correctIdx := shuffleOptions(s.rng, distractors, correct)
	return options, correctIdx, true, nil
}

func (s *DrillService) interrupted(ctx context.Context, session *domain.SessionResult) (domain.SessionResult, error) {
	s.prompter.Say("\n检测到中断，进度已自动保存（错题本每题即时写回）。再见！")
	s.history.Finish(ctx, session, domain.StatusInterrupted)
	return *session, domain.ErrInterrupted
}
