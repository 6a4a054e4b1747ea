package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"wordbook/internal/domain"
	"wordbook/internal/repository"

	"go.uber.org/zap"
)

// ExamService runs the fixed-length random quiz over the full vocabulary
type ExamService struct {
	vocab         repository.VocabRepository
	mistakes      repository.MistakeLog
	history       *HistoryRecorder
	prompter      Prompter
	rng           *rand.Rand
	questionCount int
	logger        *zap.Logger
}

// NewExamService creates a new exam service
func NewExamService(
	vocab repository.VocabRepository,
	mistakes repository.MistakeLog,
	history *HistoryRecorder,
	prompter Prompter,
	rng *rand.Rand,
	questionCount int,
	logger *zap.Logger,
) *ExamService {
	return &ExamService{
		vocab:         vocab,
		mistakes:      mistakes,
		history:       history,
		prompter:      prompter,
		rng:           rng,
		questionCount: questionCount,
		logger:        logger,
	}
}

// Run asks min(questionCount, |vocab|) distinct questions. Mistakes are written
// once at the end, or after an interrupt with whatever was collected so far;
// in the latter case ErrInterrupted is returned alongside the result.
func (s *ExamService) Run(ctx context.Context) (domain.SessionResult, error) {
	vocab, err := LoadQuizVocabulary(s.vocab)
	if err != nil {
		return domain.SessionResult{}, err
	}

	n := s.questionCount
	if n > len(vocab) {
		n = len(vocab)
	}
	questions := make([]domain.Entry, 0, n)
	for _, i := range s.rng.Perm(len(vocab))[:n] {
		questions = append(questions, vocab[i])
	}
	pool := domain.Definitions(vocab)

	session := s.history.Begin(ctx, domain.ModeExam)
	s.logger.Info("Exam started", zap.String("session_id", session.ID), zap.Int("questions", n))
	s.prompter.Say("测试开始！共%d题（若库不足则以库大小为准）。\n", n)

	interrupted := false
	for i, entry := range questions {
		distractors := PickDistractors(s.rng, pool, entry.Definition, DistractorCount)
		options, correct := shuffleOptions(s.rng, distractors, entry.Definition)

		q := domain.Question{
			Number:  i + 1,
			Term:    entry.Term,
			Options: options,
			Correct: correct,
		}
		s.prompter.Present(q)

		choice, err := s.prompter.Choose(ctx, q.Allowed())
		if err != nil {
			if isInterrupt(err) {
				interrupted = true
				break
			}
			return *session, err
		}

		outcome := judge(q, choice)
		s.history.Record(ctx, session, entry, outcome)

		switch outcome {
		case domain.OutcomeCorrect:
			s.prompter.Say("答对了！\n")
		case domain.OutcomeUnknown:
			s.prompter.Say("正确答案：%s\n", entry.Definition)
			session.Mistakes = append(session.Mistakes, entry)
		default:
			s.prompter.Say("答错了。正确答案：%s\n", entry.Definition)
			session.Mistakes = append(session.Mistakes, entry)
		}
	}

	if interrupted {
		s.prompter.Say("\n检测到中断，正在保存错题...")
	}

	if err := s.saveMistakes(session, interrupted); err != nil {
		s.history.Finish(ctx, session, domain.StatusInterrupted)
		return *session, err
	}

	if interrupted {
		s.prompter.Say("已退出。")
		s.history.Finish(ctx, session, domain.StatusInterrupted)
		return *session, domain.ErrInterrupted
	}

	s.history.Finish(ctx, session, domain.StatusDone)
	return *session, nil
}

func (s *ExamService) saveMistakes(session *domain.SessionResult, interrupted bool) error {
	if len(session.Mistakes) == 0 {
		if interrupted {
			s.prompter.Say("无错题需要保存。")
		} else {
			s.prompter.Say("测试结束！本次全对，太厉害了！")
		}
		return nil
	}

	name, err := s.mistakes.Write(session.Mistakes)
	if err != nil {
		s.logger.Error("Failed to write mistake log", zap.Error(err))
		return fmt.Errorf("failed to save mistakes: %w", err)
	}
	session.MistakeFile = name

	s.logger.Info("Mistakes saved", zap.String("file", name), zap.Int("count", len(session.Mistakes)))
	if interrupted {
		s.prompter.Say("已保存当前进度的错题至：%s", name)
	} else {
		s.prompter.Say("测试结束！错题已保存至：%s", name)
	}
	return nil
}

// judge maps a choice to an outcome; control letters other than unknown
// must be handled by the caller first
func judge(q domain.Question, choice domain.Choice) domain.Outcome {
	if choice == domain.ChoiceUnknown {
		return domain.OutcomeUnknown
	}
	if choice.Index() == q.Correct {
		return domain.OutcomeCorrect
	}
	return domain.OutcomeWrong
}

// isInterrupt reports whether err means the operator aborted input
func isInterrupt(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, domain.ErrInterrupted) ||
		errors.Is(err, domain.ErrInputClosed)
}
