package service

import (
	"context"
	"fmt"

	"wordbook/internal/domain"
	"wordbook/internal/repository"

	"go.uber.org/zap"
)

// minOptions is the number of options a full question needs
const minOptions = DistractorCount + 1

// LoadQuizVocabulary loads the vocabulary and checks it can build full questions
func LoadQuizVocabulary(vocab repository.VocabRepository) ([]domain.Entry, error) {
	entries, err := vocab.Load()
	if err != nil {
		return nil, err
	}
	if len(entries) < minOptions || domain.DistinctDefinitions(entries) < minOptions {
		return nil, fmt.Errorf("%w: %d entries, %d distinct definitions",
			domain.ErrInsufficientData, len(entries), domain.DistinctDefinitions(entries))
	}
	return entries, nil
}

// WordBookService manages the lifecycle of the wrong-word book
type WordBookService struct {
	vocab        repository.VocabRepository
	store        repository.WordBookStore
	prompter     Prompter
	rebuildRatio float64
	logger       *zap.Logger
}

// NewWordBookService creates a new wrong-word book service
func NewWordBookService(
	vocab repository.VocabRepository,
	store repository.WordBookStore,
	prompter Prompter,
	rebuildRatio float64,
	logger *zap.Logger,
) *WordBookService {
	return &WordBookService{
		vocab:        vocab,
		store:        store,
		prompter:     prompter,
		rebuildRatio: rebuildRatio,
		logger:       logger,
	}
}

// Ensure creates the book as a copy of the vocabulary when missing and offers
// a rebuild when it has shrunk below the configured ratio
func (s *WordBookService) Ensure(ctx context.Context) error {
	all, err := s.vocab.Load()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return domain.ErrEmptyVocabulary
	}

	exists, err := s.store.Exists()
	if err != nil {
		return err
	}
	if !exists {
		if err := s.store.Save(all); err != nil {
			return fmt.Errorf("failed to create wrong-word book: %w", err)
		}
		s.logger.Info("Wrong-word book created", zap.Int("entries", len(all)))
		s.prompter.Say("已创建错题本（与原库一致，共 %d 词）", len(all))
		return nil
	}

	book, err := s.store.Load()
	if err != nil {
		return err
	}
	if float64(len(book)) >= float64(len(all))*s.rebuildRatio {
		return nil
	}

	s.logger.Info("Wrong-word book far smaller than vocabulary",
		zap.Int("book_entries", len(book)),
		zap.Int("vocab_entries", len(all)),
		zap.Float64("ratio", s.rebuildRatio),
	)
	s.prompter.Say("检测到错题本条目显著少于原库（%d vs %d）。", len(book), len(all))

	rebuild, err := s.prompter.Confirm(ctx, "是否重建错题本为原库内容？(y/N)：")
	if err != nil {
		return err
	}
	if !rebuild {
		return nil
	}

	if err := s.store.Save(all); err != nil {
		return fmt.Errorf("failed to rebuild wrong-word book: %w", err)
	}
	s.logger.Info("Wrong-word book rebuilt", zap.Int("entries", len(all)))
	s.prompter.Say("错题本已重建为原库内容。")
	return nil
}

// Load reads the current book from the store
func (s *WordBookService) Load() ([]domain.Entry, error) {
	return s.store.Load()
}

// Save overwrites the stored book
func (s *WordBookService) Save(book []domain.Entry) error {
	return s.store.Save(book)
}

// RemoveAt returns book without the entry at index. Removal is positional so
// the right one of several identical entries goes away.
func RemoveAt(book []domain.Entry, index int) ([]domain.Entry, error) {
	if index < 0 || index >= len(book) {
		return nil, fmt.Errorf("%w: %d of %d", domain.ErrIndexOutOfRange, index, len(book))
	}
	out := make([]domain.Entry, 0, len(book)-1)
	out = append(out, book[:index]...)
	return append(out, book[index+1:]...), nil
}
