package domain

import "errors"

var (
	ErrInterrupted      = errors.New("quiz interrupted")
	ErrInputClosed      = errors.New("console input closed")
	ErrEmptyVocabulary  = errors.New("vocabulary is empty")
	ErrInsufficientData = errors.New("not enough entries to build a question (need at least 4)")
	ErrIndexOutOfRange  = errors.New("wrong-word book index out of range")
)
