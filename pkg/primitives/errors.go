package primitives

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLetter   = errors.New("invalid letter")
	ErrLengthMismatch  = errors.New("word length mismatch")
	ErrEmptyVocabulary = errors.New("vocabulary is empty")
	ErrMalformedRow    = errors.New("malformed feedback row")
)

// LengthMismatchError reports a vocabulary word whose length differs from the first word.
type LengthMismatchError struct {
	Index int // 1-based position among the words given to NewVocabulary
	Word  string
	Want  int
	Got   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("word %d (%q) has %d letters while earlier words have %d", e.Index, e.Word, e.Got, e.Want)
}

func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}
