package primitives

import (
	"fmt"
	"strings"
)

// Word is an immutable fixed-length word together with its letter counts.
type Word struct {
	text   string
	counts [AlphabetSize]uint8
}

// NewWord builds a Word from text, folding it to lower case. Only the letters a to z are
// accepted.
func NewWord(text string) (Word, error) {
	text = strings.ToLower(text)
	w := Word{text: text}
	for i := 0; i < len(text); i++ {
		idx, ok := letterIndex(text[i])
		if !ok {
			return Word{}, fmt.Errorf("word %q contains %q: %w", text, text[i], ErrInvalidLetter)
		}
		w.counts[idx]++
	}
	return w, nil
}

// MustWord is like NewWord but panics on invalid input. It is meant for tests and constants.
func MustWord(text string) Word {
	w, err := NewWord(text)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Word) Len() int {
	return len(w.text)
}

// At returns the letter at position i.
func (w Word) At(i int) byte {
	return w.text[i]
}

// Count returns how many times the letter l occurs in the word.
func (w Word) Count(l byte) int {
	idx, ok := letterIndex(l)
	if !ok {
		return 0
	}
	return int(w.counts[idx])
}

func (w Word) String() string {
	return w.text
}
