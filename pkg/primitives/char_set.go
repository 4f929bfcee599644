package primitives

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

const (
	minLetter = 'a'
	maxLetter = 'z'

	// AlphabetSize is the number of distinct letters a word may contain.
	AlphabetSize = maxLetter - minLetter + 1
)

// letterIndex maps a lower case ASCII letter to its slot in per-letter tables.
func letterIndex(l byte) (int, bool) {
	if l < minLetter || l > maxLetter {
		return 0, false
	}
	return int(l - minLetter), true
}

// LetterSet efficiently represents a set of the letters a to z.
//
// The zero value is the empty set. LetterSet is a value type and is safe to copy.
type LetterSet uint32

// Add adds a letter to the set.
func (s *LetterSet) Add(l byte) error {
	idx, ok := letterIndex(l)
	if !ok {
		return fmt.Errorf("letter %q is out of range: %w", l, ErrInvalidLetter)
	}
	*s |= 1 << idx
	return nil
}

// AddAll adds all letters from another set to this set.
func (s *LetterSet) AddAll(other LetterSet) {
	*s |= other
}

// Contains checks if a letter is in the set. Letters outside a to z are never contained.
func (s LetterSet) Contains(l byte) bool {
	idx, ok := letterIndex(l)
	if !ok {
		return false
	}
	return s&(1<<idx) != 0
}

// IsEmpty checks if the set holds no letters.
func (s LetterSet) IsEmpty() bool {
	return s == 0
}

// Count returns the number of letters in the set.
func (s LetterSet) Count() int {
	return bits.OnesCount32(uint32(s))
}

// Letters iterates the letters of the set in alphabetical order.
func (s LetterSet) Letters() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		b := uint32(s)
		for b != 0 {
			tz := bits.TrailingZeros32(b)
			if !yield(byte(minLetter + tz)) {
				return
			}
			b &= b - 1
		}
	}
}

func (s LetterSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for l := range s.Letters() {
		b.WriteByte(l)
	}
	b.WriteByte('}')
	return b.String()
}
