package primitives

import (
	"fmt"
	"strings"
)

// Mark is the colour Wordle paints a single guessed letter.
type Mark int

const (
	// MarkGreen is a letter in the right position.
	MarkGreen Mark = iota
	// MarkYellow is a letter that occurs in the answer at another position.
	MarkYellow
	// MarkGray is a letter whose total count in the answer is now known.
	MarkGray
)

const (
	grayPrefix   = '-'
	yellowPrefix = '~'
)

func (m Mark) String() string {
	switch m {
	case MarkGreen:
		return "green"
	case MarkYellow:
		return "yellow"
	case MarkGray:
		return "gray"
	}
	return fmt.Sprintf("Mark(%d)", int(m))
}

// prefix returns the row-grammar prefix written before a letter with this mark.
func (m Mark) prefix() string {
	switch m {
	case MarkYellow:
		return string(yellowPrefix)
	case MarkGray:
		return string(grayPrefix)
	}
	return ""
}

// ParseRow turns one feedback row into a Constraint for words of the given length.
//
// A row is a list of space separated position groups. Within a group "-x" marks x gray,
// "~x" marks x yellow and a bare "x" marks it green. A prefix stays in effect until the end
// of the group, so "-ab" grays both a and b at that position.
//
// For every letter grayed anywhere in the row, the maximum occurrence bound becomes the number
// of green and yellow marks of that letter in the same row.
func ParseRow(row string, length int) (Constraint, error) {
	c := NewConstraint(length)

	groups := strings.Fields(strings.ToLower(row))
	if len(groups) > length {
		return Constraint{}, fmt.Errorf("row %q has %d positions but words have %d letters: %w", row, len(groups), length, ErrMalformedRow)
	}

	var nonGray [AlphabetSize]uint8
	var grayed LetterSet

	for i, group := range groups {
		mark := MarkGreen
		letters := 0
		for j := 0; j < len(group); j++ {
			ch := group[j]
			switch ch {
			case grayPrefix:
				mark = MarkGray
				continue
			case yellowPrefix:
				mark = MarkYellow
				continue
			}

			idx, ok := letterIndex(ch)
			if !ok {
				return Constraint{}, fmt.Errorf("row %q, position %d: %q: %w", row, i, ch, ErrInvalidLetter)
			}
			letters++

			pos := &c.positions[i]
			switch mark {
			case MarkGreen:
				if pos.Exact != 0 {
					return Constraint{}, fmt.Errorf("row %q, position %d has more than one green letter: %w", row, i, ErrMalformedRow)
				}
				pos.Exact = ch
				nonGray[idx]++
			case MarkYellow:
				pos.Excluded |= 1 << idx
				nonGray[idx]++
			case MarkGray:
				pos.Excluded |= 1 << idx
				grayed |= 1 << idx
			}
		}
		if letters == 0 {
			return Constraint{}, fmt.Errorf("row %q, position %d has no letter: %w", row, i, ErrMalformedRow)
		}
	}

	for idx, n := range nonGray {
		if n > 0 {
			c.raiseMin(idx, n)
		}
	}
	for l := range grayed.Letters() {
		idx := int(l - minLetter)
		c.lowerMax(idx, nonGray[idx])
	}
	return c, nil
}

// ParseRows parses each row and merges them, in order, into a single Constraint.
func ParseRows(rows []string, length int) (Constraint, error) {
	acc := NewConstraint(length)
	for _, row := range rows {
		c, err := ParseRow(row, length)
		if err != nil {
			return Constraint{}, err
		}
		acc.Merge(&c)
	}
	return acc, nil
}

// Marks returns the colours Wordle shows for guess when the answer is answer.
//
// Greens are assigned first. The remaining letters are then marked yellow from left to right
// while the answer still has unmatched copies of them, and gray after that.
func Marks(guess, answer Word) []Mark {
	if guess.Len() != answer.Len() {
		panic(fmt.Sprintf("cannot mark words of different lengths, %d != %d", guess.Len(), answer.Len()))
	}

	marks := make([]Mark, guess.Len())
	remaining := answer.counts
	for i := range marks {
		if guess.text[i] == answer.text[i] {
			marks[i] = MarkGreen
			remaining[guess.text[i]-minLetter]--
		}
	}
	for i := range marks {
		if guess.text[i] == answer.text[i] {
			continue
		}
		idx := guess.text[i] - minLetter
		if remaining[idx] > 0 {
			marks[i] = MarkYellow
			remaining[idx]--
		} else {
			marks[i] = MarkGray
		}
	}
	return marks
}

// FormatRow renders the feedback for guess against answer in the row grammar accepted by
// ParseRow.
func FormatRow(guess, answer Word) string {
	marks := Marks(guess, answer)
	groups := make([]string, len(marks))
	for i, m := range marks {
		groups[i] = m.prefix() + string(guess.text[i])
	}
	return strings.Join(groups, " ")
}
