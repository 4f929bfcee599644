package primitives

import (
	"fmt"
	"strings"
)

// CharacterConstraint is what is known about a single letter position of the answer.
type CharacterConstraint struct {
	// Exact is the known letter at this position, or 0 when unknown.
	Exact byte
	// Excluded holds letters known not to be at this position.
	Excluded LetterSet
}

// Constraint is the accumulated knowledge about the hidden answer.
//
// A Constraint only becomes more restrictive through Merge: minimum occurrence bounds only
// rise, maximum occurrence bounds only fall, excluded sets only grow and a known exact letter
// is never cleared.
type Constraint struct {
	positions []CharacterConstraint

	min    [AlphabetSize]uint8
	max    [AlphabetSize]uint8
	hasMin LetterSet
	hasMax LetterSet
}

// NewConstraint returns a Constraint for words of the given length that carries no
// information.
func NewConstraint(length int) Constraint {
	return Constraint{positions: make([]CharacterConstraint, length)}
}

// Len returns the word length the constraint applies to.
func (c *Constraint) Len() int {
	return len(c.positions)
}

// Position returns the constraint for letter position i.
func (c *Constraint) Position(i int) CharacterConstraint {
	return c.positions[i]
}

// MinOccurrence returns the minimum number of times l must occur, and whether a bound exists.
func (c *Constraint) MinOccurrence(l byte) (int, bool) {
	idx, ok := letterIndex(l)
	if !ok || !c.hasMin.Contains(l) {
		return 0, false
	}
	return int(c.min[idx]), true
}

// MaxOccurrence returns the maximum number of times l may occur, and whether a bound exists.
func (c *Constraint) MaxOccurrence(l byte) (int, bool) {
	idx, ok := letterIndex(l)
	if !ok || !c.hasMax.Contains(l) {
		return 0, false
	}
	return int(c.max[idx]), true
}

// IsEmpty reports whether the constraint carries no information at all.
func (c *Constraint) IsEmpty() bool {
	if !c.hasMin.IsEmpty() || !c.hasMax.IsEmpty() {
		return false
	}
	for _, p := range c.positions {
		if p.Exact != 0 || !p.Excluded.IsEmpty() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of c.
func (c *Constraint) Clone() Constraint {
	out := *c
	out.positions = make([]CharacterConstraint, len(c.positions))
	copy(out.positions, c.positions)
	return out
}

// Reset clears all information while keeping the word length.
func (c *Constraint) Reset() {
	clear(c.positions)
	c.min = [AlphabetSize]uint8{}
	c.max = [AlphabetSize]uint8{}
	c.hasMin = 0
	c.hasMax = 0
}

// raiseMin sets the minimum bound of l to n if that is higher than the current one.
func (c *Constraint) raiseMin(idx int, n uint8) {
	l := byte(minLetter + idx)
	if c.hasMin.Contains(l) && c.min[idx] >= n {
		return
	}
	c.min[idx] = n
	c.hasMin |= 1 << idx
}

// lowerMax sets the maximum bound of l to n if that is lower than the current one.
func (c *Constraint) lowerMax(idx int, n uint8) {
	l := byte(minLetter + idx)
	if c.hasMax.Contains(l) && c.max[idx] <= n {
		return
	}
	c.max[idx] = n
	c.hasMax |= 1 << idx
}

// Merge folds row into c in place.
//
// Occurrence bounds take the component-wise maximum (minimums) and minimum (maximums).
// Excluded letters are unioned per position, also where row knows the exact letter, which
// keeps Merge associative. A position that both fixes and excludes a letter, as a "a~a" group
// does, therefore allows no word. When row knows the exact letter of a position, it replaces
// the one in c; rows are assumed to be consistent with each other.
func (c *Constraint) Merge(row *Constraint) {
	if len(c.positions) != len(row.positions) {
		panic(fmt.Sprintf("cannot merge constraints of different lengths, %d != %d", len(c.positions), len(row.positions)))
	}

	for l := range row.hasMin.Letters() {
		idx := int(l - minLetter)
		c.raiseMin(idx, row.min[idx])
	}
	for l := range row.hasMax.Letters() {
		idx := int(l - minLetter)
		c.lowerMax(idx, row.max[idx])
	}

	for i := range c.positions {
		other := row.positions[i]
		c.positions[i].Excluded.AddAll(other.Excluded)
		if other.Exact != 0 {
			c.positions[i].Exact = other.Exact
		}
	}
}

// Allows reports whether w is consistent with everything the constraint knows.
func (c *Constraint) Allows(w Word) bool {
	if w.Len() != len(c.positions) {
		return false
	}
	for l := range c.hasMin.Letters() {
		idx := int(l - minLetter)
		if w.counts[idx] < c.min[idx] {
			return false
		}
	}
	for l := range c.hasMax.Letters() {
		idx := int(l - minLetter)
		if w.counts[idx] > c.max[idx] {
			return false
		}
	}
	for i, p := range c.positions {
		got := w.text[i]
		if p.Exact != 0 && p.Exact != got {
			return false
		}
		if p.Excluded.Contains(got) {
			return false
		}
	}
	return true
}

// Equal reports whether two constraints carry exactly the same information.
func (c *Constraint) Equal(other *Constraint) bool {
	if len(c.positions) != len(other.positions) {
		return false
	}
	if c.hasMin != other.hasMin || c.hasMax != other.hasMax {
		return false
	}
	for l := range c.hasMin.Letters() {
		if c.min[l-minLetter] != other.min[l-minLetter] {
			return false
		}
	}
	for l := range c.hasMax.Letters() {
		if c.max[l-minLetter] != other.max[l-minLetter] {
			return false
		}
	}
	for i := range c.positions {
		if c.positions[i] != other.positions[i] {
			return false
		}
	}
	return true
}

func (c *Constraint) String() string {
	var s strings.Builder
	for i, p := range c.positions {
		fmt.Fprintf(&s, "%d:", i)
		if p.Exact != 0 {
			fmt.Fprintf(&s, " =%c", p.Exact)
		}
		if !p.Excluded.IsEmpty() {
			fmt.Fprintf(&s, " !%s", p.Excluded)
		}
		s.WriteByte('\n')
	}
	for l := range c.hasMin.Letters() {
		fmt.Fprintf(&s, "%c>=%d ", l, c.min[l-minLetter])
	}
	for l := range c.hasMax.Letters() {
		fmt.Fprintf(&s, "%c<=%d ", l, c.max[l-minLetter])
	}
	return strings.TrimSpace(s.String())
}
