package primitives

import "fmt"

// Feedback returns the Constraint an honest evaluation of guess against answer reveals.
func Feedback(guess, answer Word) Constraint {
	c := NewConstraint(guess.Len())
	c.SetFeedback(guess, answer)
	return c
}

// SetFeedback overwrites c with the Constraint revealed by guessing guess when the answer is
// answer. It lets hot loops reuse one Constraint instead of allocating per pair.
//
// Matching positions become exact, other positions exclude the guessed letter. For each
// guessed letter the minimum bound is the smaller of the two counts, and when the guess holds
// more copies than the answer the maximum bound is the answer's count.
func (c *Constraint) SetFeedback(guess, answer Word) {
	if guess.Len() != answer.Len() || guess.Len() != len(c.positions) {
		panic(fmt.Sprintf("cannot compute feedback for lengths %d and %d into a constraint of length %d", guess.Len(), answer.Len(), len(c.positions)))
	}
	c.Reset()

	for i := range c.positions {
		g := guess.text[i]
		if g == answer.text[i] {
			c.positions[i].Exact = g
		} else {
			c.positions[i].Excluded |= 1 << (g - minLetter)
		}
	}

	for idx, gc := range guess.counts {
		if gc == 0 {
			continue
		}
		ac := answer.counts[idx]
		if m := min(gc, ac); m > 0 {
			c.raiseMin(idx, m)
		}
		if gc > ac {
			c.lowerMax(idx, ac)
		}
	}
}
