package wordle

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Game is the record of one simulated game against a known answer.
type Game struct {
	Answer  string
	Guesses []string
	// Rows holds the feedback for each guess in the row grammar, so a game can be replayed.
	Rows   []string
	Solved bool
}

// Len returns the number of guesses made.
func (g Game) Len() int {
	return len(g.Guesses)
}

func (g Game) Repr() string {
	return fmt.Sprintf("Guessed %s from %s", g.Answer, strings.Join(g.Guesses, " "))
}

func (g Game) DebugString() string {
	return fmt.Sprintf("Game{answer: %s, solved: %v, guesses: %v, rows: %q}", g.Answer, g.Solved, g.Guesses, g.Rows)
}

// Report summarises simulated games over a whole vocabulary.
type Report struct {
	// Games is in vocabulary order.
	Games []Game
	// Histogram maps a guess count to how many solved games needed it.
	Histogram map[int]int
	Unsolved  int
}

func newReport(games []Game) Report {
	r := Report{Games: games, Histogram: make(map[int]int)}
	for _, g := range games {
		if !g.Solved {
			r.Unsolved++
			continue
		}
		r.Histogram[g.Len()]++
	}
	return r
}

// Mean returns the average number of guesses over solved games.
func (r Report) Mean() float64 {
	var sum, n int
	for guesses, count := range r.Histogram {
		sum += guesses * count
		n += count
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func (r Report) Repr() string {
	var b strings.Builder
	for _, guesses := range slices.Sorted(maps.Keys(r.Histogram)) {
		fmt.Fprintf(&b, "%d guesses: %d\n", guesses, r.Histogram[guesses])
	}
	if r.Unsolved > 0 {
		fmt.Fprintf(&b, "unsolved: %d\n", r.Unsolved)
	}
	fmt.Fprintf(&b, "mean: %.3f", r.Mean())
	return b.String()
}
