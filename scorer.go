package wordle

import (
	"context"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"crosswarped.com/wordle/pkg/primitives"
)

// WinnableBonus is added to the score of a guess that could itself be the answer, so that
// among equally good splits the solver prefers a possible outright win.
const WinnableBonus = 1

// scorer rates guesses against one fixed candidate set. It owns scratch space and must not
// be shared between goroutines.
type scorer struct {
	vocab      *primitives.Vocabulary
	running    *primitives.Constraint
	candidates *bitset.BitSet
	answers    []int

	feedback primitives.Constraint
	scratch  *bitset.BitSet
}

func newScorer(vocab *primitives.Vocabulary, running *primitives.Constraint, candidates *bitset.BitSet, answers []int) *scorer {
	return &scorer{
		vocab:      vocab,
		running:    running,
		candidates: candidates,
		answers:    answers,
		feedback:   primitives.NewConstraint(vocab.WordLen()),
		scratch:    bitset.New(uint(vocab.Len())),
	}
}

// score returns N² minus the number of candidates that would survive, summed over every
// candidate taken as the hidden answer, plus WinnableBonus when guess is still possible.
func (sc *scorer) score(guess primitives.Word) int {
	n := len(sc.answers)
	total := n * n
	for _, a := range sc.answers {
		sc.feedback.SetFeedback(guess, sc.vocab.At(a))
		sc.feedback.Merge(sc.running)
		total -= int(sc.vocab.MatchInto(sc.scratch, &sc.feedback, sc.candidates))
	}
	if sc.running.Allows(guess) {
		total += WinnableBonus
	}
	return total
}

// Score rates guess by how well it splits candidates, the words of vocab still allowed by
// running. Higher is better.
func Score(vocab *primitives.Vocabulary, running *primitives.Constraint, candidates *bitset.BitSet, guess primitives.Word) int {
	return newScorer(vocab, running, candidates, vocab.Indices(candidates)).score(guess)
}

type scored struct {
	index int
	score int
}

// better reports whether a beats b: higher score first, then lower index.
func (a scored) better(b scored) bool {
	if b.index < 0 {
		return a.index >= 0
	}
	if a.index < 0 {
		return false
	}
	if a.score != b.score {
		return a.score > b.score
	}
	return a.index < b.index
}

// scoreAll scores every vocabulary word against candidates. Workers each own a contiguous
// range of indices and keep a local best; the results are reduced afterwards.
func (s *Solver) scoreAll(ctx context.Context, running *primitives.Constraint, candidates *bitset.BitSet) (scored, error) {
	total := s.vocab.Len()
	answers := s.vocab.Indices(candidates)

	var progress Progress
	if s.progress != nil {
		progress = s.progress(total)
	}

	workers := min(s.workers, total)
	chunk := (total + workers - 1) / workers
	results := make([]scored, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo, hi := w*chunk, min(total, (w+1)*chunk)
		results[w] = scored{index: -1}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			sc := newScorer(s.vocab, running, candidates, answers)
			best := scored{index: -1}
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if cur := (scored{index: i, score: sc.score(s.vocab.At(i))}); cur.better(best) {
					best = cur
				}
				if progress != nil {
					_ = progress.Add(1)
				}
			}
			results[w] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return scored{}, err
	}

	best := scored{index: -1}
	for _, r := range results {
		if r.better(best) {
			best = r
		}
	}
	return best, nil
}
