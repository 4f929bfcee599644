package wordle

import (
	"bufio"
	"context"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/wordle/internal/cache"
	"crosswarped.com/wordle/pkg/primitives"
)

func loadVocabulary(t testing.TB) *primitives.Vocabulary {
	file, err := os.Open("testdata/words.txt")
	if err != nil {
		t.Fatalf("failed to open words file: %v", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to scan words file: %v", err)
	}
	v, err := primitives.NewVocabulary(words)
	if err != nil {
		t.Fatalf("failed to build vocabulary: %v", err)
	}
	return v
}

// countingProgress records how many words were scored.
type countingProgress struct {
	calls  atomic.Int32
	scored atomic.Int64
}

func (p *countingProgress) Add(n int) error {
	p.scored.Add(int64(n))
	return nil
}

func (p *countingProgress) factory(total int) Progress {
	p.calls.Add(1)
	return p
}

func newTestSolver(t testing.TB, params SolverParams) (*Solver, *countingProgress) {
	progress := &countingProgress{}
	params.Progress = progress.factory
	return CreateSolver(loadVocabulary(t), params), progress
}

func mustRows(t *testing.T, s *Solver, rows ...string) primitives.Constraint {
	t.Helper()
	c, err := s.ParseRows(rows)
	require.NoError(t, err)
	return c
}

func TestBestGuess_Unique(t *testing.T) {
	s, progress := newTestSolver(t, SolverParams{})

	// Only "robot" starts with "ro".
	c := mustRows(t, s, "r o -x -x -x")
	require.Equal(t, []string{"robot"}, s.Candidates(&c))

	sug, err := s.BestGuess(context.Background(), &c)
	require.NoError(t, err)
	assert.Equal(t, "robot", sug.Word.String())
	assert.Equal(t, ReasonUnique, sug.Reason)
	assert.Equal(t, 1, sug.Remaining)
	assert.Zero(t, progress.calls.Load(), "a unique candidate must not be scored")
}

func TestBestGuess_Pair(t *testing.T) {
	s, progress := newTestSolver(t, SolverParams{})

	c := mustRows(t, s, "-x -x -x -x -x", "f l -x -x -x")
	require.Equal(t, []string{"flame", "fleet"}, s.Candidates(&c))

	sug, err := s.BestGuess(context.Background(), &c)
	require.NoError(t, err)
	assert.Equal(t, "flame", sug.Word.String(), "the first candidate in vocabulary order")
	assert.Equal(t, ReasonPair, sug.Reason)
	assert.Zero(t, progress.calls.Load())
}

func TestBestGuess_NoCandidates(t *testing.T) {
	s, _ := newTestSolver(t, SolverParams{})

	c := mustRows(t, s, "q -x -x -x -x")
	_, err := s.BestGuess(context.Background(), &c)
	assert.ErrorIs(t, err, ErrNoCandidates)

	short := primitives.NewConstraint(4)
	_, err = s.BestGuess(context.Background(), &short)
	assert.ErrorIs(t, err, ErrAnswerLength)
}

func TestBestGuess_CachesOpening(t *testing.T) {
	fgc := cache.New()
	s, progress := newTestSolver(t, SolverParams{Cache: fgc})
	empty := s.NewConstraint()

	first, err := s.BestGuess(context.Background(), &empty)
	require.NoError(t, err)
	assert.Equal(t, ReasonScored, first.Reason)
	assert.Equal(t, s.Vocabulary().Len(), first.Remaining)
	assert.EqualValues(t, 1, progress.calls.Load())
	assert.EqualValues(t, s.Vocabulary().Len(), progress.scored.Load())

	idx, ok := fgc.Lookup(s.Vocabulary().Fingerprint())
	require.True(t, ok)
	assert.Equal(t, first.Index, idx)
	assert.True(t, fgc.Dirty())

	second, err := s.BestGuess(context.Background(), &empty)
	require.NoError(t, err)
	assert.Equal(t, ReasonCached, second.Reason)
	assert.Equal(t, first.Index, second.Index)
	assert.EqualValues(t, 1, progress.calls.Load(), "a cached opening is not scored again")
}

func TestBestGuess_UsesStoredOpening(t *testing.T) {
	vocab := loadVocabulary(t)
	fgc := cache.New()
	fgc.Store(vocab.Fingerprint(), 7)

	s := CreateSolver(vocab, SolverParams{Cache: fgc})
	empty := s.NewConstraint()
	sug, err := s.BestGuess(context.Background(), &empty)
	require.NoError(t, err)
	assert.Equal(t, ReasonCached, sug.Reason)
	assert.Equal(t, vocab.At(7).String(), sug.Word.String())

	fgc.Store(vocab.Fingerprint(), vocab.Len()+10)
	sug, err = s.BestGuess(context.Background(), &empty)
	require.NoError(t, err)
	assert.Equal(t, ReasonScored, sug.Reason, "an out of range entry is ignored")
}

func TestBestGuess_OnlyCachesOpening(t *testing.T) {
	fgc := cache.New()
	s, _ := newTestSolver(t, SolverParams{Cache: fgc})

	c := mustRows(t, s, "-c -r ~a -n ~e")
	require.Greater(t, len(s.Candidates(&c)), 2)

	_, err := s.BestGuess(context.Background(), &c)
	require.NoError(t, err)
	assert.False(t, fgc.Dirty())
}

// bruteScore is the elimination score written directly from the predicate.
func bruteScore(vocab *primitives.Vocabulary, running *primitives.Constraint, guess primitives.Word) int {
	var candidates []primitives.Word
	for i := 0; i < vocab.Len(); i++ {
		if running.Allows(vocab.At(i)) {
			candidates = append(candidates, vocab.At(i))
		}
	}
	n := len(candidates)
	score := n * n
	for _, answer := range candidates {
		c := primitives.Feedback(guess, answer)
		c.Merge(running)
		for _, w := range candidates {
			if c.Allows(w) {
				score--
			}
		}
	}
	if running.Allows(guess) {
		score += WinnableBonus
	}
	return score
}

func TestScore_MatchesPredicate(t *testing.T) {
	s, _ := newTestSolver(t, SolverParams{})
	vocab := s.Vocabulary()

	for _, rows := range [][]string{
		nil,
		{"-c -r ~a -n ~e"},
		{"-s -h ~i -n -e"},
	} {
		running := mustRows(t, s, rows...)
		candidates := vocab.Filter(&running)
		for i := 0; i < vocab.Len(); i++ {
			guess := vocab.At(i)
			assert.Equalf(t, bruteScore(vocab, &running, guess), Score(vocab, &running, candidates, guess), "guess %s rows %v", guess, rows)
		}
	}
}

func TestBestGuess_PicksHighestScoreLowestIndex(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		s, _ := newTestSolver(t, SolverParams{Workers: workers})
		vocab := s.Vocabulary()
		running := mustRows(t, s, "-c -r ~a -n ~e")
		candidates := vocab.Filter(&running)

		wantIdx, wantScore := -1, 0
		for i := 0; i < vocab.Len(); i++ {
			if sc := Score(vocab, &running, candidates, vocab.At(i)); wantIdx < 0 || sc > wantScore {
				wantIdx, wantScore = i, sc
			}
		}

		sug, err := s.BestGuess(context.Background(), &running)
		require.NoError(t, err)
		assert.Equal(t, wantIdx, sug.Index, "workers=%d", workers)
		assert.Equal(t, wantScore, sug.Score, "workers=%d", workers)
	}
}

func TestBestGuess_Cancelled(t *testing.T) {
	s, _ := newTestSolver(t, SolverParams{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	empty := s.NewConstraint()
	_, err := s.BestGuess(ctx, &empty)
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkBestGuess(b *testing.B) {
	vocab := loadVocabulary(b)
	b.ReportAllocs()

	for b.Loop() {
		// A fresh cache each round so the opening is really scored.
		s := CreateSolver(vocab, SolverParams{})
		empty := s.NewConstraint()
		if _, err := s.BestGuess(b.Context(), &empty); err != nil {
			b.Fatal(err)
		}
	}
}
