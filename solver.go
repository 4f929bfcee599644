package wordle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"crosswarped.com/wordle/internal/cache"
	"crosswarped.com/wordle/pkg/primitives"
)

var (
	// ErrNoCandidates means the constraints contradict every word of the vocabulary.
	ErrNoCandidates = errors.New("no words match those constraints")
	// ErrAnswerLength means a word or constraint does not fit the vocabulary's word length.
	ErrAnswerLength = errors.New("length differs from the vocabulary word length")
)

// DefaultMaxGuesses bounds a simulated game. Reaching it means something is wrong, not that
// the word is hard.
const DefaultMaxGuesses = 100

// Reason tells how BestGuess arrived at its suggestion.
type Reason int

const (
	// ReasonScored means every vocabulary word was scored against the candidates.
	ReasonScored Reason = iota
	// ReasonCached means the opening guess came from the first-guess cache.
	ReasonCached
	// ReasonUnique means exactly one candidate is left.
	ReasonUnique
	// ReasonPair means two candidates are left; guessing either costs at most one extra turn.
	ReasonPair
)

func (r Reason) String() string {
	switch r {
	case ReasonScored:
		return "scored"
	case ReasonCached:
		return "cached"
	case ReasonUnique:
		return "unique"
	case ReasonPair:
		return "pair"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Progress receives one Add(1) per scored vocabulary word. It must be safe for concurrent use.
type Progress interface {
	Add(n int) error
}

// Suggestion is the guess BestGuess recommends.
type Suggestion struct {
	Index     int
	Word      primitives.Word
	Remaining int
	// Score is the elimination score, only set when Reason is ReasonScored.
	Score  int
	Reason Reason
}

// SolverParams tunes a Solver. The zero value is usable.
type SolverParams struct {
	// Cache holds opening guesses across runs. When nil the Solver keeps an in-memory one.
	Cache *cache.FirstGuessCache
	// Workers is the number of scoring goroutines; <= 0 means GOMAXPROCS.
	Workers int
	// MaxGuesses bounds simulated games; <= 0 means DefaultMaxGuesses.
	MaxGuesses int
	// Progress, when set, is called with the number of words about to be scored.
	Progress func(total int) Progress
	Logger   *slog.Logger
}

// Solver picks the next best guess over a fixed Vocabulary.
type Solver struct {
	vocab      *primitives.Vocabulary
	cache      *cache.FirstGuessCache
	workers    int
	maxGuesses int
	progress   func(total int) Progress
	logger     *slog.Logger
}

func CreateSolver(vocab *primitives.Vocabulary, params SolverParams) *Solver {
	s := &Solver{
		vocab:      vocab,
		cache:      params.Cache,
		workers:    params.Workers,
		maxGuesses: params.MaxGuesses,
		progress:   params.Progress,
		logger:     params.Logger,
	}
	if s.cache == nil {
		s.cache = cache.New()
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.maxGuesses <= 0 {
		s.maxGuesses = DefaultMaxGuesses
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Vocabulary returns the words the solver chooses from.
func (s *Solver) Vocabulary() *primitives.Vocabulary {
	return s.vocab
}

// NewConstraint returns an empty constraint sized for the vocabulary.
func (s *Solver) NewConstraint() primitives.Constraint {
	return primitives.NewConstraint(s.vocab.WordLen())
}

// ParseRows folds feedback rows into one constraint sized for the vocabulary.
func (s *Solver) ParseRows(rows []string) (primitives.Constraint, error) {
	return primitives.ParseRows(rows, s.vocab.WordLen())
}

// Candidates lists the words still consistent with c, in vocabulary order.
func (s *Solver) Candidates(c *primitives.Constraint) []string {
	return s.vocab.Texts(s.vocab.Filter(c))
}

// BestGuess returns the word that best splits the words still allowed by c.
//
// With no information the cached opening is used when there is one. One or two candidates
// are returned directly. Otherwise every vocabulary word is scored in parallel and the
// highest score wins, the lowest index breaking ties; an opening computed this way is stored
// in the cache.
func (s *Solver) BestGuess(ctx context.Context, c *primitives.Constraint) (Suggestion, error) {
	if c.Len() != s.vocab.WordLen() {
		return Suggestion{}, fmt.Errorf("constraint for %d letters, vocabulary has %d: %w", c.Len(), s.vocab.WordLen(), ErrAnswerLength)
	}

	candidates := s.vocab.Filter(c)
	remaining := int(candidates.Count())
	total := s.vocab.Len()
	opening := remaining == total

	if opening {
		if idx, ok := s.cache.Lookup(s.vocab.Fingerprint()); ok && idx < total {
			s.logger.DebugContext(ctx, "using cached opening", "index", idx)
			return s.suggest(idx, remaining, 0, ReasonCached), nil
		}
	}

	switch remaining {
	case 0:
		return Suggestion{}, ErrNoCandidates
	case 1, 2:
		first, _ := candidates.NextSet(0)
		reason := ReasonUnique
		if remaining == 2 {
			reason = ReasonPair
		}
		return s.suggest(int(first), remaining, 0, reason), nil
	}

	s.logger.DebugContext(ctx, "scoring guesses", "remaining", remaining, "vocabulary", total, "workers", s.workers)

	best, err := s.scoreAll(ctx, c, candidates)
	if err != nil {
		return Suggestion{}, err
	}

	if opening {
		s.cache.Store(s.vocab.Fingerprint(), best.index)
		s.logger.InfoContext(ctx, "computed opening guess", "word", s.vocab.At(best.index).String(), "score", best.score)
	}
	return s.suggest(best.index, remaining, best.score, ReasonScored), nil
}

func (s *Solver) suggest(idx, remaining, score int, reason Reason) Suggestion {
	return Suggestion{
		Index:     idx,
		Word:      s.vocab.At(idx),
		Remaining: remaining,
		Score:     score,
		Reason:    reason,
	}
}
