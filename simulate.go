package wordle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"crosswarped.com/wordle/pkg/primitives"
)

// Play simulates a game against answer, asking BestGuess for each turn and feeding back the
// honest result, until the answer is guessed or the guess limit is reached.
func (s *Solver) Play(ctx context.Context, answer string) (Game, error) {
	target, err := primitives.NewWord(answer)
	if err != nil {
		return Game{}, err
	}
	if target.Len() != s.vocab.WordLen() {
		return Game{}, fmt.Errorf("answer %q has %d letters, vocabulary has %d: %w", answer, target.Len(), s.vocab.WordLen(), ErrAnswerLength)
	}

	game := Game{Answer: target.String()}
	c := s.NewConstraint()
	row := s.NewConstraint()
	for range s.maxGuesses {
		sug, err := s.BestGuess(ctx, &c)
		if err != nil {
			return game, fmt.Errorf("%s after %d guesses: %w", game.Answer, game.Len(), err)
		}
		game.Guesses = append(game.Guesses, sug.Word.String())
		game.Rows = append(game.Rows, primitives.FormatRow(sug.Word, target))
		if sug.Word.String() == game.Answer {
			game.Solved = true
			return game, nil
		}
		row.SetFeedback(sug.Word, target)
		c.Merge(&row)
	}
	s.logger.WarnContext(ctx, "guess limit reached", "answer", game.Answer, "limit", s.maxGuesses)
	return game, nil
}

// Evaluate plays a game against every vocabulary word and tabulates how many guesses each
// took. Games are independent and run in parallel; the opening is computed once up front so
// they all share it.
func (s *Solver) Evaluate(ctx context.Context) (Report, error) {
	empty := s.NewConstraint()
	if _, err := s.BestGuess(ctx, &empty); err != nil {
		return Report{}, err
	}

	batch := *s
	batch.progress = nil

	games := make([]Game, s.vocab.Len())
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range games {
		g.Go(func() error {
			game, err := batch.Play(ctx, s.vocab.At(i).String())
			if err != nil {
				return err
			}
			games[i] = game
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return newReport(games), nil
}
