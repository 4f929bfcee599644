// Package app wires configuration, the word list, the first-guess cache and the solver
// together for the command line and the cloud function.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"crosswarped.com/wordle"
	"crosswarped.com/wordle/internal/cache"
	"crosswarped.com/wordle/internal/config"
	"crosswarped.com/wordle/internal/wordlist"
)

// Options carries what the configuration cannot express.
type Options struct {
	// Progress is handed to the solver unless cfg.Solver.Quiet is set.
	Progress func(total int) wordle.Progress
}

// App owns a ready Solver and the cache it writes to.
type App struct {
	Solver *wordle.Solver

	cache     *cache.FirstGuessCache
	cachePath string
	logger    *slog.Logger
}

// Source builds the word list source named by the configuration.
func Source(cfg config.VocabularyConfig) (wordlist.Source, error) {
	switch strings.ToLower(cfg.Source) {
	case config.SourceFile:
		return wordlist.File{Path: cfg.Path}, nil
	case config.SourceBigQuery:
		return wordlist.BigQuery{
			Project:  cfg.BigQueryProject,
			Query:    cfg.BigQueryQuery,
			Location: cfg.BigQueryLocation,
		}, nil
	}
	return nil, fmt.Errorf("unknown vocabulary source %q", cfg.Source)
}

// New loads the vocabulary and the first-guess cache and builds the solver.
//
// A corrupt or unreadable cache is logged and replaced by an empty one; it never stops
// the solver from starting.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	src, err := Source(cfg.Vocabulary)
	if err != nil {
		return nil, err
	}
	vocab, err := wordlist.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "vocabulary loaded",
		slog.String("source", fmt.Sprint(src)),
		slog.Int("words", vocab.Len()),
		slog.Int("length", vocab.WordLen()),
	)

	a := &App{logger: logger}
	if cfg.Cache.Disabled {
		a.cache = cache.New()
	} else {
		a.cachePath = cfg.Cache.Path
		if a.cachePath == "" {
			if a.cachePath, err = cache.DefaultPath(); err != nil {
				logger.WarnContext(ctx, "no user cache directory, first guesses will not persist", slog.String("error", err.Error()))
			}
		}
		a.cache = cache.New()
		if a.cachePath != "" {
			loaded, err := cache.Load(a.cachePath)
			if err != nil {
				level := slog.LevelWarn
				if !errors.Is(err, cache.ErrCorrupt) {
					level = slog.LevelError
				}
				logger.Log(ctx, level, "ignoring first-guess cache", slog.String("path", a.cachePath), slog.String("error", err.Error()))
			}
			a.cache = loaded
		}
	}

	params := wordle.SolverParams{
		Cache:      a.cache,
		Workers:    cfg.Solver.Workers,
		MaxGuesses: cfg.Solver.MaxGuesses,
		Logger:     logger,
	}
	if !cfg.Solver.Quiet {
		params.Progress = opts.Progress
	}
	a.Solver = wordle.CreateSolver(vocab, params)
	return a, nil
}

// Close persists the first-guess cache when the solver added to it.
func (a *App) Close(ctx context.Context) error {
	if a.cachePath == "" || !a.cache.Dirty() {
		return nil
	}
	if err := a.cache.Save(a.cachePath); err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "first-guess cache saved", slog.String("path", a.cachePath))
	return nil
}
