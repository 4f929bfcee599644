package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"crosswarped.com/wordle"
	"crosswarped.com/wordle/internal/app"
	"crosswarped.com/wordle/internal/config"
)

// Candidates are listed in verbose mode when fewer than this many remain.
const listBelow = 15

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [row ...]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Each row is the feedback for one guess: space separated position groups,")
		fmt.Fprintln(flag.CommandLine.Output(), "'x' green, '~x' yellow, '-x' gray. Example: \"-c ~r a -n e\"")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}

	configFile := flag.String("config", "", "The YAML config file to read (default $CONFIG_PATH or ./config.yaml)")
	words := flag.String("words", "", "The file to load words from (overrides config)")
	answer := flag.String("test", "", "Simulate a game against this answer")
	fullTest := flag.Bool("full-test", false, "Simulate a game against every word and print the histogram")
	verbose := flag.Bool("v", false, "Print the remaining candidates")
	workers := flag.Int("workers", 0, "Scoring goroutines (overrides config)")
	noCache := flag.Bool("no-cache", false, "Do not read or write the first-guess cache")
	noProgress := flag.Bool("no-progress", false, "Hide the scoring progress bar")

	timeout := flag.Duration("timeout", 10*time.Minute, "The timeout for the solver")

	profile := flag.Bool("profile", false, "Profile the solver")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	flag.Parse()

	if *answer != "" && *fullTest {
		fmt.Println("Cannot use both -test and -full-test")
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if *words != "" {
		cfg.Vocabulary.Source = config.SourceFile
		cfg.Vocabulary.Path = *words
	}
	if *workers > 0 {
		cfg.Solver.Workers = *workers
	}
	if *noCache {
		cfg.Cache.Disabled = true
	}
	if *noProgress || *fullTest {
		cfg.Solver.Quiet = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Error in config:", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	a, err := app.New(ctx, cfg, logger, app.Options{Progress: newProgressBar})
	if err != nil {
		fmt.Println("Error loading words:", err)
		os.Exit(1)
	}

	var mf *os.File
	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer f.Close()

		mf, err = os.Create(*memoryProfileFile)
		if err != nil {
			fmt.Println("Error creating memory profile file:", err)
			os.Exit(1)
		}
		defer mf.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	switch {
	case *fullTest:
		err = runFullTest(ctx, a.Solver)
	case *answer != "":
		err = runTest(ctx, a.Solver, *answer)
	default:
		err = runBestGuess(ctx, a.Solver, flag.Args(), *verbose)
	}

	if closeErr := a.Close(ctx); closeErr != nil {
		logger.Error("saving first-guess cache", slog.String("error", closeErr.Error()))
	}
	if mf != nil {
		pprof.WriteHeapProfile(mf)
	}

	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("Context error:", ctx.Err())
		} else {
			fmt.Println("Error:", err)
		}
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func newProgressBar(total int) wordle.Progress {
	return progressbar.Default(int64(total), "scoring")
}

func runBestGuess(ctx context.Context, s *wordle.Solver, rows []string, verbose bool) error {
	c, err := s.ParseRows(rows)
	if err != nil {
		return err
	}

	if verbose {
		candidates := s.Candidates(&c)
		fmt.Printf("%d/%d words remaining\n", len(candidates), s.Vocabulary().Len())
		if len(candidates) > 0 && len(candidates) < listBelow {
			fmt.Println(strings.Join(candidates, " "))
		}
	}

	sug, err := s.BestGuess(ctx, &c)
	if errors.Is(err, wordle.ErrNoCandidates) {
		fmt.Println("No words match those rows")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("Best guess:", sug.Word)
	return nil
}

func runTest(ctx context.Context, s *wordle.Solver, answer string) error {
	game, err := s.Play(ctx, answer)
	for i, guess := range game.Guesses {
		fmt.Printf("%d. %s    %s\n", i+1, guess, game.Rows[i])
	}
	if err != nil {
		return err
	}
	if !game.Solved {
		fmt.Printf("Gave up on %s after %d guesses\n", game.Answer, game.Len())
		return nil
	}
	fmt.Println(game.Repr())
	return nil
}

func runFullTest(ctx context.Context, s *wordle.Solver) error {
	start := time.Now()
	report, err := s.Evaluate(ctx)
	if err != nil {
		return err
	}
	for _, game := range report.Games {
		if game.Solved {
			fmt.Println(game.Repr())
		} else {
			fmt.Println(game.DebugString())
		}
	}
	fmt.Println("--------------------------------")
	fmt.Println(report.Repr())
	fmt.Printf("%d games in %v\n", len(report.Games), time.Since(start).Round(time.Millisecond))
	return nil
}
