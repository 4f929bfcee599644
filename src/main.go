package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"crosswarped.com/wordle"
	"crosswarped.com/wordle/internal/app"
	"crosswarped.com/wordle/internal/config"
)

// Candidates are returned with a best guess when fewer than this many remain.
const listBelow = 15

type BestGuessRequest struct {
	Rows []string `json:"rows"`
}

type BestGuessResponse struct {
	Success    bool     `json:"success"`
	Guess      string   `json:"guess,omitempty"`
	Remaining  int      `json:"remaining"`
	Candidates []string `json:"candidates,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type SimulateRequest struct {
	Answer string `json:"answer"`
}

type SimulateResponse struct {
	Success bool     `json:"success"`
	Guesses []string `json:"guesses"`
	Rows    []string `json:"rows"`
	Solved  bool     `json:"solved"`
	Error   string   `json:"error,omitempty"`
}

var (
	appMu  sync.Mutex
	theApp *app.App
	// newApp builds the app on first use; tests replace it.
	newApp = loadApp
)

func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Solver.Quiet = true
	return app.New(ctx, cfg, app.NewLogger(cfg.Log), app.Options{})
}

// getApp loads the vocabulary on first use so cold starts that only answer CORS preflights
// stay cheap. A failed load is not remembered; the next request tries again.
func getApp(ctx context.Context) (*app.App, error) {
	appMu.Lock()
	defer appMu.Unlock()
	if theApp != nil {
		return theApp, nil
	}
	// The app is shared by later requests; cancelling this one must not abort the load.
	a, err := newApp(context.WithoutCancel(ctx))
	if err != nil {
		slog.ErrorContext(ctx, "loading solver", slog.String("error", err.Error()))
		return nil, err
	}
	theApp = a
	return theApp, nil
}

func withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		slog.DebugContext(ctx, "request deadline", slog.Duration("timeout", timeout))
	}
	return context.WithTimeout(ctx, timeout)
}

func bestGuess(ctx context.Context, req BestGuessRequest) (BestGuessResponse, error) {
	a, err := getApp(ctx)
	if err != nil {
		return BestGuessResponse{}, fmt.Errorf("loading solver: %w", err)
	}
	s := a.Solver

	c, err := s.ParseRows(req.Rows)
	if err != nil {
		return BestGuessResponse{}, err
	}

	ctx, cancel := withDeadline(ctx)
	defer cancel()

	sug, err := s.BestGuess(ctx, &c)
	if errors.Is(err, wordle.ErrNoCandidates) {
		return BestGuessResponse{Remaining: 0}, err
	}
	if err != nil {
		return BestGuessResponse{}, err
	}
	if err := a.Close(ctx); err != nil {
		slog.WarnContext(ctx, "saving first-guess cache", slog.String("error", err.Error()))
	}

	resp := BestGuessResponse{Guess: sug.Word.String(), Remaining: sug.Remaining}
	if sug.Remaining < listBelow {
		resp.Candidates = s.Candidates(&c)
	}
	return resp, nil
}

func simulate(ctx context.Context, req SimulateRequest) (SimulateResponse, error) {
	if req.Answer == "" {
		return SimulateResponse{}, fmt.Errorf("answer must not be empty")
	}
	a, err := getApp(ctx)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("loading solver: %w", err)
	}

	ctx, cancel := withDeadline(ctx)
	defer cancel()

	game, err := a.Solver.Play(ctx, req.Answer)
	resp := SimulateResponse{Guesses: game.Guesses, Rows: game.Rows, Solved: game.Solved}
	return resp, err
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

// handle decodes a JSON request of type Req, runs fn and encodes its response, reporting
// errors through setErr so each response type keeps its own shape.
func handle[Req any, Resp any](fn func(context.Context, Req) (Resp, error), setErr func(*Resp, error)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
			return
		}

		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.WarnContext(r.Context(), "invalid request body", slog.String("error", err.Error()))
			var resp Resp
			setErr(&resp, fmt.Errorf("Invalid JSON: %v", err))
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(resp)
			return
		}

		resp, err := fn(r.Context(), req)
		setErr(&resp, err)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.ErrorContext(r.Context(), "encoding response", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
			return
		}
	}
}

var bestGuessHandler = handle(bestGuess, func(resp *BestGuessResponse, err error) {
	resp.Success = err == nil
	if err != nil {
		resp.Error = err.Error()
	}
})

var simulateHandler = handle(simulate, func(resp *SimulateResponse, err error) {
	resp.Success = err == nil
	if err != nil {
		resp.Error = err.Error()
	}
})

func main() {
	funcframework.RegisterHTTPFunction("/best-guess", bestGuessHandler)
	funcframework.RegisterHTTPFunction("/simulate", simulateHandler)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config.Load: %v\n", err)
	}
	hostname := cfg.Server.Host
	if cfg.Server.LocalOnly {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, strconv.Itoa(cfg.Server.Port)); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
