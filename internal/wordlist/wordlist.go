// Package wordlist loads the words a solver works with from a newline-delimited file or from a
// BigQuery table.
package wordlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"crosswarped.com/wordle/pkg/primitives"
)

// ErrUnreadable wraps failures to open or read the word list resource.
var ErrUnreadable = errors.New("word list unreadable")

// Source provides the raw words of a vocabulary in a stable order.
type Source interface {
	Words(ctx context.Context) ([]string, error)
}

// Load reads every word from src and builds a Vocabulary from them.
func Load(ctx context.Context, src Source) (*primitives.Vocabulary, error) {
	words, err := src.Words(ctx)
	if err != nil {
		return nil, err
	}
	v, err := primitives.NewVocabulary(words)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return v, nil
}

// File is a newline-delimited word list on disk.
type File struct {
	Path string
}

func (f File) Words(ctx context.Context) ([]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer file.Close()

	words, err := Read(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return words, nil
}

func (f File) String() string {
	return f.Path
}

// Read returns one word per non-blank line of r. Lines are trimmed and folded to lower case;
// lines starting with '#' are comments.
func Read(ctx context.Context, r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return words, nil
}
