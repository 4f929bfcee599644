package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically; call it again after
// overriding fields from flags.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Vocabulary.Source) {
	case SourceFile:
		if c.Vocabulary.Path == "" {
			return fmt.Errorf("vocabulary.path must be set for source %q", SourceFile)
		}
	case SourceBigQuery:
		if c.Vocabulary.BigQueryProject == "" || c.Vocabulary.BigQueryQuery == "" {
			return fmt.Errorf("vocabulary.bigquery_project and vocabulary.bigquery_query must be set for source %q", SourceBigQuery)
		}
	default:
		return fmt.Errorf("vocabulary.source must be %q or %q (got %q)", SourceFile, SourceBigQuery, c.Vocabulary.Source)
	}

	if c.Solver.MaxGuesses < 0 {
		return fmt.Errorf("solver.max_guesses must be >= 0 (got %d)", c.Solver.MaxGuesses)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}
	return nil
}
