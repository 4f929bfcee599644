package config

// Config is the root application configuration.
type Config struct {
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Cache      CacheConfig      `yaml:"cache"`
	Solver     SolverConfig     `yaml:"solver"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

const (
	SourceFile     = "file"
	SourceBigQuery = "bigquery"
)

// VocabularyConfig says where the word list comes from.
type VocabularyConfig struct {
	Source           string `yaml:"source"            env:"WORDLE_SOURCE"            env-default:"file"`
	Path             string `yaml:"path"              env:"WORDLE_WORDS"             env-default:"words"`
	BigQueryProject  string `yaml:"bigquery_project"  env:"WORDLE_BIGQUERY_PROJECT"`
	BigQueryQuery    string `yaml:"bigquery_query"    env:"WORDLE_BIGQUERY_QUERY"`
	BigQueryLocation string `yaml:"bigquery_location" env:"WORDLE_BIGQUERY_LOCATION" env-default:"US"`
}

// CacheConfig holds first-guess cache settings.
type CacheConfig struct {
	// Path defaults to the user cache directory when empty.
	Path     string `yaml:"path"     env:"WORDLE_CACHE_PATH"`
	Disabled bool   `yaml:"disabled" env:"WORDLE_CACHE_DISABLED" env-default:"false"`
}

// SolverConfig tunes guess selection.
type SolverConfig struct {
	Workers    int `yaml:"workers"     env:"WORDLE_WORKERS"     env-default:"0"`
	MaxGuesses int `yaml:"max_guesses" env:"WORDLE_MAX_GUESSES" env-default:"100"`

	// Quiet hides the scoring progress bar.
	Quiet bool `yaml:"quiet" env:"WORDLE_QUIET" env-default:"false"`
}

// ServerConfig holds Cloud Function listener settings.
type ServerConfig struct {
	Host      string `yaml:"host"       env:"HOST"`
	Port      int    `yaml:"port"       env:"PORT"       env-default:"8080"`
	LocalOnly bool   `yaml:"local_only" env:"LOCAL_ONLY" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
