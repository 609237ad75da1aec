package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Lookup  LookupConfig  `yaml:"lookup"`
	Cache   CacheConfig   `yaml:"cache"`
	Sources SourcesConfig `yaml:"sources"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// LookupConfig holds the orchestration and resilience settings of the
// lookup engine. Retry and circuit parameters apply per source.
type LookupConfig struct {
	MaxQueryLength   int           `yaml:"max_query_length"   env:"LOOKUP_MAX_QUERY_LENGTH"   env-default:"256"`
	PerSourceTimeout time.Duration `yaml:"per_source_timeout" env:"LOOKUP_PER_SOURCE_TIMEOUT" env-default:"3s"`

	MaxRetries            int           `yaml:"max_retries"             env:"LOOKUP_MAX_RETRIES"             env-default:"2"`
	BackoffBase           time.Duration `yaml:"backoff_base"            env:"LOOKUP_BACKOFF_BASE"            env-default:"200ms"`
	BackoffJitterFraction float64       `yaml:"backoff_jitter_fraction" env:"LOOKUP_BACKOFF_JITTER_FRACTION" env-default:"0.25"`

	CircuitFailureThreshold int           `yaml:"circuit_failure_threshold" env:"LOOKUP_CIRCUIT_FAILURE_THRESHOLD" env-default:"5"`
	CircuitWindow           time.Duration `yaml:"circuit_window"            env:"LOOKUP_CIRCUIT_WINDOW"            env-default:"1m"`
	CircuitCooldown         time.Duration `yaml:"circuit_cooldown"          env:"LOOKUP_CIRCUIT_COOLDOWN"          env-default:"30s"`

	// OuterDeadline bounds one whole lookup. Zero derives a ceiling from
	// one worst-case retry window.
	OuterDeadline time.Duration `yaml:"outer_deadline" env:"LOOKUP_OUTER_DEADLINE" env-default:"0s"`

	// RatePerSecond <= 0 disables per-source rate limiting.
	RatePerSecond float64 `yaml:"rate_per_second" env:"LOOKUP_RATE_PER_SECOND" env-default:"5"`
	RateBurst     int     `yaml:"rate_burst"      env:"LOOKUP_RATE_BURST"      env-default:"5"`
}

// CacheConfig holds result-cache settings. An empty Path disables the
// persistent SQLite layer; the in-memory cache is always on.
type CacheConfig struct {
	TTL        time.Duration `yaml:"ttl"         env:"CACHE_TTL"         env-default:"10m"`
	MaxEntries int           `yaml:"max_entries" env:"CACHE_MAX_ENTRIES" env-default:"256"`
	Path       string        `yaml:"path"        env:"CACHE_PATH"        env-default:""`
}

// SourcesConfig holds per-provider endpoint settings. Base URLs are
// overridable for tests and self-hosted mirrors.
type SourcesConfig struct {
	FreeDictBaseURL  string `yaml:"freedict_base_url"  env:"SOURCES_FREEDICT_BASE_URL"  env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	DatamuseBaseURL  string `yaml:"datamuse_base_url"  env:"SOURCES_DATAMUSE_BASE_URL"  env-default:"https://api.datamuse.com"`
	WikipediaBaseURL string `yaml:"wikipedia_base_url" env:"SOURCES_WIKIPEDIA_BASE_URL" env-default:"https://en.wikipedia.org/api/rest_v1/page/summary"`
	UserAgent        string `yaml:"user_agent"         env:"SOURCES_USER_AGENT"         env-default:""`
}

// WorstCaseCallWindow returns the ceiling for one fully retried source
// call: every attempt at full timeout plus the maximum backoff between
// attempts (exponential from BackoffBase, plus jitter).
func (c LookupConfig) WorstCaseCallWindow() time.Duration {
	attempts := c.MaxRetries + 1
	window := time.Duration(attempts) * c.PerSourceTimeout

	delay := c.BackoffBase
	for i := 0; i < c.MaxRetries; i++ {
		window += delay + time.Duration(float64(delay)*c.BackoffJitterFraction)
		delay *= 2
	}
	return window
}
