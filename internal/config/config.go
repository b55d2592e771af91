// Package config loads cbb-gamelogs settings.
//
// Settings are layered, lowest precedence first: built-in defaults, an
// optional YAML file (the --config flag or CBB_CONFIG), then CBB_ environment
// variables. Nested keys use a double underscore in the environment, so
// CBB_SCRAPER__WORKERS sets scraper.workers. Command-line flags are applied by
// the CLI on top of the loaded Config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pfrederiksen/cbb-gamelogs/internal/features"
	"github.com/pfrederiksen/cbb-gamelogs/internal/scraper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "CBB_"
	// EnvConfigFile names a YAML file to load when no path is given.
	EnvConfigFile = EnvPrefix + "CONFIG"

	DefaultDataDir = "~/.local/share/cbb-gamelogs"
)

// Storage backends.
const (
	StorageCSV    = "csv"
	StorageSQLite = "sqlite"
)

// Config holds every setting.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// DataDir holds CSV output, the SQLite database and the page cache.
	DataDir string `koanf:"data_dir" validate:"required"`

	// Storage selects the backend: csv or sqlite.
	Storage string `koanf:"storage" validate:"oneof=csv sqlite"`

	// SQLitePath defaults to cbb.db inside DataDir.
	SQLitePath string `koanf:"sqlite_path"`

	// MetricsFile, when set, receives run metrics in Prometheus text format.
	MetricsFile string `koanf:"metrics_file"`

	Scraper  ScraperConfig  `koanf:"scraper"`
	Features FeaturesConfig `koanf:"features"`
}

// ScraperConfig controls page fetching.
type ScraperConfig struct {
	BaseURL         string        `koanf:"base_url" validate:"required,url"`
	UserAgent       string        `koanf:"user_agent" validate:"required"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestInterval time.Duration `koanf:"request_interval" validate:"gte=0"`
	MaxRetries      int           `koanf:"max_retries" validate:"gte=0,lte=20"`
	Workers         int           `koanf:"workers" validate:"gte=1,lte=16"`
	Cache           bool          `koanf:"cache"`
	CacheTTL        time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// FeaturesConfig controls training row construction.
type FeaturesConfig struct {
	Warmup  int      `koanf:"warmup" validate:"gte=0"`
	Workers int      `koanf:"workers" validate:"gte=1"`
	Stats   []string `koanf:"stats" validate:"omitempty,dive,required"`
}

// New returns the defaults.
func New() *Config {
	sc := scraper.DefaultConfig()
	return &Config{
		LogLevel: "info",
		DataDir:  DefaultDataDir,
		Storage:  StorageCSV,
		Scraper: ScraperConfig{
			BaseURL:         sc.BaseURL,
			UserAgent:       sc.UserAgent,
			Timeout:         sc.Timeout,
			RequestInterval: sc.RequestInterval,
			MaxRetries:      int(sc.MaxRetries),
			Workers:         sc.Workers,
			Cache:           true,
			CacheTTL:        scraper.DefaultCacheTTL,
		},
		Features: FeaturesConfig{
			Warmup:  features.DefaultWarmup,
			Workers: 4,
		},
	}
}

// envKey maps CBB_SCRAPER__WORKERS to scraper.workers. CBB_CONFIG is not a
// setting and maps to "", which koanf skips.
func envKey(s string) string {
	if s == EnvConfigFile {
		return ""
	}
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Load layers defaults, the YAML file at path (or $CBB_CONFIG when path is
// empty) and the environment, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "loading config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "loading environment")
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field constraint and reports all violations at once.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.Storage = strings.ToLower(c.Storage)

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validating config")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Namespace()+" fails "+fe.Tag()+" (got "+toString(fe.Value())+")")
	}
	return errors.Newf("invalid config: %s", strings.Join(msgs, "; "))
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

// Stats returns the configured statistics, or the defaults.
func (c *Config) Stats() []string {
	if len(c.Features.Stats) == 0 {
		return features.DefaultStats
	}
	return c.Features.Stats
}

// DatabasePath is SQLitePath or cbb.db in DataDir.
func (c *Config) DatabasePath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.DataDir, "cbb.db")
}

// CacheDir is where fetched pages are cached.
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, "pages")
}

// ScraperSettings converts the scraper section for scraper.New.
func (c *Config) ScraperSettings() scraper.Config {
	return scraper.Config{
		BaseURL:         c.Scraper.BaseURL,
		UserAgent:       c.Scraper.UserAgent,
		Timeout:         c.Scraper.Timeout,
		RequestInterval: c.Scraper.RequestInterval,
		MaxRetries:      uint64(c.Scraper.MaxRetries),
		Workers:         c.Scraper.Workers,
	}
}
