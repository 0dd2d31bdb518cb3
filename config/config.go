package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Vocabulary formats accepted by VocabularyConfig.Format.
const (
	FormatText     = "text"
	FormatSnapshot = "snapshot"
	FormatSQLite   = "sqlite"
)

const envPrefix = "FUZZYSEM"

// Config is the fuzzysem configuration.
type Config struct {
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	DB         DBConfig         `mapstructure:"db"`
	Log        LogConfig        `mapstructure:"log"`
}

// VocabularyConfig locates the word-embedding vocabulary.
type VocabularyConfig struct {
	// Path is a ".vec" text file or a snapshot file. It is ignored for the
	// sqlite format, which reads Table from DB.DSN.
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
	Table  string `mapstructure:"table"`
}

// CacheConfig sizes the sentence embedding cache; Size 0 disables it.
type CacheConfig struct {
	Size int `mapstructure:"size"`
}

// DBConfig selects the SQLite database used by catalog and sqlite
// vocabularies.
type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"vocab":        "vocabulary.path",
	"vocab-format": "vocabulary.format",
	"vocab-table":  "vocabulary.table",
	"cache-size":   "cache.size",
	"db":           "db.dsn",
	"log-level":    "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("vocabulary.path", "")
	v.SetDefault("vocabulary.format", FormatText)
	v.SetDefault("vocabulary.table", "vocabulary")
	v.SetDefault("cache.size", 4096)
	v.SetDefault("db.dsn", ":memory:")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration. When file is empty, fuzzysem.yaml is looked up in
// the working directory and $HOME/.config/fuzzysem; a missing file is not an
// error. Flags that were set on the command line override everything else.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("fuzzysem")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/fuzzysem")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Vocabulary.Format {
	case FormatText, FormatSnapshot, FormatSQLite:
	default:
		return fmt.Errorf("config: unknown vocabulary format %q", c.Vocabulary.Format)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("config: cache size must not be negative: %d", c.Cache.Size)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// NewLogger builds the slog logger described by the log settings.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid log level %q", s)
	}
	return level, nil
}
