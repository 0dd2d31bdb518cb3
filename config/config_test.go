package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, FormatText, cfg.Vocabulary.Format)
	assert.Equal(t, "vocabulary", cfg.Vocabulary.Table)
	assert.Equal(t, 4096, cfg.Cache.Size)
	assert.Equal(t, ":memory:", cfg.DB.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "fuzzysem.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
vocabulary:
  path: /data/cc.en.300.short.vec
  format: text
cache:
  size: 10
log:
  level: debug
`), 0o644))
	t.Setenv("FUZZYSEM_CACHE_SIZE", "20")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("vocab-format", "", "")
	flags.String("db", "", "")
	require.NoError(t, flags.Parse([]string{"--vocab-format", "snapshot"}))

	cfg, err := Load(file, flags)
	require.NoError(t, err)
	assert.Equal(t, "/data/cc.en.300.short.vec", cfg.Vocabulary.Path)
	assert.Equal(t, FormatSnapshot, cfg.Vocabulary.Format, "flag overrides file")
	assert.Equal(t, 20, cfg.Cache.Size, "env overrides file")
	assert.Equal(t, ":memory:", cfg.DB.DSN, "unset flag keeps the default")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Vocabulary: VocabularyConfig{Format: "csv"}, Log: LogConfig{Level: "info"}}
	assert.Error(t, cfg.Validate())

	cfg.Vocabulary.Format = FormatSQLite
	assert.NoError(t, cfg.Validate())

	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg.Log.Level = "warn"
	cfg.Cache.Size = -1
	assert.Error(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Log: LogConfig{Level: "warn", Format: "json"}}
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
