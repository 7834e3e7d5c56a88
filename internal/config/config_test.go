package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "[.]xml$", cfg.Scoring.XMLNameRegex)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.False(t, cfg.Scoring.Overlap)
	assert.Nil(t, cfg.Scoring.Include)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anafora-eval.yaml")
	content := `scoring:
  include: [Person, "Person:name"]
  overlap: true
log:
  level: debug
output:
  report: results.json.xz
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Person", "Person:name"}, cfg.Scoring.Include)
	assert.True(t, cfg.Scoring.Overlap)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset fields keep defaults")
	assert.Equal(t, "[.]xml$", cfg.Scoring.XMLNameRegex)
	assert.Equal(t, "results.json.xz", cfg.Output.Report)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring: [unterminated"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad regex", func(c *Config) { c.Scoring.XMLNameRegex = "([" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad output format", func(c *Config) { c.Output.Format = "csv" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.Include = []string{"Person"}
	cfg.Output.Database = "runs.db"

	cfg.Merge(&Config{
		Scoring: ScoringConfig{Exclude: []string{"Person:name"}, Overlap: true},
		Log:     LogConfig{Format: "json"},
		Output:  OutputConfig{MetricsFile: "eval.prom"},
	})

	assert.Equal(t, []string{"Person"}, cfg.Scoring.Include)
	assert.Equal(t, []string{"Person:name"}, cfg.Scoring.Exclude)
	assert.True(t, cfg.Scoring.Overlap)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "runs.db", cfg.Output.Database)
	assert.Equal(t, "eval.prom", cfg.Output.MetricsFile)

	cfg.Merge(nil)
	assert.True(t, cfg.Scoring.Overlap)
}

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring:\n  include: [Person, Place]\n  exclude: [Ghost]\n"), 0644))

	want := DefaultConfig()
	want.Scoring.Include = []string{"Person", "Place"}
	want.Scoring.Exclude = []string{"Ghost"}

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, loaded)
}
