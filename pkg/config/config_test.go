package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir into an empty dir so a developer's .env does not leak into the test.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{
		"CONFIG_FILE", "PORT", "LLM_PROVIDER", "LLM_API_KEY", "LLM_TEMPERATURE", "SERP_API_KEY",
		"GOOGLE_API_KEY", "GOOGLE_CSE_ID", "MAX_ITERATIONS", "REAP_INTERVAL", "DEBUG", "REDIS_URL",
		"JWT_SECRET", "RESULT_RETENTION",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, ProviderOpenRouter, cfg.LLM.Provider)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, 60, cfg.MaxExecutionTime)
	assert.Equal(t, 3600, cfg.Jobs.ResultRetention)
	assert.Equal(t, 5*time.Minute, cfg.Jobs.ReapInterval)
	assert.Equal(t, "icebreaker", cfg.JWT.Issuer)
	assert.Empty(t, cfg.JWT.Secret)
	assert.Equal(t, SearchNone, cfg.SearchBackend())
	assert.Contains(t, cfg.UserAgent, "Mozilla/5.0")
}

func TestLoadYAMLThenEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
llm:
  provider: anthropic
  temperature: 0.2
max_iterations: 8
jobs:
  reap_interval: 30s
  workers: 2
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MAX_ITERATIONS", "3")
	t.Setenv("DEBUG", "true")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, 30*time.Second, cfg.Jobs.ReapInterval)
	assert.Equal(t, 2, cfg.Jobs.Workers)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Jobs.RedisURL)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	isolate(t)
	t.Setenv("LLM_PROVIDER", "cohere")
	_, err = Load()
	assert.ErrorContains(t, err, "LLM_PROVIDER")

	isolate(t)
	t.Setenv("MAX_ITERATIONS", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "MAX_ITERATIONS")

	isolate(t)
	t.Setenv("GOOGLE_API_KEY", "key")
	_, err = Load()
	assert.ErrorContains(t, err, "GOOGLE_CSE_ID")
}

func TestSearchBackend(t *testing.T) {
	var cfg Config
	cfg.Search.GoogleAPIKey = "g"
	cfg.Search.GoogleCSEID = "cx"
	assert.Equal(t, SearchGoogleCSE, cfg.SearchBackend())

	cfg.Search.SerpAPIKey = "s"
	assert.Equal(t, SearchSerpAPI, cfg.SearchBackend())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "nope")
	assert.Equal(t, 7, getEnvInt("X_INT", 7))
	t.Setenv("X_DUR", "90")
	assert.Equal(t, 90*time.Second, getEnvDuration("X_DUR", time.Second))
	t.Setenv("X_DUR", "2m")
	assert.Equal(t, 2*time.Minute, getEnvDuration("X_DUR", time.Second))
	t.Setenv("X_FLOAT", "0.25")
	assert.InDelta(t, 0.25, getEnvFloat("X_FLOAT", 1), 1e-9)
	t.Setenv("X_BOOL", "1")
	assert.True(t, getEnvBool("X_BOOL", false))
}
