package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.GetModel())
	assert.Equal(t, 30*time.Second, cfg.GetSubmitTimeout())
	assert.Equal(t, 2*time.Minute, cfg.GetLetterTimeout())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	in := &UserConfig{
		GeminiAPIKey:   "test-key",
		Model:          "gemini-1.5-pro",
		SubmitEndpoint: "https://grievances.example.gov/api/v1/issues",
		SubmitTimeout:  "45s",
		Logging:        LoggingConfig{DebugMode: true, Level: "debug"},
	}
	require.NoError(t, in.Save(path))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-key", out.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-pro", out.GetModel())
	assert.Equal(t, 45*time.Second, out.GetSubmitTimeout())
	assert.True(t, out.Logging.DebugMode)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, (&UserConfig{GeminiAPIKey: "file-key", Model: "gemini-1.5-flash"}).Save(path))

	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("JANCONNECT_MODEL", "gemini-1.5-pro")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.GetModel())
}

func TestBadDurationFallsBack(t *testing.T) {
	cfg := &UserConfig{SubmitTimeout: "not-a-duration", LetterTimeout: "-3s"}
	assert.Equal(t, 30*time.Second, cfg.GetSubmitTimeout())
	assert.Equal(t, 2*time.Minute, cfg.GetLetterTimeout())
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
