package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"researchbot/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultModel, cfg.Model.Name)
	assert.Equal(t, config.DefaultScoreThreshold, cfg.Retrieval.ScoreThreshold)
	assert.Equal(t, config.DefaultTopK, cfg.Retrieval.TopK)
	assert.Equal(t, config.DefaultMinQuizAnswerLen, cfg.Session.MinQuizAnswerLen)
	assert.Equal(t, config.DefaultListenAddr, cfg.ListenAddr)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultModel, cfg.Model.Name)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
model:
  name: gpt-4o
retrieval:
  docs_dir: /srv/corpus
  score_threshold: 0.7
  top_k: 3
redis:
  addr: localhost:6379
session:
  min_quiz_answer_len: 10
log_level: debug
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.Model.Name)
	assert.Equal(t, "/srv/corpus", cfg.Retrieval.DocsDir)
	assert.Equal(t, 0.7, cfg.Retrieval.ScoreThreshold)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10, cfg.Session.MinQuizAnswerLen)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset fields keep their defaults.
	assert.Equal(t, config.DefaultListenAddr, cfg.ListenAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
model:
  name: from-file
retrieval:
  score_threshold: 0.4
`)
	t.Setenv("RESEARCHBOT_MODEL", "from-env")
	t.Setenv("RESEARCHBOT_SCORE_THRESHOLD", "0.8")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Model.Name)
	assert.Equal(t, 0.8, cfg.Retrieval.ScoreThreshold)
	assert.Equal(t, "sk-test", cfg.Model.APIKey)
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"threshold above one", "retrieval:\n  score_threshold: 1.5\n"},
		{"threshold negative", "retrieval:\n  score_threshold: -0.1\n"},
		{"top_k zero", "retrieval:\n  top_k: 0\n"},
		{"answer length zero", "session:\n  min_quiz_answer_len: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestMalformedYAML(t *testing.T) {
	_, err := config.Load(writeConfig(t, "model: [unclosed"))
	assert.Error(t, err)
}
