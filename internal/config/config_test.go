package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsComplete(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "sentences", cfg.Segmenter.Strategy)
	assert.Equal(t, 7, cfg.Segmenter.SentencesPerChunk)
	assert.Equal(t, 2000, cfg.Segmenter.WindowSize)
	assert.Equal(t, 200, cfg.Segmenter.WindowOverlap)

	assert.NotEmpty(t, cfg.Normalizer.NoiseWords)
	assert.NotEmpty(t, cfg.Normalizer.Factions)
	assert.NotEmpty(t, cfg.Normalizer.GeoSuffixes)
	assert.NotEmpty(t, cfg.Normalizer.KnownLocs)
	assert.NotEmpty(t, cfg.Normalizer.AliasMap)
	assert.NotEmpty(t, cfg.TargetMap)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Greater(t, cfg.Labeler.RequestsPerSec, 0.0)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fablemap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[segmenter]
strategy = "windows"
window_size = 1500

[normalizer]
min_name_len = 4

[neo4j]
uri = "bolt://localhost:7687"
`), 0o644))

	t.Setenv("NEO4J_URI", "")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "windows", cfg.Segmenter.Strategy)
	assert.Equal(t, 1500, cfg.Segmenter.WindowSize)
	assert.Equal(t, 4, cfg.Normalizer.MinNameLen)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	// Untouched sections keep their defaults.
	assert.Equal(t, 7, cfg.Segmenter.SentencesPerChunk)
	assert.NotEmpty(t, cfg.Normalizer.NoiseWords)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Segmenter, cfg.Segmenter)
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")

	assert.Equal(t, "g-key", apiKeyFromEnv("gemini"))
	assert.Equal(t, "o-key", apiKeyFromEnv("openai"))
	assert.Equal(t, "a-key", apiKeyFromEnv("claude"))
	assert.Equal(t, "g-key", apiKeyFromEnv("anything-else"))
}
