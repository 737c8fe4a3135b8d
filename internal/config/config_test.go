package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xuanyiying/movr/internal/problem"
)

func TestConfigurationRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := generateRandomConfig(t)

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "movrrc_test.yaml")

		manager := NewManager(configPath)
		require.NoError(t, manager.Save(cfg))

		loadedManager := NewManager(configPath)
		loaded, err := loadedManager.Load()
		require.NoError(t, err)

		assert.Equal(t, cfg.Structure, loaded.Structure)
		assert.Equal(t, cfg.Indent, loaded.Indent)
		assert.Equal(t, cfg.SeqStart, loaded.SeqStart)
		assert.Equal(t, cfg.SeqStep, loaded.SeqStep)
		assert.Equal(t, cfg.AI.Backend, loaded.AI.Backend)
		assert.Equal(t, cfg.AI.Ollama.BaseURL, loaded.AI.Ollama.BaseURL)
		assert.Equal(t, cfg.AI.Ollama.Model, loaded.AI.Ollama.Model)
		assert.Equal(t, cfg.AI.Ollama.Timeout, loaded.AI.Ollama.Timeout)
		assert.Equal(t, cfg.ExecutionLogPath, loaded.ExecutionLogPath)

		require.Len(t, loaded.Controls, len(cfg.Controls))
		for i, cb := range cfg.Controls {
			assert.Equal(t, cb.Kind, loaded.Controls[i].Kind)
			assert.Equal(t, cb.Control, loaded.Controls[i].Control)
		}
	})
}

func TestDefaultConfiguration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent.yaml")

	manager := NewManager(configPath)
	cfg, err := manager.Load()

	require.NoError(t, err)
	assert.Equal(t, "flat", cfg.Structure)
	assert.Equal(t, 1, cfg.Indent)
	assert.Equal(t, 1, cfg.SeqStart)
	assert.Equal(t, 1, cfg.SeqStep)
	assert.Equal(t, "http://localhost:11434", cfg.AI.Ollama.BaseURL)
	assert.Equal(t, "llama3.2", cfg.AI.Ollama.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Ollama.Timeout)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.OpenAI.Model)
}

func TestConfigurationPersistence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "movrrc.yaml")

	cfg := &Config{
		Structure: "pairs",
		Indent:    2,
		SeqStart:  1,
		SeqStep:   1,
		Controls: []ControlBinding{
			{Kind: "missing", Control: "skip"},
			{Kind: "existing", Control: "clobber"},
		},
		ExecutionLogPath: "/tmp/movr-execution-log.json",
	}

	manager := NewManager(configPath)
	require.NoError(t, manager.Save(cfg))

	_, err := os.Stat(configPath)
	require.NoError(t, err)

	loaded, err := manager.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Controls, 2)
	assert.Equal(t, "missing", loaded.Controls[0].Kind)
	assert.Equal(t, "skip", loaded.Controls[0].Control)
}

func TestBindings_ExpandsAllLiteral(t *testing.T) {
	cfg := &Config{Controls: []ControlBinding{{Kind: "all", Control: "skip"}}}
	bindings := cfg.Bindings()

	want := problem.ExpandAll(problem.Skip)
	require.Len(t, bindings, len(want))
	for i, kind := range want {
		assert.Equal(t, kind, bindings[i].Kind)
		assert.Equal(t, problem.Skip, bindings[i].Control)
	}
}

func TestBindings_PassesThroughExplicitKind(t *testing.T) {
	cfg := &Config{Controls: []ControlBinding{{Kind: "parent", Control: "create"}}}
	bindings := cfg.Bindings()

	require.Len(t, bindings, 1)
	assert.Equal(t, problem.Parent, bindings[0].Kind)
	assert.Equal(t, problem.Create, bindings[0].Control)
}

func generateRandomConfig(t *rapid.T) *Config {
	structure := rapid.SampledFrom([]string{"flat", "paragraphs", "pairs", "rows"}).Draw(t, "structure")
	indent := rapid.IntRange(1, 8).Draw(t, "indent")
	seqStart := rapid.IntRange(1, 10).Draw(t, "seqStart")
	seqStep := rapid.IntRange(1, 5).Draw(t, "seqStep")
	backend := rapid.SampledFrom([]string{"", "openai", "ollama"}).Draw(t, "backend")
	baseURL := rapid.StringMatching(`http://localhost:\d{4,5}`).Draw(t, "baseURL")
	model := rapid.StringMatching(`[a-z0-9\-\.]+`).Draw(t, "model")
	timeout := time.Duration(rapid.IntRange(5, 120).Draw(t, "timeout")) * time.Second
	logPath := rapid.StringMatching(`/tmp/[a-z0-9_]+\.json`).Draw(t, "executionLogPath")

	numBindings := rapid.IntRange(0, 3).Draw(t, "numBindings")
	controls := make([]ControlBinding, numBindings)
	for i := range controls {
		controls[i] = ControlBinding{
			Kind:    rapid.SampledFrom([]string{"missing", "existing", "parent"}).Draw(t, "kind"),
			Control: rapid.SampledFrom([]string{"skip", "keep", "create", "clobber"}).Draw(t, "control"),
		}
	}

	return &Config{
		Structure: structure,
		Indent:    indent,
		SeqStart:  seqStart,
		SeqStep:   seqStep,
		Controls:  controls,
		AI: AIConfig{
			Backend: backend,
			Ollama:  OllamaConfig{BaseURL: baseURL, Model: model, Timeout: timeout},
		},
		ExecutionLogPath: logPath,
	}
}
