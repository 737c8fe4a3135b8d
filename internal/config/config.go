// Package config loads and saves movr's persistent settings: default
// input structure, sequence numbering, control-policy bindings, the AI
// rename-hook backend, and the execution-log path (spec.md §6, SPEC_FULL
// §2.1). Adapted from the teacher's internal/config (spf13/viper + yaml
// tags).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/xuanyiying/movr/internal/problem"
)

// Config is the complete persisted configuration for movr.
type Config struct {
	Structure        string           `yaml:"structure" mapstructure:"structure"`
	Indent           int              `yaml:"indent" mapstructure:"indent"`
	SeqStart         int              `yaml:"seqStart" mapstructure:"seqStart"`
	SeqStep          int              `yaml:"seqStep" mapstructure:"seqStep"`
	Controls         []ControlBinding `yaml:"controls" mapstructure:"controls"`
	AI               AIConfig         `yaml:"ai" mapstructure:"ai"`
	ExecutionLogPath string           `yaml:"executionLogPath" mapstructure:"executionLogPath"`
}

// ControlBinding is one (kind, control) pair as stored in the config file;
// Kind may also be the literal "all" meaning every kind Control applies to.
type ControlBinding struct {
	Kind    string `yaml:"kind" mapstructure:"kind"`
	Control string `yaml:"control" mapstructure:"control"`
}

// AIConfig selects and configures the optional AI-backed rename hook.
type AIConfig struct {
	Backend string       `yaml:"backend" mapstructure:"backend"` // "", "openai", or "ollama"
	OpenAI  OpenAIConfig `yaml:"openai" mapstructure:"openai"`
	Ollama  OllamaConfig `yaml:"ollama" mapstructure:"ollama"`
}

// OpenAIConfig configures the OpenAI rename-hook backend.
type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey" mapstructure:"apiKey"`
	BaseURL string `yaml:"baseUrl" mapstructure:"baseUrl"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// OllamaConfig configures the local-model rename-hook backend.
type OllamaConfig struct {
	BaseURL string        `yaml:"baseUrl" mapstructure:"baseUrl"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Manager handles configuration loading and saving.
type Manager struct {
	v    *viper.Viper
	path string
}

// DefaultPath returns ~/.movrrc.yaml, falling back to the literal name in
// the working directory if the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".movrrc.yaml"
	}
	return filepath.Join(home, ".movrrc.yaml")
}

// NewManager creates a configuration manager rooted at configPath.
func NewManager(configPath string) *Manager {
	return &Manager{v: viper.New(), path: configPath}
}

// Load loads configuration from file, falling back to defaults for any
// setting the file does not set (or if the file does not exist at all).
func (m *Manager) Load() (*Config, error) {
	m.setDefaults()

	if _, err := os.Stat(m.path); err == nil {
		m.v.SetConfigFile(m.path)
		m.v.SetConfigType("yaml")
		if err := m.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to the manager's path, creating its parent directory if
// needed.
func (m *Manager) Save(cfg *Config) error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	m.v.Set("structure", cfg.Structure)
	m.v.Set("indent", cfg.Indent)
	m.v.Set("seqStart", cfg.SeqStart)
	m.v.Set("seqStep", cfg.SeqStep)
	m.v.Set("controls", cfg.Controls)
	m.v.Set("ai", cfg.AI)
	m.v.Set("executionLogPath", cfg.ExecutionLogPath)

	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (m *Manager) setDefaults() {
	home, _ := os.UserHomeDir()

	m.v.SetDefault("structure", "flat")
	m.v.SetDefault("indent", 1)
	m.v.SetDefault("seqStart", 1)
	m.v.SetDefault("seqStep", 1)
	m.v.SetDefault("controls", []ControlBinding{})

	m.v.SetDefault("ai.backend", "")
	m.v.SetDefault("ai.ollama.baseUrl", "http://localhost:11434")
	m.v.SetDefault("ai.ollama.model", "llama3.2")
	m.v.SetDefault("ai.ollama.timeout", 30*time.Second)
	m.v.SetDefault("ai.openai.baseUrl", "https://api.openai.com/v1")
	m.v.SetDefault("ai.openai.model", "gpt-4o-mini")

	m.v.SetDefault("executionLogPath", filepath.Join(home, ".movr", "execution-log.json"))
}

// Bindings resolves cfg.Controls into the problem.Binding slice the planner
// consumes, expanding any "all" kind via problem.ExpandAll. Illegal
// (kind, control) combinations are not rejected here: problem.NewPolicy
// performs that validation when the planner is constructed.
func (c *Config) Bindings() []problem.Binding {
	var out []problem.Binding
	for _, cb := range c.Controls {
		ctrl := problem.Control(cb.Control)
		if cb.Kind == "all" {
			for _, kind := range problem.ExpandAll(ctrl) {
				out = append(out, problem.Binding{Kind: kind, Control: ctrl})
			}
			continue
		}
		out = append(out, problem.Binding{Kind: problem.Kind(cb.Kind), Control: ctrl})
	}
	return out
}
