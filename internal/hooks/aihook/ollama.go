package aihook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaConfig configures OllamaClient, adapted from the teacher's
// internal/ollama.Config.
type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

func (c OllamaConfig) withDefaults() OllamaConfig {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:11434"
	}
	if c.Model == "" {
		c.Model = "llama3.2"
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

// OllamaClient implements Client against a local Ollama server, used as
// the offline alternate backend for the rename-suggestion hook.
type OllamaClient struct {
	config     OllamaConfig
	httpClient *http.Client
}

// NewOllamaClient builds an OllamaClient from cfg.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	cfg = cfg.withDefaults()
	return &OllamaClient{config: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

// CheckHealth confirms the Ollama server is reachable.
func (c *OllamaClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to build ollama health check request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama service unavailable at %s: %w", c.config.BaseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama health check failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// SuggestRename asks the local model for a single rename suggestion.
func (c *OllamaClient) SuggestRename(ctx context.Context, orig, hint string) (Suggestion, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.config.Model,
		Prompt: renamePrompt(orig, hint),
		Stream: false,
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("failed to encode ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return Suggestion{}, fmt.Errorf("failed to build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Suggestion{}, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Suggestion{}, fmt.Errorf("ollama generate failed with status %d: %s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Suggestion{}, fmt.Errorf("failed to decode ollama response: %w", err)
	}

	return Suggestion{Path: cleanSuggestion(out.Response), Confidence: 1}, nil
}
