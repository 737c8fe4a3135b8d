package aihook

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIConfig configures OpenAIClient, adapted from the teacher's
// config.OpenAIConfig.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIClient implements Client against the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds an OpenAIClient from cfg.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{client: &client, model: model}
}

// CheckHealth does a one-token completion as a cheap reachability probe.
func (c *OpenAIClient) CheckHealth(ctx context.Context) error {
	_, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage("ping")},
		Model:    openai.ChatModel(c.model),
		MaxTokens: openai.Int(1),
	})
	if err != nil {
		return fmt.Errorf("openai health check failed: %w", err)
	}
	return nil
}

// SuggestRename asks the model for a single rename suggestion for orig.
// hint is free-form context (e.g. the pair's stripped prefix or a filter
// description) appended to the prompt.
func (c *OpenAIClient) SuggestRename(ctx context.Context, orig, hint string) (Suggestion, error) {
	prompt := renamePrompt(orig, hint)
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Model:    openai.ChatModel(c.model),
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("openai rename suggestion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Suggestion{}, fmt.Errorf("openai returned no choices for %q", orig)
	}
	return Suggestion{Path: cleanSuggestion(resp.Choices[0].Message.Content), Confidence: 1}, nil
}

func renamePrompt(orig, hint string) string {
	p := fmt.Sprintf("Suggest a single improved file path for %q. Respond with only the path, nothing else.", orig)
	if hint != "" {
		p += "\n\nContext: " + hint
	}
	return p
}

func cleanSuggestion(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "`\"'")
	return strings.TrimSpace(s)
}
