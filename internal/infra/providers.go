package infra

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// NewOpenAIClient configures the OpenAI SDK client shared by the text and image
// providers.
func NewOpenAIClient(cfg *Config, httpClient *http.Client) (*openai.Client, error) {
	if cfg == nil || cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	clientCfg.OrgID = cfg.OpenAIOrg
	if httpClient != nil {
		clientCfg.HTTPClient = httpClient
	}
	return openai.NewClientWithConfig(clientCfg), nil
}

// NewGeminiClient configures the Gemini SDK client used when
// PROMPT_PROVIDER=gemini.
func NewGeminiClient(ctx context.Context, cfg *Config, httpClient *http.Client) (*genai.Client, error) {
	if cfg == nil || cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.GeminiBaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.GeminiBaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}
