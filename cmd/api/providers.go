package main

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"cardgen/internal/infra"
	"cardgen/internal/providers/prompt"
)

func newTextGenerator(ctx context.Context, cfg *infra.Config, openaiClient *openai.Client) (prompt.TextGenerator, error) {
	if cfg.PromptProvider == infra.PromptProviderGemini {
		client, err := infra.NewGeminiClient(ctx, cfg, nil)
		if err != nil {
			return nil, err
		}
		gen, err := prompt.NewGeminiTextGenerator(client, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return gen, nil
	}
	gen, err := prompt.NewOpenAITextGenerator(openaiClient, cfg.PromptModel)
	if err != nil {
		return nil, err
	}
	return gen, nil
}
