package prompt

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

const (
	geminiProviderName = "gemini"
	defaultGeminiModel = "gemini-2.0-flash"
)

// GeminiTextGenerator calls Models.GenerateContent on the Gemini API.
type GeminiTextGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiTextGenerator wires client to model, defaulting to gemini-2.0-flash.
func NewGeminiTextGenerator(client *genai.Client, model string) (*GeminiTextGenerator, error) {
	if client == nil {
		return nil, errors.New("gemini text: client is required")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiTextGenerator{client: client, model: model}, nil
}

func (g *GeminiTextGenerator) Name() string {
	return geminiProviderName
}

// Complete sends the user text with the system text as system instruction.
func (g *GeminiTextGenerator) Complete(ctx context.Context, req TextRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.User), config)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Text()), nil
}

var _ TextGenerator = (*GeminiTextGenerator)(nil)
