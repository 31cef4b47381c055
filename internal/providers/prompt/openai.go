package prompt

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIProviderName = "openai"
	defaultOpenAIModel = "gpt-4.1"
)

// OpenAITextGenerator calls the chat completions endpoint.
type OpenAITextGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAITextGenerator wires client to model, defaulting to gpt-4.1.
func NewOpenAITextGenerator(client *openai.Client, model string) (*OpenAITextGenerator, error) {
	if client == nil {
		return nil, errors.New("openai text: client is required")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAITextGenerator{client: client, model: model}, nil
}

func (o *OpenAITextGenerator) Name() string {
	return openAIProviderName
}

// Complete sends the system and user messages and returns the first choice.
func (o *OpenAITextGenerator) Complete(ctx context.Context, req TextRequest) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.User})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ TextGenerator = (*OpenAITextGenerator)(nil)
