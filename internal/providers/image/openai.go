package image

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"cardgen/internal/storage"
)

// Delivery selects how the OpenAI images endpoint returns the picture.
type Delivery string

const (
	// DeliveryInline asks for base64 bytes in the response.
	DeliveryInline Delivery = "b64_json"
	// DeliveryURL asks for a short-lived download URL.
	DeliveryURL Delivery = "url"
)

const defaultImageSize = openai.CreateImageSize1024x1024

// OpenAIOptions configures an OpenAIGenerator.
type OpenAIOptions struct {
	Model    string
	Size     string
	Quality  string
	Delivery Delivery
	// SendResponseFormat controls whether response_format is put on the wire.
	// gpt-image-1 rejects the parameter and always answers inline.
	SendResponseFormat bool
}

// OpenAIGenerator produces a single square image through the OpenAI images API.
type OpenAIGenerator struct {
	client             *openai.Client
	model              string
	size               string
	quality            string
	delivery           Delivery
	sendResponseFormat bool
}

// NewOpenAIGenerator wires an OpenAI client to a model and delivery mode.
func NewOpenAIGenerator(client *openai.Client, opts OpenAIOptions) (*OpenAIGenerator, error) {
	if client == nil {
		return nil, errors.New("openai image: client is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		return nil, errors.New("openai image: model is required")
	}
	size := strings.TrimSpace(opts.Size)
	if size == "" {
		size = defaultImageSize
	}
	delivery := opts.Delivery
	if delivery == "" {
		delivery = DeliveryInline
	}
	return &OpenAIGenerator{
		client:             client,
		model:              model,
		size:               size,
		quality:            strings.TrimSpace(opts.Quality),
		delivery:           delivery,
		sendResponseFormat: opts.SendResponseFormat,
	}, nil
}

// Model returns the configured model identifier.
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Generate requests one image and normalizes the response into a ProviderResult.
func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (ProviderResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return ProviderResult{}, errors.New("openai image: prompt is required")
	}
	imageReq := openai.ImageRequest{
		Prompt:  prompt,
		Model:   g.model,
		N:       1,
		Size:    g.size,
		Quality: g.quality,
	}
	if g.sendResponseFormat {
		imageReq.ResponseFormat = string(g.delivery)
	}
	resp, err := g.client.CreateImage(ctx, imageReq)
	if err != nil {
		return ProviderResult{}, fmt.Errorf("openai image %s: %w", g.model, err)
	}
	if len(resp.Data) == 0 {
		return ProviderResult{}, fmt.Errorf("openai image %s: empty data", g.model)
	}
	item := resp.Data[0]
	switch g.delivery {
	case DeliveryURL:
		if strings.TrimSpace(item.URL) == "" {
			return ProviderResult{}, fmt.Errorf("openai image %s: empty image url", g.model)
		}
		return RemoteRef(item.URL), nil
	default:
		if strings.TrimSpace(item.B64JSON) == "" {
			return ProviderResult{}, fmt.Errorf("openai image %s: empty b64_json", g.model)
		}
		return InlineData(storage.EncodedImage(item.B64JSON), "image/png"), nil
	}
}

var _ Generator = (*OpenAIGenerator)(nil)
