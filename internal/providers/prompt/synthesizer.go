package prompt

import (
	"context"
	"errors"

	"cardgen/internal/domain"
	"cardgen/internal/infra"
)

// Options wires a Synthesizer.
type Options struct {
	Themes      *domain.ThemeSet
	Generator   TextGenerator
	Temperature float32
	MaxTokens   int
	Logger      *infra.Logger
}

// Synthesizer turns an allow-listed theme into a card prompt with one call to
// a text provider. Failures are returned as-is; nothing is retried.
type Synthesizer struct {
	themes      *domain.ThemeSet
	generator   TextGenerator
	temperature float32
	maxTokens   int
	logger      infra.Logger
}

// NewSynthesizer validates opts and applies the default sampling settings.
func NewSynthesizer(opts Options) (*Synthesizer, error) {
	if opts.Themes == nil || opts.Themes.Len() == 0 {
		return nil, errors.New("prompt: theme allow-list is required")
	}
	if opts.Generator == nil {
		return nil, errors.New("prompt: text generator is required")
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = domain.PromptTemperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domain.PromptMaxTokens
	}
	logger := infra.NopLogger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Synthesizer{
		themes:      opts.Themes,
		generator:   opts.Generator,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}, nil
}

// Synthesize validates theme and asks the provider for a card prompt.
func (s *Synthesizer) Synthesize(ctx context.Context, theme string) (string, error) {
	if err := s.themes.Validate(theme); err != nil {
		return "", err
	}
	system, user := buildInstruction(theme)
	text, err := s.generator.Complete(ctx, TextRequest{
		System:      system,
		User:        user,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return "", domain.NewProviderError(s.generator.Name(), err)
	}
	text = cleanText(text)
	if text == "" {
		return "", domain.ErrGenerationEmpty
	}
	s.logger.Debug().
		Str("provider", s.generator.Name()).
		Str("theme", theme).
		Int("chars", len(text)).
		Msg("prompt: synthesized")
	return text, nil
}
