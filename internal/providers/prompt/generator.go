package prompt

import "context"

// TextRequest is the provider-agnostic text completion request.
type TextRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// TextGenerator is implemented by every text provider. An empty string with a
// nil error means the provider answered without usable text.
type TextGenerator interface {
	Complete(ctx context.Context, req TextRequest) (string, error)
	Name() string
}
