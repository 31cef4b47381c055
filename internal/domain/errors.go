package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTheme          = errors.New("invalid theme")
	ErrInvalidPrompt         = errors.New("invalid prompt")
	ErrProvider              = errors.New("provider failure")
	ErrGenerationEmpty       = errors.New("provider returned no usable text")
	ErrImageGenerationFailed = errors.New("image generation failed")
	ErrInvalidImageData      = errors.New("invalid image data")
	ErrStorageWrite          = errors.New("storage write failed")
)

// ProviderError records which upstream provider failed and why. It matches
// ErrProvider under errors.Is.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s: failure", e.Provider)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// NewProviderError wraps err as a ProviderError. A nil err stays nil.
func NewProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}
