package imagegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cardgen/internal/domain"
	"cardgen/internal/infra"
	"cardgen/internal/providers/image"
	"cardgen/internal/storage"
)

// DefaultPrimaryTimeout bounds the primary image call.
const DefaultPrimaryTimeout = 60 * time.Second

// Persister stores materialized image data and returns the bare filename.
type Persister interface {
	Persist(ctx context.Context, data storage.ImageData, ext string) (string, error)
}

// Materializer converts a provider result into storable image data.
type Materializer interface {
	Materialize(ctx context.Context, res image.ProviderResult) (storage.ImageData, string, error)
}

// Options wires an Orchestrator.
type Options struct {
	Primary        image.Generator
	Fallback       image.Generator
	Materializer   Materializer
	Store          Persister
	PublicPrefix   string
	PrimaryTimeout time.Duration
	Logger         *infra.Logger
}

// Orchestrator runs the primary image provider under a timeout, falls back to
// the secondary provider once, and persists whichever result arrives.
type Orchestrator struct {
	primary        image.Generator
	fallback       image.Generator
	materializer   Materializer
	store          Persister
	publicPrefix   string
	primaryTimeout time.Duration
	logger         infra.Logger
}

// NewOrchestrator validates opts and builds an Orchestrator.
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Primary == nil || opts.Fallback == nil {
		return nil, errors.New("imagegen: primary and fallback generators are required")
	}
	if opts.Materializer == nil {
		return nil, errors.New("imagegen: materializer is required")
	}
	if opts.Store == nil {
		return nil, errors.New("imagegen: store is required")
	}
	timeout := opts.PrimaryTimeout
	if timeout <= 0 {
		timeout = DefaultPrimaryTimeout
	}
	logger := infra.NopLogger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Orchestrator{
		primary:        opts.Primary,
		fallback:       opts.Fallback,
		materializer:   opts.Materializer,
		store:          opts.Store,
		publicPrefix:   strings.TrimRight(opts.PublicPrefix, "/"),
		primaryTimeout: timeout,
		logger:         logger,
	}, nil
}

// GenerateImage turns prompt into a stored image. The returned StoredImage
// names the model that actually produced it.
func (o *Orchestrator) GenerateImage(ctx context.Context, prompt string) (*domain.StoredImage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidPrompt)
	}

	stored, primaryErr := o.runPrimary(ctx, prompt)
	if primaryErr == nil {
		return stored, nil
	}
	if isFatal(primaryErr) {
		return nil, primaryErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.logger.Warn().
		Err(primaryErr).
		Str("model", o.primary.Model()).
		Str("fallback_model", o.fallback.Model()).
		Str("reason", failureReason(primaryErr)).
		Msg("imagegen: primary model failed, falling back")

	stored, fallbackErr := o.runFallback(ctx, prompt)
	if fallbackErr == nil {
		return stored, nil
	}
	if isFatal(fallbackErr) {
		return nil, fallbackErr
	}
	o.logger.Error().
		Err(fallbackErr).
		Str("model", o.fallback.Model()).
		Msg("imagegen: fallback model failed")
	return nil, fmt.Errorf("%w: primary: %v; fallback: %w", domain.ErrImageGenerationFailed, primaryErr, fallbackErr)
}

type primaryOutcome struct {
	res image.ProviderResult
	err error
}

// runPrimary races the primary call against the timeout. Losing the race
// cancels the call's context; the goroutine's send never blocks.
func (o *Orchestrator) runPrimary(ctx context.Context, prompt string) (*domain.StoredImage, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.primaryTimeout)
	defer cancel()

	done := make(chan primaryOutcome, 1)
	go func() {
		res, err := o.primary.Generate(callCtx, image.GenerateRequest{Prompt: prompt})
		done <- primaryOutcome{res: res, err: err}
	}()

	var res image.ProviderResult
	select {
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		res = out.res
	case <-callCtx.Done():
		return nil, fmt.Errorf("%s: %w", o.primary.Model(), callCtx.Err())
	}
	return o.persist(ctx, res, o.primary.Model())
}

func (o *Orchestrator) runFallback(ctx context.Context, prompt string) (*domain.StoredImage, error) {
	res, err := o.fallback.Generate(ctx, image.GenerateRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	return o.persist(ctx, res, o.fallback.Model())
}

func (o *Orchestrator) persist(ctx context.Context, res image.ProviderResult, model string) (*domain.StoredImage, error) {
	data, ext, err := o.materializer.Materialize(ctx, res)
	if err != nil {
		return nil, err
	}
	filename, err := o.store.Persist(ctx, data, ext)
	if err != nil {
		return nil, err
	}
	url := o.publicPrefix + "/" + filename
	o.logger.Info().
		Str("model", model).
		Str("result", res.Kind().String()).
		Str("filename", filename).
		Msg("imagegen: image stored")
	return &domain.StoredImage{
		Filename:    filename,
		URL:         url,
		DownloadURL: url,
		Model:       model,
	}, nil
}

// isFatal reports errors that end the request without trying the fallback.
func isFatal(err error) bool {
	return errors.Is(err, domain.ErrStorageWrite)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, domain.ErrInvalidImageData):
		return "invalid_image_data"
	default:
		return "provider_error"
	}
}
