package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"time"

	"cardgen/internal/carousel"
	"cardgen/internal/client"
	"cardgen/internal/infra"
	"cardgen/pkg/zip"
)

type options struct {
	BaseURL    string
	Theme      string
	Image      bool
	All        bool
	ZipPath    string
	Retries    int
	RetryDelay time.Duration
	Timeout    time.Duration
}

type report struct {
	Themes    int
	Prompts   int
	Images    int
	Failures  int
	Models    map[string]int
	Downloads []zip.Asset
	ZipPath   string
}

func (r report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "themes=%d prompts=%d images=%d failures=%d", r.Themes, r.Prompts, r.Images, r.Failures)
	models := make([]string, 0, len(r.Models))
	for m := range r.Models {
		models = append(models, m)
	}
	slices.Sort(models)
	for _, m := range models {
		fmt.Fprintf(&b, " %s=%d", m, r.Models[m])
	}
	if r.ZipPath != "" {
		fmt.Fprintf(&b, " zip=%s", r.ZipPath)
	}
	return b.String()
}

func run(ctx context.Context, opts options, logger infra.Logger) (report, error) {
	rep := report{Models: map[string]int{}}
	api, err := client.New(client.Options{BaseURL: opts.BaseURL, Timeout: opts.Timeout})
	if err != nil {
		return rep, err
	}

	themes, err := client.Retry(ctx, opts.Retries, opts.RetryDelay, api.Themes)
	if err != nil {
		return rep, fmt.Errorf("GET /api/themes: %w", err)
	}
	if len(themes) == 0 {
		return rep, errors.New("no themes returned")
	}
	rep.Themes = len(themes)
	logger.Info().Int("count", len(themes)).Msg("themes loaded")

	state := carousel.New(themes)
	if opts.All {
		opts.Image = true
	} else {
		theme := opts.Theme
		if theme == "" {
			theme = themes[rand.IntN(len(themes))]
		}
		idx := slices.Index(state.Themes(), theme)
		if idx < 0 {
			return rep, fmt.Errorf("theme %q is not offered by the server", theme)
		}
		for range idx {
			state = state.Next()
		}
	}

	for {
		var card carousel.Card
		state, card, err = generateCurrent(ctx, api, state, opts, logger)
		if err != nil {
			rep.Failures++
			logger.Warn().Err(err).Str("theme", state.Current().Theme).Msg("card failed")
			if !opts.All {
				return rep, err
			}
		} else {
			rep.Prompts++
			if card.Ready() {
				rep.Images++
				rep.Models[card.Model]++
				dl, err := api.Download(ctx, card.ImageDownloadURL)
				if err != nil {
					rep.Failures++
					logger.Warn().Err(err).Str("url", card.ImageDownloadURL).Msg("download failed")
				} else {
					rep.Downloads = append(rep.Downloads, zip.Asset{
						Filename: carousel.DownloadName(card),
						MIME:     dl.ContentType,
						Data:     dl.Data,
					})
				}
			}
		}
		if !opts.All || state.Index() == state.Len()-1 {
			break
		}
		state = state.Next()
	}

	if opts.ZipPath != "" {
		if err := zip.RequireAssets(rep.Downloads); err != nil {
			return rep, err
		}
		archive, err := zip.ArchiveAssets(rep.Downloads)
		if err != nil {
			return rep, err
		}
		if err := os.WriteFile(opts.ZipPath, archive, 0o644); err != nil {
			return rep, fmt.Errorf("write zip: %w", err)
		}
		rep.ZipPath = opts.ZipPath
		logger.Info().Str("path", opts.ZipPath).Int("cards", len(rep.Downloads)).Msg("zip written")
	}
	if rep.Failures > 0 {
		return rep, fmt.Errorf("%d step(s) failed", rep.Failures)
	}
	return rep, nil
}

// generateCurrent runs prompt and optional image generation for the card
// under the cursor.
func generateCurrent(ctx context.Context, api *client.Client, state carousel.State, opts options, logger infra.Logger) (carousel.State, carousel.Card, error) {
	state, idx, theme, ok := state.BeginGenerate()
	if !ok {
		return state, carousel.Card{}, errors.New("generation already in progress")
	}
	log := logger.With().Str("theme", theme).Logger()

	text, err := client.Retry(ctx, opts.Retries, opts.RetryDelay, func(ctx context.Context) (string, error) {
		return api.GeneratePrompt(ctx, theme)
	})
	if err != nil {
		return state.FailGenerate(""), carousel.Card{}, fmt.Errorf("POST /api/generate-prompt: %w", err)
	}
	log.Info().Int("chars", len(text)).Msg("prompt generated")
	card := carousel.Card{Theme: theme, Prompt: text}

	if opts.Image {
		img, err := api.GenerateImage(ctx, text)
		if err != nil {
			return state.FailGenerate(""), carousel.Card{}, fmt.Errorf("POST /api/generate-image: %w", err)
		}
		card.ImageURL = img.ImageURL
		card.ImageDownloadURL = img.ImageDownloadURL
		card.Model = img.Model
		log.Info().Str("model", img.Model).Str("url", img.ImageURL).Msg("image generated")
	}

	state = state.CompleteGenerate(idx, card)
	return state, state.Cards()[idx], nil
}
