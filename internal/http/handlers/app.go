package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"cardgen/internal/domain"
	"cardgen/internal/infra"
	"cardgen/internal/middleware"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 2 << 20

type PromptSynthesizer interface {
	Synthesize(ctx context.Context, theme string) (string, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*domain.StoredImage, error)
}

type ImageOpener interface {
	Open(name string) (*os.File, error)
}

type App struct {
	Logger  infra.Logger
	Themes  *domain.ThemeSet
	Prompts PromptSynthesizer
	Images  ImageGenerator
	Files   ImageOpener
}

func NewApp(logger infra.Logger, themes *domain.ThemeSet, prompts PromptSynthesizer, images ImageGenerator, files ImageOpener) *App {
	if themes == nil {
		themes = domain.DefaultThemeSet()
	}
	return &App{Logger: logger, Themes: themes, Prompts: prompts, Images: images, Files: files}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, errorResponse{Error: message})
}

// log returns the app logger tagged with the request id.
func (a *App) log(r *http.Request) *infra.Logger {
	l := a.Logger.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()
	return &l
}
