package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cardgen/internal/domain"
)

const (
	msgInvalidTheme = "Invalid or missing theme."
	msgPromptFailed = "Failed to generate prompt."
	msgBodyTooLarge = "Request body too large."
	msgNotFound     = "Not found."
)

type themesResponse struct {
	Themes []string `json:"themes"`
}

type generatePromptRequest struct {
	Theme string `json:"theme"`
}

type generatePromptResponse struct {
	Prompt string `json:"prompt"`
}

func (a *App) ListThemes(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, themesResponse{Themes: a.Themes.List()})
}

func (a *App) GeneratePrompt(w http.ResponseWriter, r *http.Request) {
	var req generatePromptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if isTooLarge(err) {
			a.error(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		a.error(w, http.StatusBadRequest, msgInvalidTheme)
		return
	}
	text, err := a.Prompts.Synthesize(r.Context(), req.Theme)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTheme) {
			a.error(w, http.StatusBadRequest, msgInvalidTheme)
			return
		}
		a.log(r).Error().Err(err).Str("theme", req.Theme).Msg("generate prompt failed")
		a.error(w, http.StatusInternalServerError, msgPromptFailed)
		return
	}
	a.json(w, http.StatusOK, generatePromptResponse{Prompt: text})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
