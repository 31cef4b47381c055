package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"cardgen/internal/domain"
)

const (
	msgInvalidPrompt   = "Missing or invalid prompt."
	msgImageFailed     = "Image generation failed."
	imageCacheControl  = "public, max-age=31536000"
	imageFilenameParam = "filename"
)

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

type generateImageResponse struct {
	ImageURL         string `json:"imageUrl"`
	ImageDownloadURL string `json:"imageDownloadUrl"`
	Model            string `json:"model"`
}

func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if isTooLarge(err) {
			a.error(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		a.error(w, http.StatusBadRequest, msgInvalidPrompt)
		return
	}
	stored, err := a.Images.GenerateImage(r.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPrompt) {
			a.error(w, http.StatusBadRequest, msgInvalidPrompt)
			return
		}
		a.log(r).Error().Err(err).Msg("generate image failed")
		a.error(w, http.StatusInternalServerError, msgImageFailed)
		return
	}
	a.json(w, http.StatusOK, generateImageResponse{
		ImageURL:         stored.URL,
		ImageDownloadURL: stored.DownloadURL,
		Model:            stored.Model,
	})
}

// ServeImage streams a stored image as an attachment with long-lived caching.
func (a *App) ServeImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, imageFilenameParam)
	f, err := a.Files.Open(name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			a.log(r).Warn().Err(err).Str("filename", name).Msg("open image failed")
		}
		a.error(w, http.StatusNotFound, msgNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		a.error(w, http.StatusNotFound, msgNotFound)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Cache-Control", imageCacheControl)
	http.ServeContent(w, r, name, info.ModTime(), f)
}
