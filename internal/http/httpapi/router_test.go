package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardgen/internal/domain"
	"cardgen/internal/http/handlers"
	"cardgen/internal/imagegen"
	"cardgen/internal/infra"
	"cardgen/internal/providers/image"
	"cardgen/internal/providers/prompt"
	"cardgen/internal/storage"
)

type echoText struct{}

func (echoText) Name() string { return "echo" }

func (echoText) Complete(_ context.Context, req prompt.TextRequest) (string, error) {
	return "An illustrated purple card. " + req.User + " " + domain.RequiredPhrase, nil
}

type funcGenerator struct {
	model string
	fn    func(ctx context.Context, req image.GenerateRequest) (image.ProviderResult, error)
}

func (g funcGenerator) Model() string { return g.model }

func (g funcGenerator) Generate(ctx context.Context, req image.GenerateRequest) (image.ProviderResult, error) {
	return g.fn(ctx, req)
}

type stack struct {
	server  *httptest.Server
	dir     string
	payload []byte
}

func newStack(t *testing.T, cfg *infra.Config, primary image.Generator) *stack {
	t.Helper()
	payload := []byte("\x89PNG\r\n\x1a\nfallback-bytes")
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(remote.Close)

	dir := filepath.Join(t.TempDir(), "images")
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	themes := domain.DefaultThemeSet()
	synth, err := prompt.NewSynthesizer(prompt.Options{Themes: themes, Generator: echoText{}})
	require.NoError(t, err)

	fallback := funcGenerator{model: domain.ModelFallback, fn: func(context.Context, image.GenerateRequest) (image.ProviderResult, error) {
		return image.RemoteRef(remote.URL + "/card.png"), nil
	}}
	orch, err := imagegen.NewOrchestrator(imagegen.Options{
		Primary:        primary,
		Fallback:       fallback,
		Materializer:   image.NewMaterializer(remote.Client()),
		Store:          store,
		PublicPrefix:   cfg.BaseImageURL,
		PrimaryTimeout: cfg.PrimaryImageTimeout,
	})
	require.NoError(t, err)

	app := handlers.NewApp(infra.NopLogger(), themes, synth, orch, store)
	srv := httptest.NewServer(NewRouter(cfg, app))
	t.Cleanup(srv.Close)
	return &stack{server: srv, dir: dir, payload: payload}
}

func testConfig() *infra.Config {
	return &infra.Config{
		BaseImageURL:        "/images",
		CORSAllowedOrigins:  []string{"*"},
		PrimaryImageTimeout: time.Second,
	}
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestEndToEndPrimaryPath(t *testing.T) {
	inline := []byte("\x89PNG\r\n\x1a\nprimary-bytes")
	primary := funcGenerator{model: domain.ModelPrimary, fn: func(context.Context, image.GenerateRequest) (image.ProviderResult, error) {
		return image.InlineData(storage.EncodedImage(base64.StdEncoding.EncodeToString(inline)), "image/png"), nil
	}}
	st := newStack(t, testConfig(), primary)

	resp, err := http.Get(st.server.URL + "/api/themes")
	require.NoError(t, err)
	var themes struct {
		Themes []string `json:"themes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&themes))
	resp.Body.Close()
	require.Equal(t, domain.Themes(), themes.Themes)

	resp, body := postJSON(t, st.server.URL+"/api/generate-prompt", map[string]string{"theme": themes.Themes[0]})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text, _ := body["prompt"].(string)
	require.NotEmpty(t, text)
	assert.Contains(t, text, "preschool teacher")
	assert.Contains(t, text, domain.RequiredPhrase)

	resp, body = postJSON(t, st.server.URL+"/api/generate-image", map[string]string{"prompt": text})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "gpt-image-1", body["model"])
	imageURL, _ := body["imageUrl"].(string)
	assert.Regexp(t, `^/images/img-\d{14}-[0-9a-f]{12}\.png$`, imageURL)
	assert.Equal(t, imageURL, body["imageDownloadUrl"])

	resp, err = http.Get(st.server.URL + imageURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, inline, got)
	assert.Equal(t, "public, max-age=31536000", resp.Header.Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment; filename="))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	head, err := http.Head(st.server.URL + imageURL)
	require.NoError(t, err)
	head.Body.Close()
	assert.Equal(t, http.StatusOK, head.StatusCode)
	assert.Equal(t, strconv.Itoa(len(inline)), head.Header.Get("Content-Length"))
	assert.True(t, strings.HasPrefix(head.Header.Get("Content-Disposition"), "attachment; filename="))

	head, err = http.Head(st.server.URL + "/images/img-does-not-exist.png")
	require.NoError(t, err)
	head.Body.Close()
	assert.Equal(t, http.StatusNotFound, head.StatusCode)
}

func TestEndToEndFallbackAfterTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.PrimaryImageTimeout = 50 * time.Millisecond
	primary := funcGenerator{model: domain.ModelPrimary, fn: func(ctx context.Context, _ image.GenerateRequest) (image.ProviderResult, error) {
		<-ctx.Done()
		return image.ProviderResult{}, ctx.Err()
	}}
	st := newStack(t, cfg, primary)

	resp, body := postJSON(t, st.server.URL+"/api/generate-image", map[string]string{"prompt": "a purple card"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dall-e-3", body["model"])

	imageURL, _ := body["imageUrl"].(string)
	stored, err := os.ReadFile(filepath.Join(st.dir, strings.TrimPrefix(imageURL, "/images/")))
	require.NoError(t, err)
	assert.Equal(t, st.payload, stored)
}

func TestRouterErrorsAndExtras(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMin = 1
	primary := funcGenerator{model: domain.ModelPrimary, fn: func(context.Context, image.GenerateRequest) (image.ProviderResult, error) {
		return image.InlineData(storage.RawImage([]byte("x")), "image/png"), nil
	}}
	st := newStack(t, cfg, primary)

	resp, body := postJSON(t, st.server.URL+"/api/generate-prompt", map[string]string{"theme": "pirate"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid or missing theme.", body["error"])

	resp, body = postJSON(t, st.server.URL+"/api/generate-image", map[string]string{"prompt": "again"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	for i := 0; i < 3; i++ {
		resp, err := http.Get(st.server.URL + "/api/themes")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "themes must not be rate limited")
	}

	resp, err := http.Get(st.server.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(st.server.URL + "/images/img-does-not-exist.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
