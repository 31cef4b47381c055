package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cardgen/internal/storage"
)

// maxFetchBytes caps remote downloads.
const maxFetchBytes = 32 << 20

// Materializer turns any ProviderResult into image data ready for persistence,
// downloading remote references with its HTTP client.
type Materializer struct {
	client *http.Client
}

// NewMaterializer uses client for remote fetches, or http.DefaultClient.
func NewMaterializer(client *http.Client) *Materializer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Materializer{client: client}
}

// Materialize returns the image payload and the extension it should be stored with.
func (m *Materializer) Materialize(ctx context.Context, res ProviderResult) (storage.ImageData, string, error) {
	switch res.Kind() {
	case KindInline:
		data, _ := res.Inline()
		return data, ExtensionForFormat(res.format), nil
	case KindRemote:
		ref, _ := res.Remote()
		data, format, err := m.fetch(ctx, ref)
		if err != nil {
			return storage.ImageData{}, "", err
		}
		return storage.RawImage(data), ExtensionForFormat(format), nil
	default:
		return storage.ImageData{}, "", errors.New("materialize: empty provider result")
	}
}

func (m *Materializer) fetch(ctx context.Context, imageURL string) ([]byte, string, error) {
	parsed, err := url.Parse(strings.TrimSpace(imageURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, "", fmt.Errorf("fetch: invalid image url %q", imageURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: build request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("fetch: download status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("fetch: read image: %w", err)
	}
	if len(data) > maxFetchBytes {
		return nil, "", fmt.Errorf("fetch: image exceeds %d bytes", maxFetchBytes)
	}
	if len(data) == 0 {
		return nil, "", errors.New("fetch: empty image body")
	}
	return data, resp.Header.Get("Content-Type"), nil
}
