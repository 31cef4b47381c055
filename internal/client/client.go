// Package client talks to the card generator HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const maxDownloadBytes = 32 << 20

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
}

// APIError is a non-2xx response. Message carries the server's "error" field
// when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

type ImageResult struct {
	ImageURL         string `json:"imageUrl"`
	ImageDownloadURL string `json:"imageDownloadUrl"`
	Model            string `json:"model"`
}

type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = "http://localhost:3001"
	}
	base, err := url.Parse(strings.TrimRight(raw, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: unsupported base url scheme %q", base.Scheme)
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 3 * time.Minute
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{httpClient: hc, baseURL: base}, nil
}

func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "healthz", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("client: unexpected health status %q", out.Status)
	}
	return nil
}

func (c *Client) Themes(ctx context.Context) ([]string, error) {
	var out struct {
		Themes []string `json:"themes"`
	}
	if err := c.do(ctx, http.MethodGet, "api/themes", nil, &out); err != nil {
		return nil, err
	}
	return out.Themes, nil
}

func (c *Client) GeneratePrompt(ctx context.Context, theme string) (string, error) {
	var out struct {
		Prompt string `json:"prompt"`
	}
	if err := c.do(ctx, http.MethodPost, "api/generate-prompt", map[string]string{"theme": theme}, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Prompt) == "" {
		return "", errors.New("client: empty prompt in response")
	}
	return out.Prompt, nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	var out ImageResult
	if err := c.do(ctx, http.MethodPost, "api/generate-image", map[string]string{"prompt": prompt}, &out); err != nil {
		return nil, err
	}
	if out.ImageURL == "" {
		return nil, errors.New("client: missing imageUrl in response")
	}
	if out.ImageDownloadURL == "" {
		out.ImageDownloadURL = out.ImageURL
	}
	return &out, nil
}

// Download fetches ref, which may be relative to the base URL. The filename
// comes from Content-Disposition, else the last path segment.
func (c *Client) Download(ctx context.Context, ref string) (*Download, error) {
	target, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("client: download exceeds %d bytes", maxDownloadBytes)
	}
	name := path.Base(target.Path)
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return &Download{Filename: name, ContentType: resp.Header.Get("Content-Type"), Data: data}, nil
}

func (c *Client) resolve(ref string) (*url.URL, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("client: empty url")
	}
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("client: parse url: %w", err)
	}
	return c.baseURL.ResolveReference(u), nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	target, err := c.resolve(endpoint)
	if err != nil {
		return err
	}
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s response: %w", endpoint, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err == nil {
		apiErr.Message = payload.Error
	}
	return apiErr
}

// Retry calls fn up to attempts times, waiting delay between failures. It
// stops early when ctx is done.
func Retry[T any](ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
