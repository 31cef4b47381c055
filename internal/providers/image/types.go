package image

import (
	"context"
	"strings"

	"cardgen/internal/storage"
)

// ResultKind tags the shape of a provider response.
type ResultKind uint8

const (
	// KindInline means the image arrived in the response body.
	KindInline ResultKind = iota + 1
	// KindRemote means the provider returned a URL that still has to be fetched.
	KindRemote
)

func (k ResultKind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// ProviderResult is either inline image data or a reference to a remote image.
// Construct it with InlineData or RemoteRef.
type ProviderResult struct {
	kind   ResultKind
	data   storage.ImageData
	url    string
	format string
}

// InlineData wraps image data returned directly by a provider. format is a MIME
// type and may be empty.
func InlineData(data storage.ImageData, format string) ProviderResult {
	return ProviderResult{kind: KindInline, data: data, format: format}
}

// RemoteRef wraps an image URL returned by a provider.
func RemoteRef(url string) ProviderResult {
	return ProviderResult{kind: KindRemote, url: strings.TrimSpace(url)}
}

// Kind reports which variant r holds.
func (r ProviderResult) Kind() ResultKind {
	return r.kind
}

// Inline returns the inline payload when r is KindInline.
func (r ProviderResult) Inline() (storage.ImageData, bool) {
	return r.data, r.kind == KindInline
}

// Remote returns the image URL when r is KindRemote.
func (r ProviderResult) Remote() (string, bool) {
	return r.url, r.kind == KindRemote
}

// GenerateRequest is the provider-agnostic image request.
type GenerateRequest struct {
	Prompt string
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (ProviderResult, error)
	// Model identifies the model reported to clients.
	Model() string
}

// ExtensionForFormat maps a MIME type to a file extension, defaulting to png.
func ExtensionForFormat(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
