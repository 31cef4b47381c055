package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardgen/internal/storage"
)

func TestMaterializeInlinePassesThrough(t *testing.T) {
	m := NewMaterializer(nil)
	data, ext, err := m.Materialize(context.Background(), InlineData(storage.RawImage([]byte("abc")), "image/webp"))
	require.NoError(t, err)
	assert.Equal(t, "webp", ext)
	got, err := data.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestMaterializeRemoteFetchesBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	m := NewMaterializer(srv.Client())
	data, ext, err := m.Materialize(context.Background(), RemoteRef(srv.URL+"/img.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpg", ext)
	got, err := data.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), got)
}

func TestMaterializeRemoteFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/empty":
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	m := NewMaterializer(srv.Client())
	for _, ref := range []string{srv.URL + "/missing", srv.URL + "/empty", "ftp://example.com/a.png", "::bad"} {
		_, _, err := m.Materialize(context.Background(), RemoteRef(ref))
		assert.Error(t, err, ref)
	}

	_, _, err := m.Materialize(context.Background(), ProviderResult{})
	assert.Error(t, err)
}

func TestExtensionForFormat(t *testing.T) {
	cases := map[string]string{
		"image/png":                "png",
		"image/jpeg":               "jpg",
		"IMAGE/JPG":                "jpg",
		"image/webp; charset=None": "webp",
		"application/octet-stream": "png",
		"":                         "png",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtensionForFormat(in), in)
	}
}

func TestResultKindString(t *testing.T) {
	assert.Equal(t, "inline", KindInline.String())
	assert.Equal(t, "remote", KindRemote.String())
	assert.Equal(t, "unknown", ResultKind(0).String())
}
