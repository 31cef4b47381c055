package zip

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// ArchiveAssets writes assets into a zip archive. Names are flattened to
// their base and repeated names get a numeric suffix before the extension.
func ArchiveAssets(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := WriteAssets(buf, assets, time.Now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteAssets streams the archive to w with every entry stamped at modified.
func WriteAssets(w io.Writer, assets []Asset, modified time.Time) error {
	zw := zip.NewWriter(w)
	used := make(map[string]int, len(assets))
	for _, asset := range assets {
		name := uniqueName(entryName(asset.Filename), used)
		method := zip.Deflate
		if alreadyCompressed(asset.MIME) {
			method = zip.Store
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: modified})
		if err != nil {
			return fmt.Errorf("zip: create %s: %w", name, err)
		}
		if _, err := fw.Write(asset.Data); err != nil {
			return fmt.Errorf("zip: write %s: %w", name, err)
		}
	}
	return zw.Close()
}

// ReadAssets lists the entries of archive. Used to verify bundles.
func ReadAssets(archive []byte) ([]Asset, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, err
	}
	out := make([]Asset, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, Asset{Filename: f.Name, Data: data})
	}
	return out, nil
}

func entryName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "asset"
	}
	return name
}

func uniqueName(name string, used map[string]int) string {
	n, seen := used[name]
	used[name] = n + 1
	if !seen {
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := fmt.Sprintf("%s-%d%s", stem, n+1, ext)
	if _, clash := used[candidate]; clash {
		return uniqueName(candidate, used)
	}
	used[candidate] = 1
	return candidate
}

func alreadyCompressed(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	return strings.HasPrefix(mime, "image/png") || strings.HasPrefix(mime, "image/jpeg") || strings.HasPrefix(mime, "image/webp")
}

var errNoAssets = errors.New("zip: no assets")

// RequireAssets returns an error when assets is empty.
func RequireAssets(assets []Asset) error {
	if len(assets) == 0 {
		return errNoAssets
	}
	return nil
}
