package storage

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cardgen/internal/domain"
)

const (
	filenamePrefix   = "img"
	timestampLayout  = "20060102150405"
	randomSuffixSize = 6
	defaultExtension = "png"
)

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// FileStore persists generated images onto the local filesystem. It owns the
// directory exclusively; files are only ever created, never rewritten.
type FileStore struct {
	basePath string
	now      func() time.Time
	random   io.Reader
}

// Option customises a FileStore.
type Option func(*FileStore)

// WithClock overrides the time source used for filename timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRandom overrides the entropy source used for filename suffixes.
func WithRandom(r io.Reader) Option {
	return func(s *FileStore) {
		if r != nil {
			s.random = r
		}
	}
}

// NewFileStore initializes a FileStore rooted at basePath.
func NewFileStore(basePath string, opts ...Option) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	s := &FileStore{basePath: basePath, now: time.Now, random: rand.Reader}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Persist decodes data, writes it under a freshly generated filename and
// returns that bare filename. Uniqueness is not checked before writing: the
// timestamp plus random suffix is relied upon instead.
func (s *FileStore) Persist(ctx context.Context, data ImageData, ext string) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	payload, err := data.Bytes()
	if err != nil {
		return "", err
	}
	name, err := s.newFilename(ext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	if _, err := s.Write(ctx, name, payload); err != nil {
		return "", err
	}
	return name, nil
}

// Write persists the provided bytes at the given relative key and returns the
// canonicalized storage key. Keys are cleaned to prevent directory traversal.
func (s *FileStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: ensure directory: %w", domain.ErrStorageWrite, err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write file: %w", domain.ErrStorageWrite, err)
	}
	return cleanKey, nil
}

// Open returns the stored file named name. Only bare filenames are accepted;
// anything that could address outside the directory yields os.ErrNotExist.
func (s *FileStore) Open(name string) (*os.File, error) {
	if s == nil {
		return nil, errors.New("storage: no store configured")
	}
	if !IsSafeFilename(name) {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.basePath, name))
}

func (s *FileStore) newFilename(ext string) (string, error) {
	suffix := make([]byte, randomSuffixSize)
	if _, err := io.ReadFull(s.random, suffix); err != nil {
		return "", fmt.Errorf("random suffix: %w", err)
	}
	stamp := s.now().UTC().Format(timestampLayout)
	return fmt.Sprintf("%s-%s-%s.%s", filenamePrefix, stamp, hex.EncodeToString(suffix), SanitizeExtension(ext)), nil
}

// SanitizeExtension keeps ASCII letters and digits only, lowercased, and falls
// back to png when nothing survives.
func SanitizeExtension(ext string) string {
	var b strings.Builder
	for _, r := range ext {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	if b.Len() == 0 {
		return defaultExtension
	}
	return b.String()
}

// IsSafeFilename reports whether name is a single path segment made of
// letters, digits, dot, dash and underscore, without any ".." sequence.
func IsSafeFilename(name string) bool {
	if name == "" || strings.Contains(name, "..") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}

func decodeBase64(encoded string) ([]byte, error) {
	encoded = dataURIPrefix.ReplaceAllString(encoded, "")
	encoded = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t', ' ':
			return -1
		}
		return r
	}, encoded)
	if decoded, err := base64.StdEncoding.DecodeString(encoded); err == nil {
		return decoded, nil
	}
	decoded, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
