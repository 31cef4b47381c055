package storage

import (
	"fmt"

	"cardgen/internal/domain"
)

type dataKind uint8

const (
	kindUnset dataKind = iota
	kindRaw
	kindEncoded
)

// ImageData is an image payload that is either raw bytes or a base64 string,
// optionally carrying a data:image/<type>;base64, prefix. The zero value is
// neither and is rejected by Persist.
type ImageData struct {
	kind    dataKind
	raw     []byte
	encoded string
}

// RawImage wraps binary image bytes.
func RawImage(b []byte) ImageData {
	return ImageData{kind: kindRaw, raw: b}
}

// EncodedImage wraps a base64 string, with or without a data URI prefix.
func EncodedImage(s string) ImageData {
	return ImageData{kind: kindEncoded, encoded: s}
}

// Bytes returns the decoded payload.
func (d ImageData) Bytes() ([]byte, error) {
	switch d.kind {
	case kindRaw:
		return d.raw, nil
	case kindEncoded:
		decoded, err := decodeBase64(d.encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: decode base64: %w", domain.ErrInvalidImageData, err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("%w: payload is neither binary nor string", domain.ErrInvalidImageData)
	}
}
