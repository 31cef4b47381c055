package domain

// Image model identifiers reported back to clients.
const (
	ModelPrimary  = "gpt-image-1"
	ModelFallback = "dall-e-3"
)

// StoredImage describes a generated image written to the image directory.
type StoredImage struct {
	Filename    string
	URL         string
	DownloadURL string
	// Model is the image model that produced the bytes.
	Model string
}
