// Package media stores uploaded images with an external backend and returns
// their public URL.
package media

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	ErrNotImage = errors.New("only image uploads are accepted")
	ErrNotFound = errors.New("asset not found")
)

// Asset is an uploaded file.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Uploader stores and removes assets.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (Asset, error)
	Delete(ctx context.Context, publicID string) error
}

// CheckImage rejects anything that does not declare an image content type.
func CheckImage(contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	return nil
}

// extension returns the lower-case extension of filename, ".bin" when absent.
func extension(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" || len(ext) > 6 {
		return ".bin"
	}
	return ext
}
