package media

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/webp"
)

// NormalizePNG returns a path to a renderer-supported raster version of the
// image. Formats the renderers embed natively pass through untouched; .webp
// is decoded and re-encoded as a .png next to the source. The stored
// original is never rewritten.
func NormalizePNG(path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".webp") {
		return path, nil
	}

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer src.Close()

	img, err := webp.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode webp image %s: %w", path, err)
	}

	pngPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	out, err := os.Create(pngPath)
	if err != nil {
		return "", fmt.Errorf("failed to create png image: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		os.Remove(pngPath)
		return "", fmt.Errorf("failed to encode png image: %w", err)
	}
	return pngPath, nil
}
