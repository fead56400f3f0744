package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp decode support for image.Decode

	"nestcloud/internal/storage"
)

const (
	// MaxDimension bounds both sides of a generated thumbnail.
	MaxDimension = 128
	// JPEGQuality is the encoding quality for generated thumbnails.
	JPEGQuality = 85
)

var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".bmp":  {},
	".gif":  {},
}

// IsImage reports whether the filename's extension denotes an image.
func IsImage(filename string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Generate produces a JPEG thumbnail for the image at sourcePath, applying
// any embedded orientation and scaling down so neither side exceeds
// MaxDimension. The thumbnail is written under the user directory's previews
// subdirectory and its path relative to the user directory is returned.
//
// Callers treat any error as non-fatal: an upload whose preview cannot be
// generated simply has no preview.
func Generate(sourcePath, userDir, storedName string) (string, error) {
	img, err := imaging.Open(sourcePath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)

	outDir := filepath.Join(userDir, storage.PreviewDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create preview directory: %w", err)
	}

	name := "preview_" + storedName + ".jpg"
	if err := imaging.Save(thumb, filepath.Join(outDir, name), imaging.JPEGQuality(JPEGQuality)); err != nil {
		return "", fmt.Errorf("encode preview: %w", err)
	}

	return storage.PreviewDir + "/" + name, nil
}
