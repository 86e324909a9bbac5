package framesheet

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
)

// Output encodings chosen by file extension.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatWebP = "webp"
)

// EncodeQuality is used for the lossy encoders.
const EncodeQuality = 90

// ResolveOutputPath decides where the sheet is written. An empty output or
// the default name lands beside the video; an existing directory receives a
// file with the default name; anything else is used as given.
func ResolveOutputPath(videoPath, output string) string {
	if output == "" || output == DefaultOutputName {
		return filepath.Join(filepath.Dir(videoPath), DefaultOutputName)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, DefaultOutputName)
	}
	return output
}

// FormatForPath maps a file extension to an output format. Unknown
// extensions are written as PNG.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".webp":
		return FormatWebP
	default:
		return FormatPNG
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: EncodeQuality})
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{Quality: EncodeQuality})
	case FormatPNG:
		return png.Encode(w, img)
	default:
		return fmt.Errorf("%w: unsupported output format %q", ErrInvalidArgument, format)
	}
}

// WriteImage encodes img into a temporary file next to path and renames it
// into place, so a failed run leaves no partial output. Missing parent
// directories are created. Returns the number of bytes written.
func WriteImage(path string, img image.Image) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".framesheet-*"+filepath.Ext(path))
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if err := Encode(tmp, img, FormatForPath(path)); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to encode sheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to write sheet: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return 0, fmt.Errorf("failed to set sheet permissions: %w", err)
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat sheet: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("failed to move sheet into place: %w", err)
	}
	committed = true
	return info.Size(), nil
}
