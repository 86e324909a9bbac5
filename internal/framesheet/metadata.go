package framesheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// VideoMetadata is the container-level description printed in the sheet
// header. It is derived once per run and not modified afterwards.
type VideoMetadata struct {
	FileName  string
	FileSize  int64
	Width     int
	Height    int
	Duration  float64 // seconds
	FrameRate float64
}

// Resolution returns the frame size as WIDTHxHEIGHT.
func (m *VideoMetadata) Resolution() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// DurationString returns the duration as MM:SS or H:MM:SS.
func (m *VideoMetadata) DurationString() string {
	return FormatHMS(m.Duration)
}

// FileSizeString returns the size in the largest sensible unit.
func (m *VideoMetadata) FileSizeString() string {
	return FormatBytes(m.FileSize)
}

// ExtractMetadata builds VideoMetadata for the file at path using the
// stream properties of an already opened source.
func ExtractMetadata(path string, src Source) (*VideoMetadata, error) {
	rate := src.FrameRate()
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: frame rate is %v", ErrInvalidMetadata, rate)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	meta := &VideoMetadata{
		FileName:  filepath.Base(path),
		FileSize:  info.Size(),
		Width:     src.Width(),
		Height:    src.Height(),
		Duration:  float64(src.FrameCount()) / rate,
		FrameRate: rate,
	}

	log.Debug().
		Str("file", meta.FileName).
		Int64("size_bytes", meta.FileSize).
		Str("resolution", meta.Resolution()).
		Float64("duration_s", meta.Duration).
		Float64("frame_rate", meta.FrameRate).
		Msg("Video metadata extracted")

	return meta, nil
}

// LoadMetadata opens path with open, extracts its metadata and releases the
// source before returning.
func LoadMetadata(ctx context.Context, path string, open OpenFunc) (*VideoMetadata, error) {
	if open == nil {
		open = OpenVideo
	}
	src, err := open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer src.Close()

	return ExtractMetadata(path, src)
}
