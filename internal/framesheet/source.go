package framesheet

import (
	"context"
	"image"

	"github.com/fpang/framesheet/internal/video"
)

// Source is a decodable video opened for the duration of one run.
type Source interface {
	FrameCount() int
	FrameRate() float64
	Width() int
	Height() int
	// ReadFrame seeks to index and decodes that frame.
	ReadFrame(ctx context.Context, index int) (image.Image, error)
	Close() error
}

// OpenFunc opens a video file as a Source.
type OpenFunc func(ctx context.Context, path string) (Source, error)

// OpenVideo opens path with the ffmpeg-backed video.Capture.
func OpenVideo(ctx context.Context, path string) (Source, error) {
	c, err := video.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return c, nil
}

var _ Source = (*video.Capture)(nil)
