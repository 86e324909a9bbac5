package framesheet

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// SampledFrame is one decoded frame and its position in the video.
type SampledFrame struct {
	Image   *image.RGBA
	Index   int
	Seconds float64
}

// Timestamp returns the frame's presentation time as MM:SS or H:MM:SS.
func (f *SampledFrame) Timestamp() string {
	return FormatHMS(f.Seconds)
}

// SampleResult is the ordered output of Sample.
type SampleResult struct {
	Frames []*SampledFrame

	// Step is the index distance between candidate frames.
	Step int

	// Requested is rows*columns.
	Requested int

	// Skipped counts candidates whose decode failed.
	Skipped int
}

// Progress receives one tick per candidate frame.
type Progress interface {
	Add(n int) error
}

// Sample picks rows*columns evenly spaced frame indices from src and decodes
// them in increasing order. Index 0 is never used: the step is
// total/(count+1) and candidates start at one step. A candidate that fails to
// decode is skipped and counted, so the result may hold fewer frames than
// requested.
func Sample(ctx context.Context, src Source, rows, columns int, progress Progress) (*SampleResult, error) {
	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf("%w: rows and columns must be at least 1 (got %dx%d)", ErrInvalidArgument, rows, columns)
	}

	rate := src.FrameRate()
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: frame rate is %v", ErrInvalidMetadata, rate)
	}

	total := src.FrameCount()
	count, err := GridSize(total, rows, columns)
	if err != nil {
		return nil, err
	}

	step := total / (count + 1)

	log.Info().
		Int("total_frames", total).
		Float64("frame_rate", rate).
		Int("step", step).
		Int("requested", count).
		Msg("Selecting frames")

	result := &SampleResult{
		Frames:    make([]*SampledFrame, 0, count),
		Step:      step,
		Requested: count,
	}

	for k := 1; k <= count; k++ {
		index := k * step
		if index >= total {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := src.ReadFrame(ctx, index)
		if progress != nil {
			_ = progress.Add(1)
		}
		if err != nil {
			result.Skipped++
			log.Debug().Err(err).Int("index", index).Msg("Frame decode failed, skipping")
			continue
		}

		result.Frames = append(result.Frames, &SampledFrame{
			Image:   toRGBA(img),
			Index:   index,
			Seconds: float64(index) / rate,
		})
	}

	log.Info().
		Int("selected", len(result.Frames)).
		Int("skipped", result.Skipped).
		Msg("Frames selected")

	return result, nil
}

// GridSize returns rows*columns when total frames can fill that grid with
// index 0 left out, that is when rows*columns+1 < total. The bound is
// checked by division so huge grids fail instead of overflowing.
func GridSize(total, rows, columns int) (int, error) {
	if rows < 1 || columns < 1 {
		return 0, fmt.Errorf("%w: rows and columns must be at least 1 (got %dx%d)", ErrInvalidArgument, rows, columns)
	}
	if total-2 < 0 || rows > (total-2)/columns {
		return 0, fmt.Errorf("%w: %d frames cannot fill a %dx%d grid", ErrInsufficientFrames, total, rows, columns)
	}
	return rows * columns, nil
}

// toRGBA returns img as an *image.RGBA with its origin at (0, 0), copying
// only when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
