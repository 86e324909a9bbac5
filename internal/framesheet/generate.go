package framesheet

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fpang/framesheet/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// Request describes one sheet generation run.
type Request struct {
	// RunID tags logs and metrics for this run. Generated when empty.
	RunID string

	VideoPath  string
	OutputPath string
	Rows       int
	Columns    int
	Config     Config

	// Open opens the video. Defaults to OpenVideo.
	Open OpenFunc

	// NewProgress, when set, is called with the number of frames to be
	// read and returns a receiver for per-frame ticks.
	NewProgress func(total int) Progress

	// Metrics, when set, receives one EMF line describing the run.
	Metrics io.Writer

	// FramesDir, when set, receives each sampled frame as frame_<n>.png
	// without annotation. Frames are written only after the sheet is.
	FramesDir string
}

// Result summarizes a finished run.
type Result struct {
	RunID      string
	OutputPath string
	Metadata   *VideoMetadata
	Frames     int
	Requested  int
	Skipped    int
	Step       int
	Width      int
	Height     int
	Bytes      int64
	Elapsed    time.Duration
}

// Generate samples the video, builds the annotated sheet and writes it.
// Nothing is written unless every step succeeds.
func Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	runID := req.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	if req.Rows < 1 || req.Columns < 1 {
		return nil, fmt.Errorf("%w: rows and columns must be greater than 0 (got %dx%d)", ErrInvalidArgument, req.Rows, req.Columns)
	}
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateVideoPath(req.VideoPath); err != nil {
		return nil, err
	}

	outputPath := ResolveOutputPath(req.VideoPath, req.OutputPath)

	open := req.Open
	if open == nil {
		open = OpenVideo
	}
	src, err := open(ctx, req.VideoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, req.VideoPath, err)
	}
	defer src.Close()

	meta, err := ExtractMetadata(req.VideoPath, src)
	if err != nil {
		return nil, err
	}

	count, err := GridSize(src.FrameCount(), req.Rows, req.Columns)
	if err != nil {
		return nil, err
	}

	var progress Progress
	if req.NewProgress != nil {
		progress = req.NewProgress(count)
	}
	sample, err := Sample(ctx, src, req.Rows, req.Columns, progress)
	if f, ok := progress.(interface{ Finish() error }); ok {
		_ = f.Finish()
	}
	if err != nil {
		return nil, err
	}

	// Build draws timestamps into the frames, so keep clean copies for FramesDir.
	var raw []*SampledFrame
	if req.FramesDir != "" {
		raw = cloneFrames(sample.Frames)
	}

	sheet, err := Build(req.Config, sample.Frames, req.Columns, meta)
	if err != nil {
		return nil, err
	}

	n, err := WriteImage(outputPath, sheet)
	if err != nil {
		return nil, err
	}

	if req.FramesDir != "" {
		if err := SaveFrames(req.FramesDir, raw); err != nil {
			return nil, err
		}
	}

	result := &Result{
		RunID:      runID,
		OutputPath: outputPath,
		Metadata:   meta,
		Frames:     len(sample.Frames),
		Requested:  sample.Requested,
		Skipped:    sample.Skipped,
		Step:       sample.Step,
		Width:      sheet.Bounds().Dx(),
		Height:     sheet.Bounds().Dy(),
		Bytes:      n,
		Elapsed:    time.Since(start),
	}

	log.Info().
		Str("run_id", result.RunID).
		Str("output", result.OutputPath).
		Int("frames", result.Frames).
		Int("skipped", result.Skipped).
		Int("width", result.Width).
		Int("height", result.Height).
		Int64("size_bytes", result.Bytes).
		Dur("elapsed", result.Elapsed).
		Msg("Framesheet written")

	if req.Metrics != nil {
		if err := recordMetrics(req.Metrics, result); err != nil {
			log.Warn().Err(err).Msg("Failed to emit metrics")
		}
	}

	return result, nil
}

// Build annotates the sampled frames, scales them, lays them out and adds
// the header. Frames are modified in place by the timestamp pass.
func Build(cfg Config, frames []*SampledFrame, columns int, meta *VideoMetadata) (*image.RGBA, error) {
	annotator, err := NewAnnotator(cfg)
	if err != nil {
		return nil, err
	}
	defer annotator.Close()

	images := make([]*image.RGBA, 0, len(frames))
	for _, f := range frames {
		if err := annotator.Timestamp(f); err != nil {
			return nil, fmt.Errorf("failed to draw timestamp for frame %d: %w", f.Index, err)
		}
		images = append(images, f.Image)
	}

	composer := NewComposer(cfg)
	images, err = composer.Rescale(images, columns)
	if err != nil {
		return nil, err
	}

	sheet, err := composer.Compose(images, columns)
	if err != nil {
		return nil, err
	}

	return annotator.Header(sheet, meta)
}

// SaveFrames writes frames to dir as frame_0.png, frame_1.png, ... in
// sampling order.
func SaveFrames(dir string, frames []*SampledFrame) error {
	for i, f := range frames {
		path := filepath.Join(dir, fmt.Sprintf("frame_%d.png", i))
		if _, err := WriteImage(path, f.Image); err != nil {
			return fmt.Errorf("failed to save frame %d: %w", f.Index, err)
		}
	}
	log.Debug().Str("dir", dir).Int("frames", len(frames)).Msg("Sampled frames saved")
	return nil
}

func cloneFrames(frames []*SampledFrame) []*SampledFrame {
	out := make([]*SampledFrame, len(frames))
	for i, f := range frames {
		img := image.NewRGBA(f.Image.Rect)
		draw.Draw(img, img.Rect, f.Image, f.Image.Rect.Min, draw.Src)
		out[i] = &SampledFrame{Image: img, Index: f.Index, Seconds: f.Seconds}
	}
	return out
}

// ValidateVideoPath checks that path names an existing regular file.
func ValidateVideoPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: video path is required", ErrInvalidArgument)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: video file not found at %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, path)
	}
	return nil
}

func recordMetrics(w io.Writer, r *Result) error {
	return metrics.New(metrics.Namespace).
		Dimension("Format", FormatForPath(r.OutputPath)).
		Metric("FramesSampled", float64(r.Frames), metrics.UnitCount).
		Metric("FramesRequested", float64(r.Requested), metrics.UnitCount).
		Metric("FramesSkipped", float64(r.Skipped), metrics.UnitCount).
		Metric("StepSize", float64(r.Step), metrics.UnitNone).
		Metric("OutputBytes", float64(r.Bytes), metrics.UnitBytes).
		Duration("GenerateMs", r.Elapsed).
		Count("SheetsWritten").
		Property("runId", r.RunID).
		Property("video", filepath.Base(r.Metadata.FileName)).
		Property("output", r.OutputPath).
		FlushTo(w)
}
