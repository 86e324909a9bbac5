package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var (
	// ErrClosed is returned by ReadFrame after Close.
	ErrClosed = errors.New("video capture is closed")

	// ErrFrameOutOfRange is returned for indices outside [0, FrameCount).
	ErrFrameOutOfRange = errors.New("frame index out of range")

	// ErrNoFrame is returned when ffmpeg exits cleanly but produces no image.
	ErrNoFrame = errors.New("no frame decoded")

	// ErrToolNotFound is returned by Open when ffmpeg or ffprobe is not on PATH.
	ErrToolNotFound = errors.New("required tool not found on PATH")
)

// requiredTools are the binaries Open needs: ffprobe for Probe, ffmpeg for ReadFrame.
var requiredTools = []string{"ffprobe", "ffmpeg"}

// lookPath resolves a binary on PATH. Replaced in tests.
var lookPath = exec.LookPath

func init() {
	ffmpeg.LogCompiledCommand = false
}

// grabFunc seeks to the given offset and returns one PNG-encoded frame.
// Replaced in tests.
var grabFunc = func(path string, seconds float64) ([]byte, error) {
	var out, stderr bytes.Buffer
	err := ffmpeg.
		Input(path, ffmpeg.KwArgs{"ss": strconv.FormatFloat(seconds, 'f', 3, 64)}).
		Output("pipe:", ffmpeg.KwArgs{
			"frames:v": 1,
			"format":   "image2",
			"vcodec":   "png",
			"loglevel": "error",
		}).
		WithOutput(&out).
		WithErrorOutput(&stderr).
		Run()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg frame grab failed: %w\nOutput: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}

// Capture is a seekable, frame-decodable handle on a video file. Each
// ReadFrame call runs one short ffmpeg process that seeks to the frame's
// presentation time and decodes a single image.
type Capture struct {
	path   string
	info   *Info
	closed bool
}

// Open probes the file and returns a Capture ready for decoding.
// Requires ffmpeg and ffprobe on PATH.
func Open(ctx context.Context, path string) (*Capture, error) {
	if err := checkTools(); err != nil {
		return nil, err
	}

	info, err := Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("video", filepath.Base(path)).
		Int("total_frames", info.FrameCount).
		Float64("frame_rate", info.FrameRate).
		Str("container", info.FormatName).
		Int64("size_bytes", info.Size).
		Msg("Video opened")

	return &Capture{path: path, info: info}, nil
}

func (c *Capture) FrameCount() int    { return c.info.FrameCount }
func (c *Capture) FrameRate() float64 { return c.info.FrameRate }
func (c *Capture) Width() int         { return c.info.Width }
func (c *Capture) Height() int        { return c.info.Height }

// ReadFrame decodes the frame at index. Seeking is time based
// (index / frame rate), so the decoded frame is the nearest one ffmpeg lands on.
func (c *Capture) ReadFrame(ctx context.Context, index int) (image.Image, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if index < 0 || index >= c.info.FrameCount {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, index, c.info.FrameCount)
	}
	if c.info.FrameRate <= 0 {
		return nil, fmt.Errorf("cannot seek without a frame rate")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := grabFunc(c.path, float64(index)/c.info.FrameRate)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w at index %d", ErrNoFrame, index)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %d: %w", index, err)
	}
	return img, nil
}

func checkTools() error {
	for _, tool := range requiredTools {
		if _, err := lookPath(tool); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrToolNotFound, tool, err)
		}
	}
	return nil
}

// Close releases the handle. It is safe to call more than once.
func (c *Capture) Close() error {
	c.closed = true
	return nil
}
