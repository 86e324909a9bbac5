package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrNoVideoStream is returned when ffprobe finds no video stream in a file.
var ErrNoVideoStream = errors.New("no video stream found")

// Info holds the container and stream properties of the first video stream
// in a file, as reported by ffprobe.
type Info struct {
	Width      int
	Height     int
	FrameRate  float64
	FrameCount int
	Duration   time.Duration
	Codec      string
	FormatName string
	Size       int64
}

// probeOutput mirrors the subset of `ffprobe -show_format -show_streams
// -of json` used here.
type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

type probeStream struct {
	Index        int    `json:"index"`
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	Duration     string `json:"duration"`
	NbFrames     string `json:"nb_frames"`
}

// probeFunc runs ffprobe and returns its JSON output. Replaced in tests.
var probeFunc = func(path string) (string, error) {
	return ffmpeg.Probe(path, ffmpeg.KwArgs{"v": "quiet"})
}

// Probe reads stream properties of a video file using ffprobe.
func Probe(ctx context.Context, path string) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug().Str("path", path).Msg("Probing video with ffprobe")

	out, err := probeFunc(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := ParseProbe([]byte(out))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("width", info.Width).
		Int("height", info.Height).
		Float64("frame_rate", info.FrameRate).
		Int("frame_count", info.FrameCount).
		Dur("duration", info.Duration).
		Str("codec", info.Codec).
		Msg("Video probed")

	return info, nil
}

// ParseProbe decodes ffprobe JSON output into an Info. The frame count comes
// from the stream's nb_frames when the container records it, otherwise it is
// estimated from duration and frame rate.
func ParseProbe(data []byte) (*Info, error) {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var stream *probeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			stream = &probe.Streams[i]
			break
		}
	}
	if stream == nil {
		return nil, ErrNoVideoStream
	}

	info := &Info{
		Width:      stream.Width,
		Height:     stream.Height,
		Codec:      stream.CodecName,
		FormatName: probe.Format.FormatName,
	}

	info.FrameRate = parseFrameRate(stream.RFrameRate)
	if info.FrameRate == 0 {
		info.FrameRate = parseFrameRate(stream.AvgFrameRate)
	}

	seconds := parseSeconds(stream.Duration)
	if seconds == 0 {
		seconds = parseSeconds(probe.Format.Duration)
	}
	info.Duration = time.Duration(seconds * float64(time.Second))

	if n, err := strconv.Atoi(stream.NbFrames); err == nil && n > 0 {
		info.FrameCount = n
	} else if info.FrameRate > 0 {
		info.FrameCount = int(math.Floor(seconds * info.FrameRate))
	}

	if probe.Format.Size != "" {
		info.Size, _ = strconv.ParseInt(probe.Format.Size, 10, 64)
	}

	return info, nil
}

// parseFrameRate parses frame rate from ffprobe format (e.g., "30000/1001" -> 29.97)
func parseFrameRate(value string) float64 {
	parts := strings.Split(value, "/")
	if len(parts) == 2 {
		num, _ := strconv.ParseFloat(parts[0], 64)
		den, _ := strconv.ParseFloat(parts[1], 64)
		if den != 0 {
			return num / den
		}
		return 0
	}
	rate, _ := strconv.ParseFloat(value, 64)
	return rate
}

func parseSeconds(value string) float64 {
	if value == "" || value == "N/A" {
		return 0
	}
	s, err := strconv.ParseFloat(value, 64)
	if err != nil || s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return s
}
