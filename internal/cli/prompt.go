package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fpang/framesheet/internal/framesheet"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
)

// ErrCanceled is returned when the user dismisses the file dialog.
var ErrCanceled = errors.New("selection canceled")

// VideoPatterns is the file dialog filter for supported containers.
var VideoPatterns = []string{
	"*.mp4", "*.mov", "*.avi", "*.webm", "*.mkv", "*.m4v", "*.wmv", "*.flv",
}

// PromptForVideo asks for a video path on in, writing the prompt to out.
// Surrounding quotes, as left by drag-and-drop into a terminal, are removed.
func PromptForVideo(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Video file: ")

	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		log.Warn().Err(err).Msg("Failed to read input")
		return "", fmt.Errorf("failed to read video path: %w", err)
	}

	input = strings.Trim(strings.TrimSpace(input), `"'`)
	if input == "" {
		return "", fmt.Errorf("%w: video path is required", framesheet.ErrInvalidArgument)
	}

	return input, nil
}

// PickVideo opens a native file dialog for choosing one video.
func PickVideo() (string, error) {
	selected, err := zenity.SelectFile(
		zenity.Title("Select a video"),
		zenity.FileFilters{
			{
				Name:     "Video files",
				Patterns: VideoPatterns,
			},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", ErrCanceled
		}
		log.Error().Err(err).Msg("File picker failed")
		return "", fmt.Errorf("file picker failed: %w", err)
	}

	log.Debug().Str("path", selected).Msg("Video picked")
	return selected, nil
}
