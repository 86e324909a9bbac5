package cli

import (
	"fmt"
	"time"

	"github.com/fpang/framesheet/internal/framesheet"
)

// FormatResult renders the one-line report printed after a successful run.
func FormatResult(r *framesheet.Result) string {
	line := fmt.Sprintf("%s (%dx%d, %d frames, %s) in %s",
		r.OutputPath, r.Width, r.Height, r.Frames,
		framesheet.FormatBytes(r.Bytes), r.Elapsed.Round(time.Millisecond))
	if r.Skipped > 0 {
		line += fmt.Sprintf(", %d skipped", r.Skipped)
	}
	return line
}
