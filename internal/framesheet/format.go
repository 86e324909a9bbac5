package framesheet

import (
	"fmt"
	"math"
)

// FormatHMS formats seconds as MM:SS, or H:MM:SS once the value reaches an
// hour. Components are truncated, never rounded.
func FormatHMS(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with two decimals in the first unit
// where the value drops below 1024. Sizes past the TB range stay in TB.
func FormatBytes(n int64) string {
	value := float64(n)
	for i, unit := range byteUnits {
		if value < 1024 || i == len(byteUnits)-1 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return ""
}
