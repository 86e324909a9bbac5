package cli

import (
	"path/filepath"

	"github.com/fpang/framesheet/internal/framesheet"
)

// ResolveVideoPath checks that the path names an existing regular file,
// then returns the absolute path.
func ResolveVideoPath(videoPath string) (string, error) {
	if err := framesheet.ValidateVideoPath(videoPath); err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(videoPath)
	if err == nil {
		videoPath = absPath
	}

	return videoPath, nil
}
