package framesheet

import "errors"

// Failure kinds surfaced to the caller. Errors returned by this package wrap
// one of these; test with errors.Is.
var (
	// ErrFileNotFound means the source video does not exist (or vanished).
	ErrFileNotFound = errors.New("file not found")

	// ErrSourceUnavailable means the file exists but cannot be opened or
	// decoded as a video.
	ErrSourceUnavailable = errors.New("video source unavailable")

	// ErrInvalidMetadata means the video reports a zero or unreadable frame rate.
	ErrInvalidMetadata = errors.New("invalid video metadata")

	// ErrInvalidArgument means rows, columns or a configuration value is out of range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientFrames means the grid has more cells than the video can fill.
	ErrInsufficientFrames = errors.New("insufficient frames")

	// ErrDimensionMismatch means tiles passed to the composer differ in size.
	ErrDimensionMismatch = errors.New("image dimension mismatch")
)

var failureKinds = []struct {
	err  error
	name string
}{
	{ErrFileNotFound, "FileNotFound"},
	{ErrSourceUnavailable, "SourceUnavailable"},
	{ErrInvalidMetadata, "InvalidMetadata"},
	{ErrInvalidArgument, "InvalidArgument"},
	{ErrInsufficientFrames, "InsufficientFrames"},
	{ErrDimensionMismatch, "DimensionMismatch"},
}

// FailureKind names the failure category of err, or "Unknown".
func FailureKind(err error) string {
	for _, k := range failureKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}
