package framesheet

import (
	"errors"
	"fmt"
	"testing"
)

func TestFailureKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: /tmp/x.mp4", ErrFileNotFound), "FileNotFound"},
		{fmt.Errorf("open: %w", ErrSourceUnavailable), "SourceUnavailable"},
		{ErrInvalidMetadata, "InvalidMetadata"},
		{fmt.Errorf("outer: %w", fmt.Errorf("%w: rows", ErrInvalidArgument)), "InvalidArgument"},
		{ErrInsufficientFrames, "InsufficientFrames"},
		{ErrDimensionMismatch, "DimensionMismatch"},
		{errors.New("disk full"), "Unknown"},
		{nil, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FailureKind(tt.err); got != tt.want {
				t.Errorf("FailureKind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
