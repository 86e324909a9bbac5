package framesheet

import "testing"

func TestFormatHMS(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{name: "zero", seconds: 0, expected: "00:00"},
		{name: "fraction truncates", seconds: 0.8, expected: "00:00"},
		{name: "just under a second", seconds: 59.999, expected: "00:59"},
		{name: "one minute one second", seconds: 61, expected: "01:01"},
		{name: "just under an hour", seconds: 3599.9, expected: "59:59"},
		{name: "one hour", seconds: 3600, expected: "1:00:00"},
		{name: "one hour one minute one second", seconds: 3661, expected: "1:01:01"},
		{name: "ten hours", seconds: 36000 + 125, expected: "10:02:05"},
		{name: "negative clamps", seconds: -5, expected: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatHMS(tt.seconds); got != tt.expected {
				t.Errorf("FormatHMS(%v) = %q, want %q", tt.seconds, got, tt.expected)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0.00 B"},
		{500, "500.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{1073741824, "1.00 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3.00 TB"},
		{2048 * 1024 * 1024 * 1024 * 1024, "2048.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.expected)
			}
		})
	}
}
