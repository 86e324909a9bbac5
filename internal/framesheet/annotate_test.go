package framesheet

import (
	"image"
	"image/color"
	"testing"
)

func TestDetailFields(t *testing.T) {
	meta := &VideoMetadata{
		FileName:  "holiday.mp4",
		FileSize:  1536000,
		Width:     1920,
		Height:    1080,
		Duration:  3725.5,
		FrameRate: 25,
	}

	want := []DetailField{
		{Label: "File Name:", Value: "holiday.mp4"},
		{Label: "File Size:", Value: "1.46 MB (1536000 bytes)"},
		{Label: "Resolution:", Value: "1920x1080"},
		{Label: "Duration:", Value: "1:02:05"},
	}
	got := DetailFields(meta)
	if len(got) != len(want) {
		t.Fatalf("DetailFields() returned %d fields, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWatermarkColor(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.WatermarkColor(), (color.RGBA{R: 249, G: 249, B: 249, A: 255}); got != want {
		t.Errorf("WatermarkColor() = %v, want %v", got, want)
	}

	cfg.WatermarkBlend = 0
	if got := cfg.WatermarkColor(); got != cfg.WatermarkBaseColor {
		t.Errorf("WatermarkColor() with blend 0 = %v, want base color", got)
	}
}

func newTestAnnotator(t *testing.T, cfg Config) *Annotator {
	t.Helper()
	a, err := NewAnnotator(cfg)
	if err != nil {
		t.Fatalf("NewAnnotator() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestTimestamp(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestAnnotator(t, cfg)

	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	frame := &SampledFrame{Image: filled(520, 292, gray), Index: 25, Seconds: 1}
	if err := a.Timestamp(frame); err != nil {
		t.Fatalf("Timestamp() error = %v", err)
	}

	corner := image.Rect(0, 0, 300, 140)
	if n := countColor(frame.Image, corner, cfg.TimeFontColor); n == 0 {
		t.Error("no fill pixels drawn in the top-left corner")
	}
	if n := countColor(frame.Image, corner, cfg.StrokeColor); n == 0 {
		t.Error("no stroke pixels drawn in the top-left corner")
	}

	rest := image.Rect(320, 160, 520, 292)
	if n := countColor(frame.Image, rest, gray); n != rest.Dx()*rest.Dy() {
		t.Errorf("timestamp leaked outside its corner: %d of %d pixels unchanged", n, rest.Dx()*rest.Dy())
	}
}

func TestDetailSpace(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestAnnotator(t, cfg)

	if got := a.DetailSpaceHeight(); got != 140 {
		t.Errorf("DetailSpaceHeight() = %d, want 140", got)
	}

	cfg.DetailFontScale = 2
	if got := newTestAnnotator(t, cfg).DetailSpaceHeight(); got != 260 {
		t.Errorf("DetailSpaceHeight() at scale 2 = %d, want 260", got)
	}

	sheet := filled(400, 100, color.RGBA{R: 1, A: 255})
	out := a.AddDetailSpace(sheet)
	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 240 {
		t.Fatalf("AddDetailSpace() = %v, want 400x240", out.Bounds().Size())
	}
	if out.RGBAAt(10, 10) != cfg.BackgroundColor {
		t.Error("detail band not background colored")
	}
	if out.RGBAAt(10, 150) != sheet.RGBAAt(0, 0) {
		t.Error("grid not shifted below the detail band")
	}
}

func TestAddWatermark(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestAnnotator(t, cfg)
	mark := cfg.WatermarkColor()

	sheet := filled(1100, 300, cfg.BackgroundColor)
	if err := a.AddWatermark(sheet, "framesheet"); err != nil {
		t.Fatalf("AddWatermark() error = %v", err)
	}

	topRight := image.Rect(550, 0, 1100, 200)
	if n := countColor(sheet, topRight, mark); n == 0 {
		t.Error("watermark not drawn in the top-right region")
	}
	// Ink stays inside the gap margin.
	margin := image.Rect(0, 0, 1100, cfg.Gap)
	if n := countColor(sheet, margin, cfg.BackgroundColor); n != margin.Dx()*margin.Dy() {
		t.Error("watermark drawn into the top margin")
	}
	right := image.Rect(1100-cfg.Gap, 0, 1100, 300)
	if n := countColor(sheet, right, cfg.BackgroundColor); n != right.Dx()*right.Dy() {
		t.Error("watermark drawn into the right margin")
	}

	blank := filled(200, 50, cfg.BackgroundColor)
	if err := a.AddWatermark(blank, ""); err != nil {
		t.Fatalf("AddWatermark(\"\") error = %v", err)
	}
	if n := countColor(blank, blank.Bounds(), cfg.BackgroundColor); n != 200*50 {
		t.Error("empty watermark modified the sheet")
	}
}

func TestHeader(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestAnnotator(t, cfg)
	meta := &VideoMetadata{FileName: "clip.mp4", FileSize: 2048, Width: 320, Height: 180, Duration: 4, FrameRate: 25}

	grid := filled(1100, 644, cfg.BackgroundColor)
	sheet, err := a.Header(grid, meta)
	if err != nil {
		t.Fatalf("Header() error = %v", err)
	}
	if sheet.Bounds().Dx() != 1100 || sheet.Bounds().Dy() != 784 {
		t.Fatalf("Header() = %v, want 1100x784", sheet.Bounds().Size())
	}

	labels := image.Rect(cfg.Gap, cfg.Gap, cfg.Gap+ValueColumnOffset, 140)
	if n := countColor(sheet, labels, cfg.DetailFontColor); n == 0 {
		t.Error("detail labels not drawn")
	}
	values := image.Rect(cfg.Gap+ValueColumnOffset, cfg.Gap, 500, 140)
	if n := countColor(sheet, values, cfg.DetailFontColor); n == 0 {
		t.Error("detail values not drawn")
	}
}
