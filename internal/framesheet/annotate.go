package framesheet

import (
	"fmt"
	"image"
)

// DetailField is one labeled line of the sheet header.
type DetailField struct {
	Label string
	Value string
}

// DetailFields returns the header lines for meta in display order.
func DetailFields(meta *VideoMetadata) []DetailField {
	return []DetailField{
		{Label: "File Name:", Value: meta.FileName},
		{Label: "File Size:", Value: fmt.Sprintf("%s (%d bytes)", meta.FileSizeString(), meta.FileSize)},
		{Label: "Resolution:", Value: meta.Resolution()},
		{Label: "Duration:", Value: meta.DurationString()},
	}
}

// Annotator draws timestamps on frames and the header on the finished grid.
type Annotator struct {
	cfg  Config
	text *TextRenderer
}

// NewAnnotator returns an Annotator drawing with cfg.
func NewAnnotator(cfg Config) (*Annotator, error) {
	text, err := NewTextRenderer()
	if err != nil {
		return nil, err
	}
	return &Annotator{cfg: cfg, text: text}, nil
}

// Close releases font resources.
func (a *Annotator) Close() error {
	return a.text.Close()
}

// Timestamp burns the frame's timestamp into its top-left corner: a thick
// stroke layer first, then the fill on top at the same position.
func (a *Annotator) Timestamp(f *SampledFrame) error {
	scale := a.cfg.TimeFontScale
	line := scaled(a.cfg.TimeLineThickness, scale)
	stroke := scaled(a.cfg.TimeLineThickness+a.cfg.TimeStrokeThickness, scale)
	pt := image.Pt(TimestampMarginX, scaled(LineHeight, scale))
	label := f.Timestamp()

	if err := a.text.Draw(f.Image, label, pt, scale, stroke, a.cfg.StrokeColor); err != nil {
		return err
	}
	return a.text.Draw(f.Image, label, pt, scale, line, a.cfg.TimeFontColor)
}

// DetailSpaceHeight is the blank band AddDetailSpace adds above the grid.
func (a *Annotator) DetailSpaceHeight() int {
	return scaled(LineHeight, a.cfg.DetailFontScale)*DetailLines + a.cfg.Gap
}

// AddDetailSpace returns sheet with a blank band on top sized for the
// detail lines.
func (a *Annotator) AddDetailSpace(sheet *image.RGBA) *image.RGBA {
	return Pad(sheet, a.DetailSpaceHeight(), 0, 0, 0, a.cfg.BackgroundColor)
}

// AddDetails draws the metadata lines into the header band. Labels start at
// Gap and values at a fixed column so they line up regardless of label width.
func (a *Annotator) AddDetails(sheet *image.RGBA, meta *VideoMetadata) error {
	scale := a.cfg.DetailFontScale
	gap := a.cfg.Gap
	lineStep := scaled(LineHeight, scale)
	valueX := gap + scaled(ValueColumnOffset, scale)

	for i, field := range DetailFields(meta) {
		y := gap + scaled(gap, scale) + i*lineStep
		if err := a.text.Draw(sheet, field.Label, image.Pt(gap, y), scale, a.cfg.DetailLineThickness, a.cfg.DetailFontColor); err != nil {
			return err
		}
		if err := a.text.Draw(sheet, field.Value, image.Pt(valueX, y), scale, a.cfg.DetailLineThickness, a.cfg.DetailFontColor); err != nil {
			return err
		}
	}
	return nil
}

// AddWatermark draws text right-aligned in the top-right corner in a color
// blended toward the background, which reads as faint without alpha.
func (a *Annotator) AddWatermark(sheet *image.RGBA, text string) error {
	if text == "" {
		return nil
	}
	scale := a.cfg.WatermarkFontScale
	thickness := a.cfg.WatermarkLineThickness

	b, err := a.text.Bounds(text, scale, thickness)
	if err != nil {
		return err
	}
	pt := image.Pt(sheet.Bounds().Dx()-a.cfg.Gap-b.Max.X, a.cfg.Gap-b.Min.Y)
	return a.text.Draw(sheet, text, pt, scale, thickness, a.cfg.WatermarkColor())
}

// Header adds the detail band, the watermark and the metadata lines, in
// that order, and returns the grown sheet.
func (a *Annotator) Header(sheet *image.RGBA, meta *VideoMetadata) (*image.RGBA, error) {
	sheet = a.AddDetailSpace(sheet)
	if err := a.AddWatermark(sheet, a.cfg.Watermark); err != nil {
		return nil, fmt.Errorf("failed to draw watermark: %w", err)
	}
	if err := a.AddDetails(sheet, meta); err != nil {
		return nil, fmt.Errorf("failed to draw details: %w", err)
	}
	return sheet, nil
}

func scaled(v int, scale float64) int {
	return int(float64(v) * scale)
}
