package framesheet

import (
	"fmt"
	"image/color"
)

// Layout constants shared by the annotator and composer. Text sizes and
// offsets are expressed per unit of font scale.
const (
	// LineHeight is the pixel height of one text line at scale 1.
	LineHeight = 30

	// ValueColumnOffset is the x distance from a detail label to its value at scale 1.
	ValueColumnOffset = 200

	// TimestampMarginX is the left offset of the per-frame timestamp.
	TimestampMarginX = 10

	// DetailLines is the number of metadata lines in the sheet header.
	DetailLines = 4

	// DefaultOutputName is the file written when no output path is given.
	DefaultOutputName = "framesheet.png"

	// DefaultWatermark is drawn top-right unless overridden.
	DefaultWatermark = "framesheet"
)

// Config holds the fonts, colors and geometry used to draw a sheet.
type Config struct {
	DetailFontScale     float64
	DetailFontColor     color.RGBA
	DetailLineThickness int

	TimeFontScale       float64
	TimeFontColor       color.RGBA
	TimeLineThickness   int
	TimeStrokeThickness int
	StrokeColor         color.RGBA

	WatermarkFontScale     float64
	WatermarkBaseColor     color.RGBA
	WatermarkLineThickness int
	// WatermarkBlend is how far the watermark color moves toward the
	// background, in [0, 1]. 1 makes it invisible.
	WatermarkBlend float64

	BackgroundColor color.RGBA

	// Gap is the padding between tiles and around the grid, in pixels.
	Gap int

	// SheetWidth is the target grid width used to rescale frames.
	// Zero keeps frames at their decoded size.
	SheetWidth int

	Watermark string
}

// DefaultConfig returns the standard sheet look: white background, black
// detail text, white timestamps with a black outline, 1080px wide grid.
func DefaultConfig() Config {
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	return Config{
		DetailFontScale:     1,
		DetailFontColor:     black,
		DetailLineThickness: 2,

		TimeFontScale:       3,
		TimeFontColor:       white,
		TimeLineThickness:   4,
		TimeStrokeThickness: 10,
		StrokeColor:         black,

		WatermarkFontScale:     5,
		WatermarkBaseColor:     black,
		WatermarkLineThickness: 10,
		WatermarkBlend:         0.98,

		BackgroundColor: white,
		Gap:             20,
		SheetWidth:      1080,
		Watermark:       DefaultWatermark,
	}
}

// Validate rejects configurations that cannot produce a sheet.
func (c Config) Validate() error {
	switch {
	case c.DetailFontScale <= 0, c.TimeFontScale <= 0, c.WatermarkFontScale <= 0:
		return fmt.Errorf("%w: font scales must be positive", ErrInvalidArgument)
	case c.Gap < 0:
		return fmt.Errorf("%w: gap must not be negative (got %d)", ErrInvalidArgument, c.Gap)
	case c.SheetWidth < 0:
		return fmt.Errorf("%w: sheet width must not be negative (got %d)", ErrInvalidArgument, c.SheetWidth)
	case c.WatermarkBlend < 0 || c.WatermarkBlend > 1:
		return fmt.Errorf("%w: watermark blend must be within [0, 1] (got %v)", ErrInvalidArgument, c.WatermarkBlend)
	case c.DetailLineThickness < 0, c.TimeLineThickness < 0, c.TimeStrokeThickness < 0, c.WatermarkLineThickness < 0:
		return fmt.Errorf("%w: line thickness must not be negative", ErrInvalidArgument)
	}
	return nil
}

// WatermarkColor blends the watermark base color toward the background.
func (c Config) WatermarkColor() color.RGBA {
	t := c.WatermarkBlend
	blend := func(base, bg uint8) uint8 {
		return uint8((1-t)*float64(base) + t*float64(bg))
	}
	return color.RGBA{
		R: blend(c.WatermarkBaseColor.R, c.BackgroundColor.R),
		G: blend(c.WatermarkBaseColor.G, c.BackgroundColor.G),
		B: blend(c.WatermarkBaseColor.B, c.BackgroundColor.B),
		A: 255,
	}
}
