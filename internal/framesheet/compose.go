package framesheet

import (
	"fmt"
	"image"

	"github.com/rs/zerolog/log"
)

// Composer lays tiles out in a fixed-gap grid.
type Composer struct {
	cfg Config
}

// NewComposer returns a Composer drawing with cfg's gap and background.
func NewComposer(cfg Config) *Composer {
	return &Composer{cfg: cfg}
}

// TileSize returns the per-tile size Rescale would produce for a frame of
// srcW x srcH in a grid of the given column count. Width is
// SheetWidth/columns - Gap and height keeps the source aspect ratio.
func (c *Composer) TileSize(srcW, srcH, columns int) (int, int, error) {
	if c.cfg.SheetWidth == 0 {
		return srcW, srcH, nil
	}
	if columns < 1 || srcW <= 0 {
		return 0, 0, fmt.Errorf("%w: cannot size tiles for %d columns of width %d", ErrInvalidArgument, columns, srcW)
	}
	w := c.cfg.SheetWidth/columns - c.cfg.Gap
	if w <= 0 {
		return 0, 0, fmt.Errorf("%w: sheet width %d leaves no room for %d columns", ErrInvalidArgument, c.cfg.SheetWidth, columns)
	}
	h := int(float64(w) * (float64(srcH) / float64(srcW)))
	if h < 1 {
		h = 1
	}
	return w, h, nil
}

// Rescale resizes every image to the tile size computed from the first one.
// With SheetWidth zero the images are returned unchanged.
func (c *Composer) Rescale(images []*image.RGBA, columns int) ([]*image.RGBA, error) {
	if c.cfg.SheetWidth == 0 || len(images) == 0 {
		return images, nil
	}

	first := images[0].Bounds()
	w, h, err := c.TileSize(first.Dx(), first.Dy(), columns)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("sheet_width", c.cfg.SheetWidth).
		Int("orig_width", first.Dx()).
		Int("orig_height", first.Dy()).
		Int("new_width", w).
		Int("new_height", h).
		Msg("Rescaling frames")

	out := make([]*image.RGBA, len(images))
	for i, img := range images {
		out[i] = Resize(img, w, h)
	}
	return out, nil
}

// Compose builds the grid. Each tile gets Gap pixels on its right, each row
// Gap pixels below it, and the finished grid Gap pixels on top and left. A
// short final row is filled out with blank tiles so every row has the same
// width.
func (c *Composer) Compose(images []*image.RGBA, columns int) (*image.RGBA, error) {
	if columns < 1 {
		return nil, fmt.Errorf("%w: columns must be at least 1 (got %d)", ErrInvalidArgument, columns)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no frames to compose", ErrInsufficientFrames)
	}

	size := images[0].Bounds().Size()
	for i, img := range images {
		if img.Bounds().Size() != size {
			return nil, fmt.Errorf("%w: frame %d is %v, want %v", ErrDimensionMismatch, i, img.Bounds().Size(), size)
		}
	}

	gap := c.cfg.Gap
	bg := c.cfg.BackgroundColor
	var blank *image.RGBA

	var sheet *image.RGBA
	for start := 0; start < len(images); start += columns {
		end := start + columns
		if end > len(images) {
			end = len(images)
		}

		tiles := make([]*image.RGBA, 0, columns)
		for _, img := range images[start:end] {
			tiles = append(tiles, Pad(img, 0, 0, 0, gap, bg))
		}
		for len(tiles) < columns {
			if blank == nil {
				blank = filled(size.X+gap, size.Y, bg)
			}
			tiles = append(tiles, blank)
		}

		row, err := HConcat(tiles)
		if err != nil {
			return nil, err
		}

		if sheet == nil {
			sheet = row
		} else {
			sheet, err = VConcat([]*image.RGBA{sheet, row})
			if err != nil {
				return nil, err
			}
		}
		sheet = Pad(sheet, 0, gap, 0, 0, bg)
	}

	sheet = Pad(sheet, gap, 0, gap, 0, bg)

	log.Debug().
		Int("tiles", len(images)).
		Int("columns", columns).
		Int("rows", RowCount(len(images), columns)).
		Int("width", sheet.Bounds().Dx()).
		Int("height", sheet.Bounds().Dy()).
		Msg("Frame grid composed")

	return sheet, nil
}

// RowCount is the number of grid rows n tiles occupy at the given column count.
func RowCount(n, columns int) int {
	if columns < 1 {
		return 0
	}
	return (n + columns - 1) / columns
}
