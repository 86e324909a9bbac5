package framesheet

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextRenderer rasterizes strings with the Go Medium typeface. A scale of 1
// renders glyphs LineHeight pixels tall. Line thickness is emulated by
// growing the glyph coverage mask by thickness/4 pixels in every direction.
type TextRenderer struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewTextRenderer parses the embedded font.
func NewTextRenderer() (*TextRenderer, error) {
	f, err := opentype.Parse(gomedium.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &TextRenderer{font: f, faces: make(map[float64]font.Face)}, nil
}

func (r *TextRenderer) face(scale float64) (font.Face, error) {
	if f, ok := r.faces[scale]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    LineHeight * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face at scale %v: %w", scale, err)
	}
	r.faces[scale] = f
	return f, nil
}

// Close releases cached font faces.
func (r *TextRenderer) Close() error {
	for k, f := range r.faces {
		f.Close()
		delete(r.faces, k)
	}
	return nil
}

// Bounds returns the ink box of text relative to a baseline origin at
// (0, 0), including the thickness growth. Min.Y is negative above the baseline.
func (r *TextRenderer) Bounds(text string, scale float64, thickness int) (image.Rectangle, error) {
	f, err := r.face(scale)
	if err != nil {
		return image.Rectangle{}, err
	}
	return inkBounds(f, text, growRadius(thickness)), nil
}

// Draw renders text in c with its baseline origin at pt.
func (r *TextRenderer) Draw(dst *image.RGBA, text string, pt image.Point, scale float64, thickness int, c color.RGBA) error {
	if text == "" {
		return nil
	}
	f, err := r.face(scale)
	if err != nil {
		return err
	}

	radius := growRadius(thickness)
	mask := image.NewAlpha(inkBounds(f, text, radius))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: f,
		Dot:  fixed.Point26_6{},
	}
	d.DrawString(text)
	mask = dilate(mask, radius)

	target := mask.Rect.Add(pt)
	draw.DrawMask(dst, target, &image.Uniform{c}, image.Point{}, mask, mask.Rect.Min, draw.Over)
	return nil
}

func growRadius(thickness int) int {
	if thickness <= 0 {
		return 0
	}
	return thickness / 4
}

func inkBounds(f font.Face, text string, radius int) image.Rectangle {
	b, _ := font.BoundString(f, text)
	rect := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	return rect.Inset(-radius)
}

// dilate grows coverage by radius pixels using a separable square max filter.
func dilate(m *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		return m
	}
	w, h := m.Rect.Dx(), m.Rect.Dy()

	horiz := image.NewAlpha(m.Rect)
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		out := horiz.Pix[y*horiz.Stride : y*horiz.Stride+w]
		for x := 0; x < w; x++ {
			out[x] = windowMax(row, x, radius)
		}
	}

	dst := image.NewAlpha(m.Rect)
	column := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			column[y] = horiz.Pix[y*horiz.Stride+x]
		}
		for y := 0; y < h; y++ {
			dst.Pix[y*dst.Stride+x] = windowMax(column, y, radius)
		}
	}
	return dst
}

func windowMax(values []uint8, center, radius int) uint8 {
	lo, hi := center-radius, center+radius
	if lo < 0 {
		lo = 0
	}
	if hi > len(values)-1 {
		hi = len(values) - 1
	}
	var best uint8
	for i := lo; i <= hi; i++ {
		if v := values[i]; v > best {
			best = v
			if best == 0xff {
				break
			}
		}
	}
	return best
}
