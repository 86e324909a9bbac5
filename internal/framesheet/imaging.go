package framesheet

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// filled returns a w x h image painted with c.
func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// Pad surrounds img with a constant border of the given widths.
func Pad(img *image.RGBA, top, bottom, left, right int, c color.RGBA) *image.RGBA {
	b := img.Bounds()
	dst := filled(b.Dx()+left+right, b.Dy()+top+bottom, c)
	draw.Draw(dst, image.Rect(left, top, left+b.Dx(), top+b.Dy()), img, b.Min, draw.Src)
	return dst
}

// HConcat places images side by side. All images must share a height.
func HConcat(images []*image.RGBA) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: nothing to concatenate", ErrInvalidArgument)
	}
	height := images[0].Bounds().Dy()
	width := 0
	for i, img := range images {
		if img.Bounds().Dy() != height {
			return nil, fmt.Errorf("%w: image %d is %dpx tall, want %d", ErrDimensionMismatch, i, img.Bounds().Dy(), height)
		}
		width += img.Bounds().Dx()
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(dst, image.Rect(x, 0, x+b.Dx(), height), img, b.Min, draw.Src)
		x += b.Dx()
	}
	return dst, nil
}

// VConcat stacks images top to bottom. All images must share a width.
func VConcat(images []*image.RGBA) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: nothing to concatenate", ErrInvalidArgument)
	}
	width := images[0].Bounds().Dx()
	height := 0
	for i, img := range images {
		if img.Bounds().Dx() != width {
			return nil, fmt.Errorf("%w: image %d is %dpx wide, want %d", ErrDimensionMismatch, i, img.Bounds().Dx(), width)
		}
		height += img.Bounds().Dy()
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	y := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(dst, image.Rect(0, y, width, y+b.Dy()), img, b.Min, draw.Src)
		y += b.Dy()
	}
	return dst, nil
}

// Resize scales img to exactly w x h using Catmull-Rom resampling.
func Resize(img *image.RGBA, w, h int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
