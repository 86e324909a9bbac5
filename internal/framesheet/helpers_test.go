package framesheet

import (
	"context"
	"fmt"
	"image"
	"image/color"
)

// fakeSource is an in-memory Source producing solid-color frames.
type fakeSource struct {
	total  int
	rate   float64
	width  int
	height int
	fail   map[int]bool
	reads  []int
	closed bool
}

func newFakeSource(total int, rate float64, w, h int) *fakeSource {
	return &fakeSource{total: total, rate: rate, width: w, height: h, fail: map[int]bool{}}
}

func (s *fakeSource) FrameCount() int    { return s.total }
func (s *fakeSource) FrameRate() float64 { return s.rate }
func (s *fakeSource) Width() int         { return s.width }
func (s *fakeSource) Height() int        { return s.height }

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSource) ReadFrame(ctx context.Context, index int) (image.Image, error) {
	s.reads = append(s.reads, index)
	if s.fail[index] {
		return nil, fmt.Errorf("decode failed at %d", index)
	}
	return filled(s.width, s.height, color.RGBA{R: uint8(index), G: 64, B: 64, A: 255}), nil
}

type countingProgress struct {
	ticks    int
	finished bool
}

func (p *countingProgress) Add(n int) error {
	p.ticks += n
	return nil
}

func (p *countingProgress) Finish() error {
	p.finished = true
	return nil
}

func countColor(img *image.RGBA, r image.Rectangle, c color.RGBA) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}
