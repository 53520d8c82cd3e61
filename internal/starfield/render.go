package starfield

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"time"
)

// FrameInterval is the simulated display refresh period.
const FrameInterval = time.Second / 60

// ImageSurface rasterises frames into an RGBA image.
type ImageSurface struct {
	Image *image.RGBA
}

func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSurface) Clear(c color.RGBA) {
	pix := s.Image.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Plot blends c over the existing pixel with alpha = brightness.
func (s *ImageSurface) Plot(x, y int, c color.RGBA, brightness float64) {
	if !(image.Point{X: x, Y: y}).In(s.Image.Rect) {
		return
	}
	if brightness < 0 {
		brightness = 0
	} else if brightness > 1 {
		brightness = 1
	}
	dst := s.Image.RGBAAt(x, y)
	mix := func(src, dst uint8) uint8 {
		return uint8(float64(src)*brightness + float64(dst)*(1-brightness))
	}
	s.Image.SetRGBA(x, y, color.RGBA{
		R: mix(c.R, dst.R),
		G: mix(c.G, dst.G),
		B: mix(c.B, dst.B),
		A: 0xFF,
	})
}

// RenderOptions describe a single still frame.
type RenderOptions struct {
	Options
	Width  int
	Height int
	Frames int   // frames to simulate before the snapshot
	Seed   int64 // particle seed, for reproducible images
}

// Render simulates opts.Frames ticks at FrameInterval and returns the last frame.
func Render(opts RenderOptions) *image.RGBA {
	surface := NewImageSurface(opts.Width, opts.Height)
	field := NewField(opts.Options, rand.New(rand.NewSource(opts.Seed)))
	animator := NewAnimator(field, surface, NewViewport(opts.Width, opts.Height))

	// One extra tick primes the clock.
	ticks := make(chan time.Time, opts.Frames+1)
	start := time.Unix(0, 0)
	for i := 0; i <= opts.Frames; i++ {
		ticks <- start.Add(time.Duration(i) * FrameInterval)
	}
	close(ticks)
	_ = animator.Run(context.Background(), ticks)

	if animator.Frames() == 0 {
		field.Draw(surface)
	}
	return surface.Image
}

// RenderPNG writes Render(opts) to w as a PNG.
func RenderPNG(w io.Writer, opts RenderOptions) error {
	return png.Encode(w, Render(opts))
}
