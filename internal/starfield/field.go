// Package starfield simulates the forward-flight particle background drawn
// behind every page.
//
// A Field owns a fixed set of camera-relative 3-D points. Each frame moves
// them toward the viewer, wraps any point that passes the camera back into
// the distance and projects the survivors onto a 2-D surface with a
// pinhole divide.
package starfield

import (
	"image/color"
	"math"
	"math/rand"
	"time"
)

const (
	// Depth is the far plane; particles re-enter at z + Depth after passing the camera.
	Depth = 1000.0

	// SpreadX and SpreadY bound the initial x and y coordinates, centred on zero.
	SpreadX = 1600.0
	SpreadY = 900.0

	// nearPlane is the depth at or below which a particle is wrapped.
	nearPlane = 1.0

	// projection is the pinhole scale k in screen = centre + x/(z*k).
	projection = 0.001
)

var (
	Background = color.RGBA{R: 0x0D, G: 0x0D, B: 0x0D, A: 0xFF}
	StarColor  = color.RGBA{R: 0x00, G: 0xFF, B: 0x41, A: 0xFF}
)

// Options parameterise a starfield instance.
type Options struct {
	Count int     // number of particles
	Speed float64 // depth units per elapsed millisecond
}

var (
	DefaultOptions = Options{Count: 1000, Speed: 0.05}
	PageOptions    = Options{Count: 1500, Speed: 0.03}
)

type Particle struct {
	X, Y, Z float64
}

// Surface is the 2-D drawing target of a frame.
type Surface interface {
	Clear(c color.RGBA)
	Plot(x, y int, c color.RGBA, brightness float64)
}

type Field struct {
	particles []Particle
	speed     float64
	width     float64
	height    float64
	cx, cy    float64
}

// NewField seeds opts.Count particles from rng. A nil rng uses a time seed.
func NewField(opts Options, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	n := opts.Count
	if n < 0 {
		n = 0
	}

	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			X: rng.Float64()*SpreadX - SpreadX/2,
			Y: rng.Float64()*SpreadY - SpreadY/2,
			// Float64 is in [0,1), so z lands in (0, Depth].
			Z: Depth - rng.Float64()*Depth,
		}
	}
	return &Field{particles: particles, speed: opts.Speed}
}

// Len reports the number of particles.
func (f *Field) Len() int { return len(f.particles) }

// Particles returns a copy of the current particle positions.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Resize updates the surface extents and centre. Particle state is kept.
func (f *Field) Resize(width, height int) {
	f.width = float64(width)
	f.height = float64(height)
	f.cx = f.width / 2
	f.cy = f.height / 2
}

func (f *Field) Size() (width, height int) {
	return int(f.width), int(f.height)
}

// Advance moves every particle elapsed*speed closer to the camera.
func (f *Field) Advance(elapsed time.Duration) {
	if elapsed < 0 {
		elapsed = 0
	}
	distance := float64(elapsed) / float64(time.Millisecond) * f.speed
	for i := range f.particles {
		p := &f.particles[i]
		p.Z -= distance
		if p.Z <= nearPlane {
			// Same result as adding Depth until z > nearPlane.
			p.Z += (math.Floor((nearPlane-p.Z)/Depth) + 1) * Depth
		}
	}
}

// Project maps p onto the surface. ok is false when the point falls outside it.
func (f *Field) Project(p Particle) (x, y float64, ok bool) {
	x = f.cx + p.X/(p.Z*projection)
	y = f.cy + p.Y/(p.Z*projection)
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return x, y, false
	}
	return x, y, true
}

// Brightness is 1 for particles at the camera and falls quadratically to 0 at Depth.
func Brightness(z float64) float64 {
	d := z / Depth
	return 1 - d*d
}

// Draw clears s and plots every visible particle.
func (f *Field) Draw(s Surface) int {
	s.Clear(Background)
	drawn := 0
	for _, p := range f.particles {
		x, y, ok := f.Project(p)
		if !ok {
			continue
		}
		s.Plot(int(x), int(y), StarColor, Brightness(p.Z))
		drawn++
	}
	return drawn
}
