package glimmer

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

// whitePixel is a 1x1 white image scaled and tinted per point.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// pointCommand is one projected point awaiting depth-sorted submission.
type pointCommand struct {
	x, y  float64
	size  float64
	depth float64
	col   Color
}

// Renderer projects the engine's 3D particle state onto an ebiten.Image
// with a slowly orbiting perspective camera and painter's-order submission.
// The engine itself never depends on it; any scene capable of displaying
// positions and colors works as a render target.
type Renderer struct {
	width, height int

	// CameraDistance and CameraHeight place the orbiting camera;
	// OrbitSpeed is its angular velocity in radians per second.
	CameraDistance float64
	CameraHeight   float64
	OrbitSpeed     float64
	// Focal scales the perspective projection (pixels per unit at depth 1).
	Focal float64

	cmds []pointCommand
}

// NewRenderer creates a Renderer for the given output size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:          width,
		height:         height,
		CameraDistance: 55,
		CameraHeight:   6,
		OrbitSpeed:     0.1,
		Focal:          600,
	}
}

// nearPlane rejects points behind or too close to the camera.
const nearPlane = 1.0

// project maps a world point into screen space for a camera orbiting the
// origin at angle radians. Returns ok=false for points on the wrong side
// of the near plane.
func (r *Renderer) project(v r3.Vec, angle float64) (sx, sy, scale float64, ok bool) {
	sin, cos := math.Sincos(angle)
	// Rotate the world opposite the camera orbit, then push it out in
	// front of the camera.
	x := v.X*cos - v.Z*sin
	z := v.X*sin + v.Z*cos + r.CameraDistance
	y := v.Y - r.CameraHeight
	if z < nearPlane {
		return 0, 0, 0, false
	}
	scale = r.Focal / z
	sx = float64(r.width)/2 + x*scale
	sy = float64(r.height)/2 - y*scale
	return sx, sy, scale, true
}

// Draw renders ornaments, snow, dust, and the ribbon overlay onto screen,
// back to front.
func (r *Renderer) Draw(screen *ebiten.Image, o *Orchestrator) {
	angle := o.Clock() * r.OrbitSpeed
	chor := o.Choreography()
	light := chor.Light()
	r.cmds = r.cmds[:0]

	for _, orn := range chor.Ornaments() {
		sx, sy, scale, ok := r.project(orn.Position, angle)
		if !ok {
			continue
		}
		base := OrnamentPalette[orn.Palette%len(OrnamentPalette)]
		// Accent light tints the crowd; idle spin drives a soft twinkle.
		twinkle := 0.8 + 0.2*math.Sin(orn.Rotation.Y*40+float64(orn.Index))
		col := Color{
			R: base.R * light.R * twinkle,
			G: base.G * light.G * twinkle,
			B: base.B * light.B * twinkle,
			A: 1,
		}
		r.cmds = append(r.cmds, pointCommand{
			x: sx, y: sy,
			size:  orn.Size * scale * 0.12,
			depth: scale,
			col:   col,
		})
	}

	for _, p := range o.Snow().Flakes() {
		sx, sy, scale, ok := r.project(p.Position, angle)
		if !ok {
			continue
		}
		r.cmds = append(r.cmds, pointCommand{
			x: sx, y: sy,
			size:  p.Size * scale * 0.12,
			depth: scale,
			col:   Color{R: 1, G: 1, B: 1, A: 0.85},
		})
	}

	for _, p := range o.Dust().Motes() {
		sx, sy, scale, ok := r.project(p.Position, angle)
		if !ok {
			continue
		}
		r.cmds = append(r.cmds, pointCommand{
			x: sx, y: sy,
			size:  p.Size * scale * 0.12,
			depth: scale,
			col:   Color{R: 0.9, G: 0.9, B: 1, A: 0.25},
		})
	}

	r.emitRibbon(o, angle)

	// Painter's order: smaller projected scale means farther away.
	sort.Slice(r.cmds, func(i, j int) bool {
		return r.cmds[i].depth < r.cmds[j].depth
	})
	r.submit(screen)
}

// ribbonTurns controls the helix wound around the gathered tree.
const (
	ribbonTurns   = 4.0
	ribbonSamples = 160
)

// emitRibbon queues the decorative helix band when the choreography has it
// revealed. The band hugs the cone profile slightly outside the foliage.
func (r *Renderer) emitRibbon(o *Orchestrator, angle float64) {
	chor := o.Choreography()
	visible, alpha := chor.Ribbon()
	if !visible && alpha <= 0 {
		return
	}
	cfg := o.cfg
	for i := 0; i < ribbonSamples; i++ {
		t := float64(i) / ribbonSamples
		yLocal := t * cfg.TreeHeight
		radius := cfg.BaseRadius*(1-yLocal/cfg.TreeHeight) + 0.8
		theta := t * ribbonTurns * 2 * math.Pi
		v := r3.Vec{
			X: math.Cos(theta) * radius,
			Y: yLocal - cfg.TreeHeight/2,
			Z: math.Sin(theta) * radius,
		}
		sx, sy, scale, ok := r.project(v, angle)
		if !ok {
			continue
		}
		r.cmds = append(r.cmds, pointCommand{
			x: sx, y: sy,
			size:  0.35 * scale * 0.12,
			depth: scale,
			col:   Color{R: 1, G: 0.92, B: 0.55, A: alpha},
		})
	}
}

// submit draws the queued commands with the shared white pixel.
func (r *Renderer) submit(screen *ebiten.Image) {
	var opts ebiten.DrawImageOptions
	for i := range r.cmds {
		c := &r.cmds[i]
		if c.size < 0.5 {
			c.size = 0.5
		}
		opts.GeoM.Reset()
		opts.GeoM.Scale(c.size, c.size)
		opts.GeoM.Translate(c.x-c.size/2, c.y-c.size/2)
		opts.ColorScale.Reset()
		a := float32(clamp01(c.col.A))
		opts.ColorScale.Scale(
			float32(clamp01(c.col.R))*a,
			float32(clamp01(c.col.G))*a,
			float32(clamp01(c.col.B))*a,
			a,
		)
		screen.DrawImage(whitePixel, &opts)
	}
}
