package glimmer

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// Snowflake holds per-flake simulation state. Velocities are in world units
// per frame. Flakes are recycled in place, never removed: the field is a
// fixed-size ring of live particles.
type Snowflake struct {
	Position r3.Vec
	Velocity r3.Vec
	Size     float64
}

// Impulse tuning. Velocity-space, per frame.
const (
	repelImpulse = 0.10 // hand repulsion at zero distance
	waveImpulse  = 0.40 // outward burst at the wave origin
	waveLift     = 0.15 // fixed upward boost inside the wave radius
	spiralTang   = 0.12 // tangential vortex impulse at the origin
	spiralBob    = 0.02 // vertical oscillation amplitude
	spiralRate   = 3.0  // oscillation frequency vs the shared clock

	// waveSampleCap bounds how many flakes a single wave may touch.
	waveSampleCap = 200
)

// SnowField owns a fixed pool of drifting snowflakes. Step integrates the
// physics once per frame; Wave and Spiral inject impulses into velocity
// only, never positions, so physical continuity is preserved.
type SnowField struct {
	cfg    Config
	flakes []Snowflake
	rng    *rand.Rand
}

// NewSnowField creates a field of cfg.SnowCount flakes spread through the
// full altitude range so the first frames don't look like a single sheet.
func NewSnowField(cfg Config, rng *rand.Rand) *SnowField {
	f := &SnowField{
		cfg:    cfg,
		flakes: make([]Snowflake, cfg.SnowCount),
		rng:    rng,
	}
	span := Range{Min: cfg.FloorY, Max: cfg.RespawnBand.Max}
	for i := range f.flakes {
		f.respawn(&f.flakes[i])
		f.flakes[i].Position.Y = span.randomIn(rng)
	}
	return f
}

// Flakes returns the live pool. The returned slice MUST NOT be resized;
// the renderer reads it in place.
func (f *SnowField) Flakes() []Snowflake {
	return f.flakes
}

func (f *SnowField) rnd() float64 {
	if f.rng == nil {
		return rand.Float64()
	}
	return f.rng.Float64()
}

func (f *SnowField) intN(n int) int {
	if f.rng == nil {
		return rand.IntN(n)
	}
	return f.rng.IntN(n)
}

// Step advances every flake by one frame: integrate velocity, apply hand
// repulsion inside InteractionRadius, decay horizontal velocity, and
// recycle anything that crossed the floor. Safe to call every frame.
func (f *SnowField) Step(handPresent bool, hand r3.Vec) {
	cfg := &f.cfg
	for i := range f.flakes {
		p := &f.flakes[i]
		p.Position = r3.Add(p.Position, p.Velocity)

		if handPresent {
			d := r3.Sub(p.Position, hand)
			dist := r3.Norm(d)
			// A flake exactly at the anchor has no defined direction; skip it
			// rather than divide by zero.
			if dist > 0 && dist < cfg.InteractionRadius {
				strength := (cfg.InteractionRadius - dist) / cfg.InteractionRadius
				p.Velocity.X += d.X / dist * strength * repelImpulse
				p.Velocity.Z += d.Z / dist * strength * repelImpulse
			}
		}

		// Horizontal impulses die out on their own; vertical fall does not.
		p.Velocity.X *= cfg.HorizontalDamping
		p.Velocity.Z *= cfg.HorizontalDamping

		if p.Position.Y < cfg.FloorY {
			f.respawn(p)
		}
	}
}

// respawn reinitializes a flake at a fresh high altitude with a fresh fall
// velocity. Horizontal velocity is zeroed so recycled flakes re-enter calm.
func (f *SnowField) respawn(p *Snowflake) {
	p.Position = r3.Vec{
		X: (f.rnd()*2 - 1) * f.cfg.FieldExtent,
		Y: f.cfg.RespawnBand.randomIn(f.rng),
		Z: (f.rnd()*2 - 1) * f.cfg.FieldExtent,
	}
	p.Velocity = r3.Vec{Y: f.cfg.FallSpeed.randomIn(f.rng)}
	p.Size = 0.2 + f.rnd()*0.3
}

// Wave pushes a bounded random subset of flakes away from origin in one
// burst: an outward horizontal impulse scaled by proximity plus a fixed
// upward boost. At most waveSampleCap flakes are touched.
func (f *SnowField) Wave(origin r3.Vec) {
	samples := waveSampleCap
	if len(f.flakes) < samples {
		samples = len(f.flakes)
	}
	for n := 0; n < samples; n++ {
		p := &f.flakes[f.intN(len(f.flakes))]
		d := r3.Sub(p.Position, origin)
		dist := r3.Norm(d)
		if dist == 0 || dist >= f.cfg.WaveRadius {
			continue
		}
		strength := (f.cfg.WaveRadius - dist) / f.cfg.WaveRadius
		p.Velocity.X += d.X / dist * strength * waveImpulse
		p.Velocity.Z += d.Z / dist * strength * waveImpulse
		p.Velocity.Y += waveLift
	}
}

// Spiral swirls every flake near origin around it: a tangential impulse
// scaled by proximity plus a small vertical oscillation keyed to the shared
// clock and the flake's own index, so neighbours bob out of phase. Meant to
// be invoked every frame while the triggering pose holds.
func (f *SnowField) Spiral(origin r3.Vec, clock float64) {
	for i := range f.flakes {
		p := &f.flakes[i]
		dx := p.Position.X - origin.X
		dz := p.Position.Z - origin.Z
		dist := math.Hypot(dx, dz)
		if dist == 0 || dist >= f.cfg.SpiralRadius {
			continue
		}
		strength := (f.cfg.SpiralRadius - dist) / f.cfg.SpiralRadius
		angle := math.Atan2(dz, dx)
		p.Velocity.X += -math.Sin(angle) * spiralTang * strength
		p.Velocity.Z += math.Cos(angle) * spiralTang * strength
		p.Velocity.Y += math.Sin(clock*spiralRate+float64(i)) * spiralBob * strength
	}
}

// DustField is a decorative mote population drifting slowly inside a
// bounding box. It reuses the snowflake integrator shape but takes no hand
// forces and no impulses; motes wrap at the box faces instead of recycling.
type DustField struct {
	extent float64
	motes  []Snowflake
}

// NewDustField creates count motes with small random drift velocities.
func NewDustField(cfg Config, rng *rand.Rand) *DustField {
	d := &DustField{
		extent: cfg.FieldExtent,
		motes:  make([]Snowflake, cfg.DustCount),
	}
	uni := func() float64 {
		if rng == nil {
			return rand.Float64()
		}
		return rng.Float64()
	}
	for i := range d.motes {
		d.motes[i] = Snowflake{
			Position: r3.Vec{
				X: (uni()*2 - 1) * d.extent,
				Y: (uni()*2 - 1) * d.extent / 2,
				Z: (uni()*2 - 1) * d.extent,
			},
			Velocity: r3.Vec{
				X: (uni() - 0.5) * 0.02,
				Y: (uni() - 0.5) * 0.02,
				Z: (uni() - 0.5) * 0.02,
			},
			Size: 0.1 + uni()*0.15,
		}
	}
	return d
}

// Motes returns the live pool for rendering.
func (d *DustField) Motes() []Snowflake {
	return d.motes
}

// Step drifts every mote and wraps it at the box faces.
func (d *DustField) Step() {
	for i := range d.motes {
		p := &d.motes[i]
		p.Position = r3.Add(p.Position, p.Velocity)
		p.Position.X = wrap(p.Position.X, d.extent)
		p.Position.Y = wrap(p.Position.Y, d.extent/2)
		p.Position.Z = wrap(p.Position.Z, d.extent)
	}
}

// wrap folds v into [-extent, extent].
func wrap(v, extent float64) float64 {
	switch {
	case v > extent:
		return -extent
	case v < -extent:
		return extent
	}
	return v
}
