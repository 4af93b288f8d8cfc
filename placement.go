package glimmer

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ornament is one choreographed particle. The population is created once by
// Placement.Ornaments and lives until teardown; only Position mutates after
// that (driven by the active transition's tween), except ScatterTarget,
// which is redrawn on every scatter request.
type Ornament struct {
	Index         int
	Position      r3.Vec
	GatherTarget  r3.Vec
	ScatterTarget r3.Vec
	Rotation      r3.Vec // accumulated idle spin, radians
	RotationSpeed r3.Vec // radians per frame, fixed for lifetime
	Size          float64
	Palette       int
}

// Height bands for radial jitter on the cone surface: placement spreads
// wider near the base and tightens toward the apex.
const (
	jitterLowY   = -5.0
	jitterHighY  = 5.0
	jitterWide   = 2.4
	jitterNormal = 1.4
	jitterTight  = 0.6
	jitterDense  = 0.8 // smaller band for the base-densify pass
)

// heightBias is the power-curve exponent that biases ornament mass toward
// the base of the cone.
const heightBias = 1.7

// apexThinning: ornaments above this normalized height are dropped with
// thinningChance probability so the apex tapers instead of clumping.
const (
	thinningHeight = 0.75
	thinningChance = 0.3
)

// densifyShare is the secondary population added to the bottom third of the
// cone, as a fraction of OrnamentCount.
const densifyShare = 0.25

// Placement computes target coordinates for both arrangements. It owns no
// mutable state beyond its random source and is safe to share across
// components that only sample from it.
//
// Azimuth and jitter draws are randomized; callers needing reproducible
// layouts pass a seeded *rand.Rand. A nil source uses the global one.
type Placement struct {
	cfg Config
	rng *rand.Rand
}

// NewPlacement creates a Placement for the given configuration.
func NewPlacement(cfg Config, rng *rand.Rand) *Placement {
	return &Placement{cfg: cfg, rng: rng}
}

func (p *Placement) rnd() float64 {
	if p.rng == nil {
		return rand.Float64()
	}
	return p.rng.Float64()
}

// TreePosition maps an ornament's rank onto the cone formation. The
// normalized rank passes through a power curve so mass accumulates at the
// base, the radius follows a linear cone profile, and a height-dependent
// jitter band roughens the surface.
func (p *Placement) TreePosition(index, total int) r3.Vec {
	t := float64(index) / float64(total)
	yLocal := math.Pow(t, heightBias) * p.cfg.TreeHeight
	y := yLocal - p.cfg.TreeHeight/2

	radius := p.cfg.BaseRadius * (1 - yLocal/p.cfg.TreeHeight)

	band := jitterNormal
	switch {
	case y < jitterLowY:
		band = jitterWide
	case y > jitterHighY:
		band = jitterTight
	}
	radius += (p.rnd()*2 - 1) * band
	if radius < 0 {
		radius = 0
	}

	theta := p.rnd() * 2 * math.Pi
	return r3.Vec{
		X: math.Cos(theta) * radius,
		Y: y,
		Z: math.Sin(theta) * radius,
	}
}

// ScatterPosition rejection-samples a uniform point inside the scatter
// sphere: draw from the bounding cube and redraw while the point falls
// outside the ball. Never cached — every scatter request redraws so
// repeated scatters don't look static.
func (p *Placement) ScatterPosition() r3.Vec {
	r := p.cfg.ScatterRadius
	for {
		v := r3.Vec{
			X: (p.rnd()*2 - 1) * r,
			Y: (p.rnd()*2 - 1) * r,
			Z: (p.rnd()*2 - 1) * r,
		}
		if r3.Norm2(v) <= r*r {
			return v
		}
	}
}

// basePosition places an ornament of the densify pass: uniform within the
// bottom third of the cone height, on the cone profile with a tighter
// jitter band.
func (p *Placement) basePosition() r3.Vec {
	yLocal := p.rnd() * p.cfg.TreeHeight / 3
	radius := p.cfg.BaseRadius * (1 - yLocal/p.cfg.TreeHeight)
	radius += (p.rnd()*2 - 1) * jitterDense
	if radius < 0 {
		radius = 0
	}
	theta := p.rnd() * 2 * math.Pi
	return r3.Vec{
		X: math.Cos(theta) * radius,
		Y: yLocal - p.cfg.TreeHeight/2,
		Z: math.Sin(theta) * radius,
	}
}

// Ornaments builds the full ornament population: the primary ranked cone
// placement, a densify pass confined to the bottom third (lower foliage
// reads sparse without it), then a thinning pass over the apex. Every
// ornament starts at its scatter target, matching the Scattered initial
// state.
func (p *Placement) Ornaments() []*Ornament {
	total := p.cfg.OrnamentCount
	extra := int(float64(total) * densifyShare)
	out := make([]*Ornament, 0, total+extra)

	for i := 0; i < total; i++ {
		t := float64(i) / float64(total)
		if math.Pow(t, heightBias) > thinningHeight && p.rnd() < thinningChance {
			continue
		}
		out = append(out, p.newOrnament(len(out), p.TreePosition(i, total)))
	}
	for i := 0; i < extra; i++ {
		out = append(out, p.newOrnament(len(out), p.basePosition()))
	}
	return out
}

func (p *Placement) newOrnament(index int, gather r3.Vec) *Ornament {
	scatter := p.ScatterPosition()
	return &Ornament{
		Index:         index,
		Position:      scatter,
		GatherTarget:  gather,
		ScatterTarget: scatter,
		RotationSpeed: r3.Vec{
			X: (p.rnd() - 0.5) * 0.04,
			Y: (p.rnd() - 0.5) * 0.04,
			Z: (p.rnd() - 0.5) * 0.04,
		},
		Size:    0.5 + p.rnd()*0.7,
		Palette: int(p.rnd() * float64(len(OrnamentPalette))),
	}
}
