package glimmer

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testPlacement(seed uint64) *Placement {
	return NewPlacement(DefaultConfig(), rand.New(rand.NewPCG(seed, seed+1)))
}

func TestTreePositionMonotonicHeight(t *testing.T) {
	p := testPlacement(1)
	const total = 500

	prev := math.Inf(-1)
	for i := 0; i < total; i++ {
		y := p.TreePosition(i, total).Y
		if y < prev {
			t.Fatalf("height not monotonic at index %d: %f < %f", i, y, prev)
		}
		prev = y
	}
}

func TestTreePositionHeightRange(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlacement(cfg, rand.New(rand.NewPCG(2, 3)))
	const total = 300

	for i := 0; i < total; i++ {
		y := p.TreePosition(i, total).Y
		if y < -cfg.TreeHeight/2 || y > cfg.TreeHeight/2 {
			t.Fatalf("index %d: y = %f outside [%f, %f]", i, y, -cfg.TreeHeight/2, cfg.TreeHeight/2)
		}
	}
}

func TestTreePositionRadiusWithinJitterBand(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlacement(cfg, rand.New(rand.NewPCG(4, 5)))
	const total = 400

	for i := 0; i < total; i++ {
		v := p.TreePosition(i, total)
		tt := float64(i) / float64(total)
		yLocal := math.Pow(tt, heightBias) * cfg.TreeHeight
		cone := cfg.BaseRadius * (1 - yLocal/cfg.TreeHeight)
		radius := math.Hypot(v.X, v.Z)
		if radius > cone+jitterWide+1e-9 {
			t.Fatalf("index %d: radius %f exceeds cone %f + widest band", i, radius, cone)
		}
	}
}

func TestScatterPositionInsideSphere(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlacement(cfg, rand.New(rand.NewPCG(6, 7)))
	r2 := cfg.ScatterRadius * cfg.ScatterRadius

	for i := 0; i < 2000; i++ {
		v := p.ScatterPosition()
		if r3.Norm2(v) > r2 {
			t.Fatalf("sample %d: %v escapes the scatter sphere", i, v)
		}
	}
}

func TestOrnamentsApexThinning(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlacement(cfg, rand.New(rand.NewPCG(8, 9)))

	orns := p.Ornaments()
	full := cfg.OrnamentCount + int(float64(cfg.OrnamentCount)*densifyShare)
	if len(orns) >= full {
		t.Fatalf("expected thinning to drop apex ornaments: got %d of %d", len(orns), full)
	}
	// Indices stay contiguous after the drop pass.
	for i, orn := range orns {
		if orn.Index != i {
			t.Fatalf("ornament %d has index %d", i, orn.Index)
		}
	}
}

func TestOrnamentsDensifyBottomThird(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlacement(cfg, rand.New(rand.NewPCG(10, 11)))

	orns := p.Ornaments()
	extra := int(float64(cfg.OrnamentCount) * densifyShare)
	// The densify pass appends after the ranked population, confined to
	// the bottom third of the cone (plus its jitter band).
	limit := cfg.TreeHeight/3 - cfg.TreeHeight/2
	tail := orns[len(orns)-extra:]
	for _, orn := range tail {
		if orn.GatherTarget.Y > limit+1e-9 {
			t.Fatalf("densify ornament %d at y = %f, above bottom-third limit %f",
				orn.Index, orn.GatherTarget.Y, limit)
		}
	}
}

func TestOrnamentStartsAtScatterTarget(t *testing.T) {
	p := testPlacement(12)
	for _, orn := range p.Ornaments() {
		if orn.Position != orn.ScatterTarget {
			t.Fatalf("ornament %d: position %v != scatter target %v",
				orn.Index, orn.Position, orn.ScatterTarget)
		}
	}
}

func TestPlacementDeterministicWithSeededSource(t *testing.T) {
	a := testPlacement(42)
	b := testPlacement(42)

	for i := 0; i < 50; i++ {
		va := a.TreePosition(i, 50)
		vb := b.TreePosition(i, 50)
		if va != vb {
			t.Fatalf("index %d: %v != %v with identical seeds", i, va, vb)
		}
	}
	if a.ScatterPosition() != b.ScatterPosition() {
		t.Fatal("scatter positions diverge with identical seeds")
	}
}
