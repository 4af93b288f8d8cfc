package glimmer

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestProjectCentersOrigin(t *testing.T) {
	r := NewRenderer(640, 480)
	r.CameraHeight = 0

	sx, sy, _, ok := r.project(r3.Vec{}, 0)
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}
	if math.Abs(sx-320) > 1e-9 || math.Abs(sy-240) > 1e-9 {
		t.Fatalf("origin projected to (%f, %f), want screen center", sx, sy)
	}
}

func TestProjectRejectsBehindCamera(t *testing.T) {
	r := NewRenderer(640, 480)

	if _, _, _, ok := r.project(r3.Vec{Z: -r.CameraDistance}, 0); ok {
		t.Fatal("point at the camera must be rejected by the near plane")
	}
	if _, _, _, ok := r.project(r3.Vec{Z: -r.CameraDistance * 2}, 0); ok {
		t.Fatal("point behind the camera must be rejected")
	}
}

func TestProjectNearerIsLarger(t *testing.T) {
	r := NewRenderer(640, 480)

	_, _, near, ok := r.project(r3.Vec{Z: -10}, 0)
	if !ok {
		t.Fatal("near point rejected")
	}
	_, _, far, ok := r.project(r3.Vec{Z: 10}, 0)
	if !ok {
		t.Fatal("far point rejected")
	}
	if near <= far {
		t.Fatalf("projected scale should shrink with depth: near %f, far %f", near, far)
	}
}

func TestProjectOrbitRotates(t *testing.T) {
	r := NewRenderer(640, 480)

	// A point on +x drifts across the screen as the camera orbits.
	sx0, _, _, _ := r.project(r3.Vec{X: 10}, 0)
	sx1, _, _, _ := r.project(r3.Vec{X: 10}, math.Pi/4)
	if sx0 == sx1 {
		t.Fatal("orbiting camera should move the projection")
	}

	// A quarter turn maps +x onto the view axis.
	sx2, _, _, ok := r.project(r3.Vec{X: 10}, -math.Pi/2)
	if !ok {
		t.Fatal("rotated point rejected")
	}
	if math.Abs(sx2-320) > 1e-6 {
		t.Fatalf("quarter-turn projection at x = %f, want screen center", sx2)
	}
}

func TestProjectHigherIsUpOnScreen(t *testing.T) {
	r := NewRenderer(640, 480)
	r.CameraHeight = 0

	_, syLow, _, _ := r.project(r3.Vec{Y: -5}, 0)
	_, syHigh, _, _ := r.project(r3.Vec{Y: 5}, 0)
	if syHigh >= syLow {
		t.Fatalf("world +y should project upward: high %f, low %f", syHigh, syLow)
	}
}
