package glimmer

import "math/rand/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Lerp returns the component-wise interpolation between c and to by t.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: lerp(c.R, to.R, t),
		G: lerp(c.G, to.G, t),
		B: lerp(c.B, to.B, t),
		A: lerp(c.A, to.A, t),
	}
}

// OrnamentPalette is the default set of ornament tints, indexed by an
// ornament's palette index modulo its length.
var OrnamentPalette = []Color{
	{R: 1.00, G: 0.84, B: 0.31, A: 1}, // gold
	{R: 0.91, G: 0.22, B: 0.27, A: 1}, // red
	{R: 0.35, G: 0.78, B: 0.98, A: 1}, // ice blue
	{R: 0.55, G: 0.92, B: 0.55, A: 1}, // green
	{R: 0.95, G: 0.95, B: 1.00, A: 1}, // frost
}

// Range is a general-purpose min/max range.
// Used by the snow field for respawn bands and fall speeds.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// randomIn is Range.Random drawing from an explicit source. A nil source
// falls back to the global one.
func (r Range) randomIn(rng *rand.Rand) float64 {
	if rng == nil {
		return r.Random()
	}
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
