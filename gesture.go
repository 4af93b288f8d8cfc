package glimmer

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// Gesture is a discrete hand pose classified from a landmark frame.
type Gesture uint8

const (
	GestureNone    Gesture = iota // no hand detected this frame
	GesturePartial                // 2-3 fingers extended; no action mapped
	GestureFist                   // at most one finger extended
	GestureOpen                   // at least four fingers extended
)

// String returns the gesture name for logs and HUD output.
func (g Gesture) String() string {
	switch g {
	case GesturePartial:
		return "partial"
	case GestureFist:
		return "fist"
	case GestureOpen:
		return "open"
	default:
		return "none"
	}
}

// Landmark is one point of the 21-landmark hand model, in normalized image
// space: x and y in [0, 1] with y increasing downward, z a small relative
// depth. The tracking model producing these is an external black box.
type Landmark struct {
	X, Y, Z float64
}

// Frame is one sample from the hand model. Present false means no hand was
// detected; the landmarks are then meaningless.
type Frame struct {
	Present   bool
	Landmarks [21]Landmark
}

// Landmark indices per the standard hand model.
const (
	lmWrist     = 0
	lmThumbTip  = 4
	lmIndexPIP  = 6
	lmIndexTip  = 8
	lmMiddleMCP = 9
	lmMiddlePIP = 10
	lmMiddleTip = 12
	lmRingPIP   = 14
	lmRingTip   = 16
	lmPinkyPIP  = 18
	lmPinkyTip  = 20
)

// Classifier turns a stream of landmark frames into debounced gestures and
// maintains the hand anchor used as the origin for physical effects. It
// owns all gesture state; derived commands flow to collaborators as plain
// values.
type Classifier struct {
	cfg Config

	current     Gesture // classification of the most recent frame
	handPresent bool
	anchor      r3.Vec

	acted   Gesture // last gesture that triggered an action
	actedAt float64 // clock time of that trigger
}

// NewClassifier creates a Classifier. The zero clock is treated as "long
// ago", so the first classified gesture always clears the debounce.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg, actedAt: math.Inf(-1)}
}

// Classify labels a single frame without touching debounce state. The thumb
// counts as extended when its tip sits far enough from the wrist
// horizontally; each remaining finger when its tip sits above its middle
// joint (lower y is higher on screen).
func (c *Classifier) Classify(f Frame) Gesture {
	if !f.Present {
		return GestureNone
	}
	lm := &f.Landmarks
	extended := 0
	if math.Abs(lm[lmThumbTip].X-lm[lmWrist].X) > c.cfg.ThumbThreshold {
		extended++
	}
	pairs := [4][2]int{
		{lmIndexTip, lmIndexPIP},
		{lmMiddleTip, lmMiddlePIP},
		{lmRingTip, lmRingPIP},
		{lmPinkyTip, lmPinkyPIP},
	}
	for _, pr := range pairs {
		if lm[pr[0]].Y < lm[pr[1]].Y-c.cfg.FingerMargin {
			extended++
		}
	}
	switch {
	case extended >= 4:
		return GestureOpen
	case extended <= 1:
		return GestureFist
	default:
		return GesturePartial
	}
}

// Observe classifies a frame, refreshes the hand anchor, and applies the
// debounce rule: the returned act flag is true only when the gesture
// differs from the last acted-upon one AND the debounce interval has
// elapsed since that action. Re-detecting the same pose every frame never
// re-triggers, with two carve-outs: a held Open re-acts each time the
// debounce interval re-elapses (repeated wave bursts), and a held Fist
// drives its continuous effect through Current, bypassing Observe
// entirely.
func (c *Classifier) Observe(f Frame, now float64) (Gesture, bool) {
	g := c.Classify(f)
	c.current = g
	c.handPresent = f.Present
	if f.Present {
		c.anchor = c.anchorFor(f)
	}

	if g == GestureNone {
		return g, false
	}
	if now-c.actedAt < c.cfg.GestureDebounce {
		return g, false
	}
	if g == c.acted && g != GestureOpen {
		return g, false
	}
	c.acted = g
	c.actedAt = now
	return g, true
}

// anchorFor maps the palm landmark into world coordinates on the fixed
// hand plane. Image x runs opposite to world x (mirrored camera).
func (c *Classifier) anchorFor(f Frame) r3.Vec {
	palm := f.Landmarks[lmMiddleMCP]
	return r3.Vec{
		X: (0.5 - palm.X) * c.cfg.HandSpanX,
		Y: (0.5 - palm.Y) * c.cfg.HandSpanY,
		Z: c.cfg.HandPlaneZ,
	}
}

// Current returns the classification of the most recent frame, acted upon
// or not.
func (c *Classifier) Current() Gesture {
	return c.current
}

// Anchor returns the hand anchor in world coordinates and whether a hand
// is currently present.
func (c *Classifier) Anchor() (r3.Vec, bool) {
	return c.anchor, c.handPresent
}

// PoseFrame synthesizes a plausible landmark frame for a canned pose.
// Used by gesture scripts and the examples, where no camera or tracking
// model exists; x and y give the palm position in normalized image space.
func PoseFrame(g Gesture, x, y float64) Frame {
	if g == GestureNone {
		return Frame{}
	}
	var f Frame
	f.Present = true
	for i := range f.Landmarks {
		f.Landmarks[i] = Landmark{X: x, Y: y}
	}
	f.Landmarks[lmWrist] = Landmark{X: x, Y: y + 0.15}
	switch g {
	case GestureOpen:
		// All five digits extended: tips well above PIPs, thumb off to the side.
		f.Landmarks[lmThumbTip] = Landmark{X: x + 0.15, Y: y}
		for _, pr := range [4][2]int{
			{lmIndexTip, lmIndexPIP}, {lmMiddleTip, lmMiddlePIP},
			{lmRingTip, lmRingPIP}, {lmPinkyTip, lmPinkyPIP},
		} {
			f.Landmarks[pr[1]] = Landmark{X: x, Y: y - 0.05}
			f.Landmarks[pr[0]] = Landmark{X: x, Y: y - 0.12}
		}
	case GestureFist:
		// All digits folded: tips below PIPs, thumb tucked near the wrist.
		f.Landmarks[lmThumbTip] = Landmark{X: x + 0.02, Y: y + 0.14}
		for _, pr := range [4][2]int{
			{lmIndexTip, lmIndexPIP}, {lmMiddleTip, lmMiddlePIP},
			{lmRingTip, lmRingPIP}, {lmPinkyTip, lmPinkyPIP},
		} {
			f.Landmarks[pr[1]] = Landmark{X: x, Y: y - 0.05}
			f.Landmarks[pr[0]] = Landmark{X: x, Y: y + 0.02}
		}
	case GesturePartial:
		// Index and middle extended, ring and pinky folded, thumb tucked.
		f.Landmarks[lmThumbTip] = Landmark{X: x + 0.02, Y: y + 0.14}
		f.Landmarks[lmIndexPIP] = Landmark{X: x, Y: y - 0.05}
		f.Landmarks[lmIndexTip] = Landmark{X: x, Y: y - 0.12}
		f.Landmarks[lmMiddlePIP] = Landmark{X: x, Y: y - 0.05}
		f.Landmarks[lmMiddleTip] = Landmark{X: x, Y: y - 0.12}
		f.Landmarks[lmRingPIP] = Landmark{X: x, Y: y - 0.05}
		f.Landmarks[lmRingTip] = Landmark{X: x, Y: y + 0.02}
		f.Landmarks[lmPinkyPIP] = Landmark{X: x, Y: y - 0.05}
		f.Landmarks[lmPinkyTip] = Landmark{X: x, Y: y + 0.02}
	}
	return f
}

// JitterFrame adds small random noise to a synthesized frame, approximating
// real tracker output. Noise stays well inside the classification margins.
func JitterFrame(f Frame, rng *rand.Rand) Frame {
	if !f.Present {
		return f
	}
	uni := rand.Float64
	if rng != nil {
		uni = rng.Float64
	}
	for i := range f.Landmarks {
		f.Landmarks[i].X += (uni() - 0.5) * 0.005
		f.Landmarks[i].Y += (uni() - 0.5) * 0.005
	}
	return f
}
