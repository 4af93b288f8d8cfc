package glimmer

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/tanema/gween/ease"
)

// Config holds every externally tunable parameter of the engine. Geometric
// values must be positive; Validate rejects anything degenerate rather than
// clamping it. Fields with env tags can be loaded from the environment via
// ConfigFromEnv.
type Config struct {
	// OrnamentCount is the fixed ornament population choreographed between
	// the two arrangements.
	OrnamentCount int `env:"GLIMMER_ORNAMENTS" envDefault:"400"`
	// SnowCount is the fixed snow field population.
	SnowCount int `env:"GLIMMER_SNOW" envDefault:"600"`
	// DustCount is the decorative dust mote population. May be zero.
	DustCount int `env:"GLIMMER_DUST" envDefault:"150"`

	// TreeHeight and BaseRadius define the gathered cone formation.
	TreeHeight float64 `env:"GLIMMER_TREE_HEIGHT" envDefault:"24"`
	BaseRadius float64 `env:"GLIMMER_BASE_RADIUS" envDefault:"9"`
	// ScatterRadius is the radius of the sphere the scattered cloud fills.
	ScatterRadius float64 `env:"GLIMMER_SCATTER_RADIUS" envDefault:"30"`

	// TransitionDuration is the per-ornament tween length in seconds.
	TransitionDuration float64 `env:"GLIMMER_TRANSITION_DURATION" envDefault:"2.0"`
	// MaxStagger is the largest per-ornament start delay in seconds; an
	// ornament at rank t begins its tween t*MaxStagger after the request.
	MaxStagger float64 `env:"GLIMMER_MAX_STAGGER" envDefault:"0.8"`
	// Easing names the easing curve for the sweep. See EasingByName.
	Easing string `env:"GLIMMER_EASING" envDefault:"in-out-cubic"`

	// InteractionRadius is the hand repulsion reach in world units.
	InteractionRadius float64 `env:"GLIMMER_INTERACTION_RADIUS" envDefault:"6"`
	// WaveRadius bounds the one-shot wave burst around the hand anchor.
	WaveRadius float64 `env:"GLIMMER_WAVE_RADIUS" envDefault:"12"`
	// SpiralRadius bounds the continuous vortex around the hand anchor.
	SpiralRadius float64 `env:"GLIMMER_SPIRAL_RADIUS" envDefault:"10"`

	// GestureDebounce is the minimum interval in seconds between two
	// acted-upon gestures.
	GestureDebounce float64 `env:"GLIMMER_GESTURE_DEBOUNCE" envDefault:"1.0"`
	// ThumbThreshold is the minimum horizontal tip-to-wrist distance, in
	// normalized image units, for the thumb to count as extended.
	ThumbThreshold float64 `env:"GLIMMER_THUMB_THRESHOLD" envDefault:"0.1"`
	// FingerMargin is how far above its middle joint a fingertip must sit,
	// in normalized image units, to count as extended.
	FingerMargin float64 `env:"GLIMMER_FINGER_MARGIN" envDefault:"0.02"`
	// DetectionConfidence and TrackingConfidence pass through to the hand
	// model unchanged; the engine never interprets them.
	DetectionConfidence float64 `env:"GLIMMER_DETECTION_CONFIDENCE" envDefault:"0.7"`
	TrackingConfidence  float64 `env:"GLIMMER_TRACKING_CONFIDENCE" envDefault:"0.5"`

	// FieldExtent is the horizontal half-extent of the snow field.
	FieldExtent float64 `env:"GLIMMER_FIELD_EXTENT" envDefault:"40"`
	// FloorY is the height below which a snowflake is recycled.
	FloorY float64 `env:"GLIMMER_FLOOR_Y" envDefault:"-20"`
	// RespawnBand is the altitude band recycled snowflakes reappear in.
	RespawnBand Range
	// FallSpeed is the (negative) vertical velocity band for fresh flakes.
	FallSpeed Range
	// HorizontalDamping is the per-frame multiplicative decay applied to
	// horizontal snow velocity. Must lie strictly inside (0, 1).
	HorizontalDamping float64 `env:"GLIMMER_HORIZONTAL_DAMPING" envDefault:"0.96"`

	// HandSpanX/HandSpanY map normalized landmark coordinates onto world
	// units; HandPlaneZ fixes the anchor depth (landmarks are near-2D).
	HandSpanX  float64 `env:"GLIMMER_HAND_SPAN_X" envDefault:"40"`
	HandSpanY  float64 `env:"GLIMMER_HAND_SPAN_Y" envDefault:"30"`
	HandPlaneZ float64 `env:"GLIMMER_HAND_PLANE_Z" envDefault:"5"`
}

// DefaultConfig returns the stock configuration used by the examples.
func DefaultConfig() Config {
	return Config{
		OrnamentCount:       400,
		SnowCount:           600,
		DustCount:           150,
		TreeHeight:          24,
		BaseRadius:          9,
		ScatterRadius:       30,
		TransitionDuration:  2.0,
		MaxStagger:          0.8,
		Easing:              "in-out-cubic",
		InteractionRadius:   6,
		WaveRadius:          12,
		SpiralRadius:        10,
		GestureDebounce:     1.0,
		ThumbThreshold:      0.1,
		FingerMargin:        0.02,
		DetectionConfidence: 0.7,
		TrackingConfidence:  0.5,
		FieldExtent:         40,
		FloorY:              -20,
		RespawnBand:         Range{Min: 20, Max: 30},
		FallSpeed:           Range{Min: -0.16, Max: -0.06},
		HorizontalDamping:   0.96,
		HandSpanX:           40,
		HandSpanY:           30,
		HandPlaneZ:          5,
	}
}

// ConfigFromEnv loads configuration from environment variables on top of the
// defaults, then validates it.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field. The engine fails fast on bad
// configuration instead of clamping silently.
func (c Config) Validate() error {
	switch {
	case c.OrnamentCount <= 0:
		return fmt.Errorf("config: ornament count must be positive, got %d", c.OrnamentCount)
	case c.SnowCount <= 0:
		return fmt.Errorf("config: snow count must be positive, got %d", c.SnowCount)
	case c.DustCount < 0:
		return fmt.Errorf("config: dust count must not be negative, got %d", c.DustCount)
	case c.TreeHeight <= 0:
		return fmt.Errorf("config: tree height must be positive, got %g", c.TreeHeight)
	case c.BaseRadius <= 0:
		return fmt.Errorf("config: base radius must be positive, got %g", c.BaseRadius)
	case c.ScatterRadius <= 0:
		return fmt.Errorf("config: scatter radius must be positive, got %g", c.ScatterRadius)
	case c.TransitionDuration <= 0:
		return fmt.Errorf("config: transition duration must be positive, got %g", c.TransitionDuration)
	case c.MaxStagger < 0:
		return fmt.Errorf("config: max stagger must not be negative, got %g", c.MaxStagger)
	case c.InteractionRadius <= 0:
		return fmt.Errorf("config: interaction radius must be positive, got %g", c.InteractionRadius)
	case c.WaveRadius <= 0:
		return fmt.Errorf("config: wave radius must be positive, got %g", c.WaveRadius)
	case c.SpiralRadius <= 0:
		return fmt.Errorf("config: spiral radius must be positive, got %g", c.SpiralRadius)
	case c.GestureDebounce <= 0:
		return fmt.Errorf("config: gesture debounce must be positive, got %g", c.GestureDebounce)
	case c.FieldExtent <= 0:
		return fmt.Errorf("config: field extent must be positive, got %g", c.FieldExtent)
	case c.RespawnBand.Min <= c.FloorY:
		return fmt.Errorf("config: respawn band must sit above the floor (%g <= %g)", c.RespawnBand.Min, c.FloorY)
	case c.RespawnBand.Max < c.RespawnBand.Min:
		return fmt.Errorf("config: respawn band inverted (%g > %g)", c.RespawnBand.Min, c.RespawnBand.Max)
	case c.FallSpeed.Min >= 0 || c.FallSpeed.Max >= 0:
		return fmt.Errorf("config: fall speed band must be negative, got [%g, %g]", c.FallSpeed.Min, c.FallSpeed.Max)
	case c.HorizontalDamping <= 0 || c.HorizontalDamping >= 1:
		return fmt.Errorf("config: horizontal damping must lie in (0, 1), got %g", c.HorizontalDamping)
	case c.HandSpanX <= 0 || c.HandSpanY <= 0:
		return fmt.Errorf("config: hand span must be positive, got %g x %g", c.HandSpanX, c.HandSpanY)
	}
	if _, err := EasingByName(c.Easing); err != nil {
		return err
	}
	return nil
}

// easings maps curve names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"out-quart":    ease.OutQuart,
	"out-expo":     ease.OutExpo,
	"in-out-sine":  ease.InOutSine,
	"out-back":     ease.OutBack,
	"out-elastic":  ease.OutElastic,
}

// EasingByName resolves an easing curve identifier to its gween function.
func EasingByName(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown easing %q", name)
	}
	return fn, nil
}
