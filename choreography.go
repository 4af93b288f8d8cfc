package glimmer

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/spatial/r3"
)

// Configuration is one of the two target arrangements ornaments choreograph
// between.
type Configuration uint8

const (
	Scattered Configuration = iota // dispersed spherical cloud (initial)
	Gathered                       // cone tree formation
)

// String returns the arrangement name for logs and HUD output.
func (c Configuration) String() string {
	if c == Gathered {
		return "gathered"
	}
	return "scattered"
}

// Accent light endpoints: warm while gathered, cool while scattered.
var (
	lightWarm = Color{R: 1.0, G: 0.76, B: 0.42, A: 1}
	lightCool = Color{R: 0.48, G: 0.66, B: 1.0, A: 1}
)

const (
	ribbonFadeDuration = 0.6 // seconds for the ribbon alpha tween
	ribbonRevealPoint  = 0.5 // fraction of the transition before the ribbon shows
)

// moveTask is one ornament's pending interpolation: from → to, starting
// delay seconds after the transition began. Tasks are evaluated against the
// shared clock each frame, never against wall timers, so a transition is
// deterministic under a fixed step.
type moveTask struct {
	orn      *Ornament
	from, to r3.Vec
	delay    float64
}

// Choreography owns the Gathered/Scattered state machine and the ornament
// population's positions. RequestGather and RequestScatter are the entire
// mutation surface; both are silently ignored while a transition is in
// flight (rejected, not queued). The transitioning guard clears only after
// the full duration including the largest stagger delay has elapsed.
type Choreography struct {
	cfg       Config
	placement *Placement
	snow      *SnowField // optional; transitions fire a wave burst into it
	easeFn    ease.TweenFunc

	ornaments []*Ornament

	state         Configuration
	transitioning bool
	tasks         []moveTask
	startedAt     float64
	endsAt        float64

	lastNow  float64
	hasClock bool

	light      Color
	lightTween *colorTween

	ribbonVisible bool
	ribbonAlpha   float64
	ribbonShowAt  float64
	ribbonPending bool
	ribbonTween   *gween.Tween
}

// NewChoreography builds the ornament population and an initially Scattered
// state machine. snow may be nil; when present, every accepted transition
// also fires a wave burst at the stage center as the crowd moves.
func NewChoreography(cfg Config, placement *Placement, snow *SnowField) (*Choreography, error) {
	easeFn, err := EasingByName(cfg.Easing)
	if err != nil {
		return nil, err
	}
	c := &Choreography{
		cfg:       cfg,
		placement: placement,
		snow:      snow,
		easeFn:    easeFn,
		ornaments: placement.Ornaments(),
		state:     Scattered,
		light:     lightCool,
	}
	c.tasks = make([]moveTask, 0, len(c.ornaments))
	return c, nil
}

// Ornaments returns the population. Positions are owned by the active
// transition's tween; callers read, never write.
func (c *Choreography) Ornaments() []*Ornament {
	return c.ornaments
}

// State returns the current arrangement. During a transition this is
// already the destination arrangement.
func (c *Choreography) State() Configuration {
	return c.state
}

// Transitioning reports whether a transition is in flight.
func (c *Choreography) Transitioning() bool {
	return c.transitioning
}

// Light returns the accent light color, tweened warm on gather and cool on
// scatter.
func (c *Choreography) Light() Color {
	return c.light
}

// Ribbon returns the decorative ribbon overlay's visibility and alpha. The
// ribbon reveals partway through a gather and hides at the start of a
// scatter.
func (c *Choreography) Ribbon() (visible bool, alpha float64) {
	return c.ribbonVisible, c.ribbonAlpha
}

// Toggle requests whichever transition leaves the current arrangement.
// Returns false if the request was rejected by the re-entrancy guard.
func (c *Choreography) Toggle(now float64) bool {
	if c.state == Gathered {
		return c.RequestScatter(now)
	}
	return c.RequestGather(now)
}

// RequestGather starts the sweep toward the tree formation. A no-op while
// a transition is already in flight.
func (c *Choreography) RequestGather(now float64) bool {
	if c.transitioning {
		return false
	}
	c.begin(now, Gathered)
	for i := range c.tasks {
		c.tasks[i].to = c.tasks[i].orn.GatherTarget
	}
	c.lightTween = newColorTween(&c.light, lightWarm, float32(c.cfg.TransitionDuration), c.easeFn)
	// Reveal the ribbon once the crowd has mostly assembled.
	c.ribbonShowAt = now + c.cfg.TransitionDuration*ribbonRevealPoint
	c.ribbonPending = true
	return true
}

// RequestScatter redraws every scatter target (repeated scatters must not
// look static) and starts the sweep into the cloud. A no-op while a
// transition is already in flight.
func (c *Choreography) RequestScatter(now float64) bool {
	if c.transitioning {
		return false
	}
	c.begin(now, Scattered)
	for i := range c.tasks {
		t := &c.tasks[i]
		t.orn.ScatterTarget = c.placement.ScatterPosition()
		t.to = t.orn.ScatterTarget
	}
	c.lightTween = newColorTween(&c.light, lightCool, float32(c.cfg.TransitionDuration), c.easeFn)
	// Hide the ribbon immediately on scatter.
	c.ribbonPending = false
	c.ribbonVisible = false
	c.ribbonTween = gween.New(float32(c.ribbonAlpha), 0, ribbonFadeDuration, ease.OutQuad)
	return true
}

// begin arms the guard and rebuilds the task list with index-proportional
// stagger delays, so the arrangement assembles as a base-to-apex sweep
// rather than in lockstep.
func (c *Choreography) begin(now float64, dest Configuration) {
	c.transitioning = true
	c.state = dest
	c.startedAt = now
	c.endsAt = now + c.cfg.TransitionDuration + c.cfg.MaxStagger

	n := len(c.ornaments)
	c.tasks = c.tasks[:0]
	for _, orn := range c.ornaments {
		c.tasks = append(c.tasks, moveTask{
			orn:   orn,
			from:  orn.Position,
			delay: float64(orn.Index) / float64(n) * c.cfg.MaxStagger,
		})
	}

	if c.snow != nil {
		c.snow.Wave(r3.Vec{})
	}
}

// Update evaluates the active tasks against the shared clock, advances the
// accent light and ribbon tweens, and accumulates idle ornament spin. Call
// once per frame whether or not a transition is in flight.
func (c *Choreography) Update(now float64) {
	var dt float32
	if c.hasClock {
		dt = float32(now - c.lastNow)
	}
	c.lastNow = now
	c.hasClock = true

	if c.transitioning {
		dur := c.cfg.TransitionDuration
		for i := range c.tasks {
			t := &c.tasks[i]
			el := now - c.startedAt - t.delay
			if el <= 0 {
				continue
			}
			if el > dur {
				el = dur
			}
			p := float64(c.easeFn(float32(el), 0, 1, float32(dur)))
			t.orn.Position = r3.Vec{
				X: lerp(t.from.X, t.to.X, p),
				Y: lerp(t.from.Y, t.to.Y, p),
				Z: lerp(t.from.Z, t.to.Z, p),
			}
		}
		if now >= c.endsAt {
			// Snap exactly onto targets before releasing the guard.
			for i := range c.tasks {
				c.tasks[i].orn.Position = c.tasks[i].to
			}
			c.transitioning = false
		}
	}

	for _, orn := range c.ornaments {
		orn.Rotation = r3.Add(orn.Rotation, orn.RotationSpeed)
	}

	if c.lightTween != nil {
		c.lightTween.Update(dt)
		if c.lightTween.Done {
			c.lightTween = nil
		}
	}

	if c.ribbonPending && now >= c.ribbonShowAt {
		c.ribbonPending = false
		c.ribbonVisible = true
		c.ribbonTween = gween.New(float32(c.ribbonAlpha), 1, ribbonFadeDuration, ease.OutQuad)
	}
	if c.ribbonTween != nil {
		v, finished := c.ribbonTween.Update(dt)
		c.ribbonAlpha = float64(v)
		if finished {
			c.ribbonTween = nil
		}
	}
}

// colorTween animates the three color channels of a Color in place, in the
// manner of a gween tween group. Alpha is left untouched.
type colorTween struct {
	tweens [3]*gween.Tween
	fields [3]*float64
	Done   bool
}

func newColorTween(target *Color, to Color, duration float32, fn ease.TweenFunc) *colorTween {
	ct := &colorTween{}
	ct.tweens[0] = gween.New(float32(target.R), float32(to.R), duration, fn)
	ct.tweens[1] = gween.New(float32(target.G), float32(to.G), duration, fn)
	ct.tweens[2] = gween.New(float32(target.B), float32(to.B), duration, fn)
	ct.fields[0] = &target.R
	ct.fields[1] = &target.G
	ct.fields[2] = &target.B
	return ct
}

// Update advances all channels by dt seconds.
func (ct *colorTween) Update(dt float32) {
	if ct.Done {
		return
	}
	allDone := true
	for i := range ct.tweens {
		val, finished := ct.tweens[i].Update(dt)
		*ct.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	ct.Done = allDone
}
