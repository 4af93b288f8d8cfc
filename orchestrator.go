package glimmer

import "math/rand/v2"

// Orchestrator ties the per-frame clock, the gesture feed, the choreography
// state machine, and the snow field together. It owns no algorithmic logic
// itself, only sequencing: everything runs on the single frame loop, so no
// locking is involved.
type Orchestrator struct {
	cfg Config

	placement  *Placement
	chor       *Choreography
	snow       *SnowField
	dust       *DustField
	classifier *Classifier

	now float64
}

// NewOrchestrator validates cfg and wires the full engine using the global
// random source.
func NewOrchestrator(cfg Config) (*Orchestrator, error) {
	return NewOrchestratorRand(cfg, nil)
}

// NewOrchestratorRand is NewOrchestrator with an explicit random source,
// for reproducible runs (scripts, tests). A nil source uses the global one.
func NewOrchestratorRand(cfg Config, rng *rand.Rand) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	placement := NewPlacement(cfg, rng)
	snow := NewSnowField(cfg, rng)
	chor, err := NewChoreography(cfg, placement, snow)
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		cfg:        cfg,
		placement:  placement,
		chor:       chor,
		snow:       snow,
		dust:       NewDustField(cfg, rng),
		classifier: NewClassifier(cfg),
	}, nil
}

// OnGesture feeds one landmark frame from the hand model. Arrives
// out-of-band from the render tick; timestamps use the last observed clock.
// A debounced Fist requests a gather; a debounced Open requests a scatter,
// or fires a wave burst at the hand when the crowd is already scattered.
func (o *Orchestrator) OnGesture(f Frame) {
	g, act := o.classifier.Observe(f, o.now)
	if !act {
		return
	}
	anchor, _ := o.classifier.Anchor()
	switch g {
	case GestureFist:
		o.chor.RequestGather(o.now)
	case GestureOpen:
		if o.chor.State() == Scattered {
			o.snow.Wave(anchor)
		} else {
			o.chor.RequestScatter(o.now)
		}
	}
}

// Step advances one frame against the monotonic clock (seconds): evaluate
// the active transition, re-apply the spiral while a Fist is held (a held
// pose, exempt from debounce), then integrate the snow and dust fields.
func (o *Orchestrator) Step(now float64) {
	o.now = now
	o.chor.Update(now)

	anchor, present := o.classifier.Anchor()
	if present && o.classifier.Current() == GestureFist {
		o.snow.Spiral(anchor, now)
	}
	o.snow.Step(present, anchor)
	o.dust.Step()
}

// Toggle flips between Scattered and Gathered at the current clock.
func (o *Orchestrator) Toggle() bool {
	return o.chor.Toggle(o.now)
}

// RequestGather requests the tree formation at the current clock.
func (o *Orchestrator) RequestGather() bool {
	return o.chor.RequestGather(o.now)
}

// RequestScatter requests the dispersed cloud at the current clock.
func (o *Orchestrator) RequestScatter() bool {
	return o.chor.RequestScatter(o.now)
}

// Choreography exposes the state machine for rendering and inspection.
func (o *Orchestrator) Choreography() *Choreography {
	return o.chor
}

// Snow exposes the snow field for rendering.
func (o *Orchestrator) Snow() *SnowField {
	return o.snow
}

// Dust exposes the dust field for rendering.
func (o *Orchestrator) Dust() *DustField {
	return o.dust
}

// Classifier exposes the gesture classifier for HUD output.
func (o *Orchestrator) Classifier() *Classifier {
	return o.classifier
}

// Clock returns the last stepped clock value.
func (o *Orchestrator) Clock() float64 {
	return o.now
}
