// Package glimmer is a gesture-driven particle choreography engine for
// [Ebitengine].
//
// Glimmer simulates a crowd of ornament particles that choreograph between
// two arrangements — a cone "tree" formation and a dispersed spherical
// cloud — together with a physically reactive snow field. Transitions are
// driven either by an explicit toggle or by hand gestures classified from
// landmark frames produced by an external hand-tracking model.
//
// # Quick start
//
// Build an [Orchestrator] from a [Config] and step it once per frame with a
// monotonic clock:
//
//	orch, err := glimmer.NewOrchestrator(glimmer.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	// each frame:
//	orch.OnGesture(frame) // whenever the hand model produces one
//	orch.Step(now)
//
// A [Renderer] projects the 3D particle state onto an ebiten.Image:
//
//	r := glimmer.NewRenderer(640, 480)
//	r.Draw(screen, orch)
//
// # Components
//
// [Placement] computes target coordinates for both arrangements: a
// power-curve cone for the gathered tree and rejection-sampled sphere
// points for the scattered cloud. [Choreography] owns the
// Gathered/Scattered state machine and drives the staggered, eased sweep
// of every ornament toward its target. [SnowField] integrates the drifting
// snow with hand repulsion, floor recycling, and wave/spiral impulse
// effects. [Classifier] turns landmark frames into debounced gestures.
// [Orchestrator] is thin glue sequencing all of the above against the
// shared clock.
//
// Hand tracking itself is out of scope: glimmer consumes [Frame] values
// (21 normalized landmarks per the standard hand model) and never touches
// the ML layer. [ScriptRunner] can synthesize pose frames from a JSON
// script for automated, reproducible runs.
//
// [Ebitengine]: https://ebitengine.org
package glimmer
