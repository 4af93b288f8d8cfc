package glimmer

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action  string  `json:"action"`
	Gesture string  `json:"gesture,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON gesture script against an Orchestrator, one
// frame at a time, synthesizing landmark frames for canned poses. It stands
// in for the camera and hand model during automated, reproducible runs.
//
// Supported actions: "pose" (hold a named gesture at x,y for N frames),
// "release" (no hand for N frames), "toggle" (manual flip), "wait"
// (idle N frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	holdFrame Frame
	holding   bool
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for _, st := range script.Steps {
		if st.Action == "pose" {
			if _, err := gestureByName(st.Gesture); err != nil {
				return nil, err
			}
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the script by one frame, feeding the orchestrator's gesture
// input. Call once per frame before Orchestrator.Step.
func (r *ScriptRunner) Step(o *Orchestrator) {
	if r.done {
		return
	}
	// A held pose re-feeds its frame every remaining frame, the way a real
	// tracker re-detects a held hand.
	if r.waitCount > 0 {
		r.waitCount--
		if r.holding {
			o.OnGesture(r.holdFrame)
		}
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "pose":
		g, _ := gestureByName(st.Gesture)
		r.holdFrame = PoseFrame(g, st.X, st.Y)
		r.holding = true
		if st.Frames > 1 {
			r.waitCount = st.Frames - 1
		}
		o.OnGesture(r.holdFrame)
	case "release":
		r.holding = false
		if st.Frames > 1 {
			r.waitCount = st.Frames - 1
		}
		o.OnGesture(Frame{})
	case "toggle":
		o.Toggle()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		if r.holding {
			o.OnGesture(r.holdFrame)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// gestureByName resolves a script gesture name.
func gestureByName(name string) (Gesture, error) {
	switch name {
	case "fist":
		return GestureFist, nil
	case "open":
		return GestureOpen, nil
	case "partial":
		return GesturePartial, nil
	case "none", "":
		return GestureNone, nil
	}
	return GestureNone, fmt.Errorf("parse gesture script: unknown gesture %q", name)
}
