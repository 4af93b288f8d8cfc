package glimmer

import (
	"math/rand/v2"
	"testing"
)

func TestLoadScriptRejectsBadJSON(t *testing.T) {
	if _, err := LoadScript([]byte("{")); err == nil {
		t.Fatal("malformed JSON should fail")
	}
}

func TestLoadScriptRejectsEmpty(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps":[]}`)); err == nil {
		t.Fatal("empty script should fail")
	}
}

func TestLoadScriptRejectsUnknownGesture(t *testing.T) {
	script := `{"steps":[{"action":"pose","gesture":"vulcan-salute"}]}`
	if _, err := LoadScript([]byte(script)); err == nil {
		t.Fatal("unknown gesture name should fail at load time")
	}
}

func TestScriptDrivesGatherToCompletion(t *testing.T) {
	cfg := DefaultConfig()
	o, err := NewOrchestratorRand(cfg, rand.New(rand.NewPCG(50, 51)))
	if err != nil {
		t.Fatalf("NewOrchestratorRand: %v", err)
	}

	script := `{"steps":[
		{"action":"pose","gesture":"fist","x":0.5,"y":0.5,"frames":10},
		{"action":"release","frames":1},
		{"action":"wait","frames":240}
	]}`
	runner, err := LoadScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	now := 0.0
	for i := 0; i < 600 && !runner.Done(); i++ {
		runner.Step(o)
		now += frameStep
		o.Step(now)
	}

	if !runner.Done() {
		t.Fatal("script never finished")
	}
	chor := o.Choreography()
	if chor.State() != Gathered || chor.Transitioning() {
		t.Fatalf("script should leave a settled gather; state = %v, transitioning = %v",
			chor.State(), chor.Transitioning())
	}
}

func TestScriptToggleStep(t *testing.T) {
	cfg := DefaultConfig()
	o, err := NewOrchestratorRand(cfg, rand.New(rand.NewPCG(60, 61)))
	if err != nil {
		t.Fatalf("NewOrchestratorRand: %v", err)
	}

	runner, err := LoadScript([]byte(`{"steps":[{"action":"toggle"}]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	runner.Step(o)

	if o.Choreography().State() != Gathered {
		t.Fatalf("toggle step should gather, state = %v", o.Choreography().State())
	}
	if !runner.Done() {
		t.Fatal("single-step script should be done")
	}
}

func TestScriptHeldPoseRefeedsFrames(t *testing.T) {
	cfg := DefaultConfig()
	o, err := NewOrchestratorRand(cfg, rand.New(rand.NewPCG(70, 71)))
	if err != nil {
		t.Fatalf("NewOrchestratorRand: %v", err)
	}

	script := `{"steps":[{"action":"pose","gesture":"fist","x":0.5,"y":0.5,"frames":5}]}`
	runner, err := LoadScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	for i := 0; i < 5; i++ {
		runner.Step(o)
		o.Step(float64(i+1) * frameStep)
		if o.Classifier().Current() != GestureFist {
			t.Fatalf("frame %d: held pose not re-fed, current = %v", i, o.Classifier().Current())
		}
	}
	if !runner.Done() {
		t.Fatal("script should finish after the hold")
	}
}
