package glimmer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DrawHUD overlays frame rate, choreography state, and the current gesture
// in the top-left corner. Purely diagnostic; skip it in release builds.
func DrawHUD(screen *ebiten.Image, o *Orchestrator) {
	chor := o.Choreography()
	state := chor.State().String()
	if chor.Transitioning() {
		state += " (transitioning)"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\nstate: %s\ngesture: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		state, o.Classifier().Current(),
	))
}
