// Package scene defines the Scene interface for viewer screens.
//
// The fight viewer and replay playback implement Scene; the game loop
// delegates Update and Draw to the current one.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit ends the game loop without reporting a failure
var ErrQuit = errors.New("quit")

// Scene represents a viewer screen.
//
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by one tick.
	// dt is the tick length in seconds.
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game; ErrQuit terminates it cleanly.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene, and when the game loop ends.
	OnExit()
}
