package config

import "github.com/hajimehoshi/ebiten/v2"

// InputConfig holds all key bindings
type InputConfig struct {
	// ToggleChord keys must all be held together to count as the
	// activation hotkey for interactive mode.
	ToggleChord []ebiten.Key

	// DragModifiers: any one held turns a press anywhere on the shelf
	// into a window drag.
	DragModifiers []ebiten.Key

	// QuitChord keys must all be held together to exit (interactive
	// mode only).
	QuitChord []ebiten.Key
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		ToggleChord:   []ebiten.Key{ebiten.KeyControl, ebiten.KeyShift, ebiten.KeyO},
		DragModifiers: []ebiten.Key{ebiten.KeyAlt},
		QuitChord:     []ebiten.Key{ebiten.KeyControl, ebiten.KeyQ},
	}
}
