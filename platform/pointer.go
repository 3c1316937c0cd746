package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leo110047/ODANGO/config"
)

// MousePointer reports the ebiten cursor in surface-local coordinates and
// the configured window-drag modifier keys.
type MousePointer struct{}

func NewMousePointer() *MousePointer { return &MousePointer{} }

func (MousePointer) State() (float64, float64, bool) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (MousePointer) ModifierHeld() bool {
	for _, key := range config.Input.DragModifiers {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
