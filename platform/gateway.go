// Package platform backs the interaction layer's host abstractions with
// ebiten. The adapters are deliberately thin so the controller and its tests
// never touch the real window.
package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// WindowGateway adapts the ebiten window API to the interaction Gateway.
// ebiten's window calls cannot fail, so every error here is nil; the
// fallible signatures exist for hosts where placement is an async request.
type WindowGateway struct{}

func NewWindowGateway() *WindowGateway { return &WindowGateway{} }

func (WindowGateway) Position() (int, int, error) {
	x, y := ebiten.WindowPosition()
	return x, y, nil
}

func (WindowGateway) SetPosition(x, y int) error {
	ebiten.SetWindowPosition(x, y)
	return nil
}

func (WindowGateway) Size() (int, int, error) {
	w, h := ebiten.WindowSize()
	return w, h, nil
}

func (WindowGateway) SetSize(w, h int) error {
	ebiten.SetWindowSize(w, h)
	return nil
}

func (WindowGateway) SetMousePassthrough(enabled bool) error {
	ebiten.SetWindowMousePassthrough(enabled)
	return nil
}
