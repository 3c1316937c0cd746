package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leo110047/ODANGO/config"
	"github.com/leo110047/ODANGO/fonts"
	"github.com/leo110047/ODANGO/scenes"
	"github.com/leo110047/ODANGO/systems"
	"golang.org/x/image/font/gofont/goregular"
)

type Game struct {
	scene *scenes.OverlayScene
}

func NewGame() *Game {
	fonts.LoadFontWithSize(fonts.Label, goregular.TTF, 12)
	fonts.LoadFontWithSize(fonts.LabelSmall, goregular.TTF, 10)

	return &Game{
		scene: scenes.NewOverlayScene(),
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	if g.scene.ShouldQuit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// The surface is the window: gestures and hit tests work in the same
	// logical units the window geometry uses.
	return outsideWidth, outsideHeight
}

func main() {
	// Initialize persistence and load the saved placement
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	// Start click-through; the controller flips this on mode changes.
	ebiten.SetWindowMousePassthrough(true)

	applyStartupGeometry()

	game := NewGame()

	op := &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
	}
	if err := ebiten.RunGameWithOptions(game, op); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	game.scene.Dispose()
}

// applyStartupGeometry places the shelf: the saved layout when one exists,
// otherwise bottom-center of the primary monitor.
func applyStartupGeometry() {
	w, h := config.C.Width, config.C.Height
	var x, y int
	placed := false

	if layout, err := systems.LoadLayout(); err == nil && layout != nil {
		if layout.W >= config.Interaction.MinWindowWidth {
			w = layout.W
		}
		if layout.H > 0 {
			h = layout.H
		}
		x, y = layout.X, layout.Y
		placed = true
	}

	if !placed {
		mw, mh := ebiten.Monitor().Size()
		x = (mw - w) / 2
		y = mh - h - 48 // stay clear of common taskbar heights
	}

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(x, y)

	if sf := ebiten.Monitor().DeviceScaleFactor(); sf != 1 {
		log.Printf("display scale factor: %.2f", sf)
	}
}
