package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	cfg "github.com/leo110047/ODANGO/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// Affordance fade state, shared with the label renderer. The scene flips
// SetAffordancesVisible from the controller's mode callback; the systems
// here only read the faded alpha.
var (
	affordanceAlpha   float32
	affordanceFade    *gween.Tween
	affordancesActive bool
)

// SetAffordancesVisible starts the fade toward the mode's resting alpha.
func SetAffordancesVisible(visible bool) {
	if visible == affordancesActive {
		return
	}
	affordancesActive = visible
	target := float32(0)
	if visible {
		target = 1
	}
	affordanceFade = gween.New(affordanceAlpha, target, cfg.UI.FadeDuration, ease.Linear)
}

// UpdateAffordances advances the fade tween.
func UpdateAffordances(ecs *ecs.ECS) {
	if affordanceFade == nil {
		return
	}
	v, done := affordanceFade.Update(1.0 / 60.0)
	affordanceAlpha = v
	if done {
		affordanceFade = nil
	}
}

// DrawAffordances renders the resize strips and the top drag bar. The strip
// under the cursor highlights so the grab target is discoverable.
func DrawAffordances(ecs *ecs.ECS, screen *ebiten.Image) {
	if affordanceAlpha <= 0 {
		return
	}

	w := float32(screen.Bounds().Dx())
	h := float32(screen.Bounds().Dy())
	ew := float32(cfg.Interaction.EdgeWidth)

	leftColor := fadeColor(cfg.UI.EdgeColor, affordanceAlpha)
	rightColor := leftColor
	mx, _ := ebiten.CursorPosition()
	switch {
	case float64(mx) <= cfg.Interaction.EdgeWidth:
		leftColor = fadeColor(cfg.UI.EdgeHoverColor, affordanceAlpha)
	case float64(mx) >= float64(screen.Bounds().Dx())-cfg.Interaction.EdgeWidth:
		rightColor = fadeColor(cfg.UI.EdgeHoverColor, affordanceAlpha)
	}

	vector.DrawFilledRect(screen, 0, 0, ew, h, leftColor, false)
	vector.DrawFilledRect(screen, w-ew, 0, ew, h, rightColor, false)
	vector.DrawFilledRect(screen, ew, 0, w-2*ew, float32(cfg.Interaction.BarHeight), fadeColor(cfg.UI.BarColor, affordanceAlpha), false)
}

// fadeColor scales all channels together so the semi-transparent affordances
// fade without shifting hue.
func fadeColor(c color.RGBA, alpha float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * alpha),
		G: uint8(float32(c.G) * alpha),
		B: uint8(float32(c.B) * alpha),
		A: uint8(float32(c.A) * alpha),
	}
}
