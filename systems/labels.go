package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/leo110047/ODANGO/components"
	cfg "github.com/leo110047/ODANGO/config"
	"github.com/leo110047/ODANGO/fonts"
	"github.com/leo110047/ODANGO/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

// Cached font faces for label rendering (lazy initialized)
var (
	labelFace      font.Face
	labelSmallFace font.Face
)

// DrawLabels renders each companion's name above its sprite. Labels ride the
// affordance fade, so they only show while interactive mode is (or is
// becoming) active.
func DrawLabels(ecs *ecs.ECS, screen *ebiten.Image) {
	if affordanceAlpha <= 0 {
		return
	}
	if labelFace == nil {
		labelFace = fonts.Label.Get()
		labelSmallFace = fonts.LabelSmall.Get()
	}

	tags.Companion.Each(ecs.World, func(e *donburi.Entry) {
		companion := components.Companion.Get(e)
		handle := components.Handle.Get(e).Handle
		if handle == nil || companion.Name == "" {
			return
		}

		// Eggs get the muted face; they have a name but no personality yet.
		face := labelFace
		if companion.Stage == cfg.StageEgg {
			face = labelSmallFace
		}

		bounds := text.BoundString(face, companion.Name) //nolint:staticcheck // TODO: migrate to text/v2
		bx, by, bw, _ := handle.Bounds()
		x := int(bx+bw/2) - bounds.Dx()/2
		y := int(by - cfg.Companion.LabelOffsetY)

		text.Draw(screen, companion.Name, face, x+1, y+1, fadeColor(cfg.UI.LabelShadow, affordanceAlpha))
		text.Draw(screen, companion.Name, face, x, y, fadeColor(cfg.UI.LabelColor, affordanceAlpha))
	})
}
