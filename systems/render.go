package systems

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leo110047/ODANGO/components"
	cfg "github.com/leo110047/ODANGO/config"
	"github.com/leo110047/ODANGO/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	drawOp = &ebiten.DrawImageOptions{}
)

// DrawCompanions renders every companion bottom-anchored to its stage handle,
// mirrored when the walk heads against the sheet's native facing.
func DrawCompanions(ecs *ecs.ECS, screen *ebiten.Image) {
	tags.Companion.Each(ecs.World, func(e *donburi.Entry) {
		handle := components.Handle.Get(e).Handle
		if handle == nil {
			return
		}
		animData := components.Animation.Get(e)

		var img *ebiten.Image
		if animData.CurrentAnimation != nil {
			frame := animData.CurrentAnimation.Frame()

			if frames, ok := animData.CachedFrames[animData.CurrentSheet]; ok {
				img = frames[frame]
			}

			// Fallback to runtime slicing if not cached (safety)
			if img == nil && animData.SpriteSheets[animData.CurrentSheet] != nil {
				sx := frame * animData.FrameWidth
				srcRect := image.Rect(sx, 0, sx+animData.FrameWidth, animData.FrameHeight)
				img = animData.SpriteSheets[animData.CurrentSheet].SubImage(srcRect).(*ebiten.Image)

				// Cache to prevent repeated allocations
				if animData.CachedFrames[animData.CurrentSheet] == nil {
					animData.CachedFrames[animData.CurrentSheet] = make(map[int]*ebiten.Image)
				}
				animData.CachedFrames[animData.CurrentSheet][frame] = img
			}
		}

		bx, by, bw, bh := handle.Bounds()

		if img == nil {
			// Sheet unavailable: flat block so the companion stays visible
			// and clickable.
			c := cfg.Peach
			if components.Companion.Get(e).Stage == cfg.StageEgg {
				c = cfg.Cream
			}
			vector.DrawFilledRect(screen, float32(bx), float32(by), float32(bw), float32(bh), c, false)
			return
		}

		scale := handle.Scale()
		reaction := components.Reaction.Get(e)
		if reaction.Active && reaction.Scale > 0 {
			scale *= reaction.Scale
		}

		drawOp.GeoM.Reset()
		drawOp.ColorScale.Reset()

		// Anchor at bottom-center so scale pops grow upward from the shelf
		drawOp.GeoM.Translate(-float64(animData.FrameWidth)/2, -float64(animData.FrameHeight))
		drawOp.GeoM.Scale(scale, scale)
		if handle.Mirrored() {
			drawOp.GeoM.Scale(-1, 1)
		}
		drawOp.GeoM.Translate(bx+bw/2, by+bh)

		screen.DrawImage(img, drawOp)
	})
}
