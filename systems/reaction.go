package systems

import (
	"github.com/leo110047/ODANGO/components"
	cfg "github.com/leo110047/ODANGO/config"
	"github.com/leo110047/ODANGO/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateReactions advances active scale-pop tweens.
func UpdateReactions(ecs *ecs.ECS) {
	tags.Companion.Each(ecs.World, func(e *donburi.Entry) {
		reaction := components.Reaction.Get(e)
		if !reaction.Active || reaction.Seq == nil {
			return
		}
		v, _, done := reaction.Seq.Update(1.0 / 60.0)
		reaction.Scale = float64(v)
		if done {
			reaction.Active = false
			reaction.Scale = 1
			reaction.Seq = nil
		}
	})
}

// TriggerReaction starts the scale pop on one companion. Retriggering while
// a pop is still running restarts it from the top.
func TriggerReaction(ecs *ecs.ECS, id string) {
	tags.Companion.Each(ecs.World, func(e *donburi.Entry) {
		if components.Companion.Get(e).ID != id {
			return
		}
		seq := gween.NewSequence(
			gween.New(1, float32(cfg.Companion.PopScale), cfg.Companion.PopDuration/2, ease.OutQuad),
			gween.New(float32(cfg.Companion.PopScale), 1, cfg.Companion.PopDuration/2, ease.InQuad),
		)
		components.Reaction.SetValue(e, components.ReactionData{Seq: seq, Scale: 1, Active: true})
	})
}
