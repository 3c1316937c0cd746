package archetypes

import (
	"github.com/leo110047/ODANGO/components"
	cfg "github.com/leo110047/ODANGO/config"
	"github.com/leo110047/ODANGO/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Companion = newArchetype(
		tags.Companion,
		components.Companion,
		components.Walk,
		components.Handle,
		components.Animation,
		components.Reaction,
	)
	Settings = newArchetype(
		components.Settings,
	)
	Audio = newArchetype(
		components.Audio,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
