package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// ReactionData drives the short scale pop played when a companion hatches or
// gets picked up. Scale multiplies the companion's base scale during render;
// the sequence runs once and then deactivates.
type ReactionData struct {
	Seq    *gween.Sequence
	Scale  float64
	Active bool
}

var Reaction = donburi.NewComponentType[ReactionData]()
