package config

type AnimationDef struct {
	First int
	Last  int
	Step  int
	Speed float32
}

// CompanionAnimations maps a sprite key (e.g., "odango") to its set of
// animation definitions. All companion sheets share a horizontal strip
// layout, one state per sheet.
var CompanionAnimations = map[string]map[StateID]AnimationDef{
	"odango": {
		Idle:    {First: 0, Last: 1, Step: 1, Speed: 24},
		Walking: {First: 0, Last: 1, Step: 1, Speed: 10},
		Egg:     {First: 0, Last: 1, Step: 1, Speed: 36}, // slow wobble
	},
}

// fallbackAnimations is used for sprite keys the feed sends that have no
// entry above. A single looping frame keeps unknown companions alive.
var fallbackAnimations = map[StateID]AnimationDef{
	Idle:    {First: 0, Last: 0, Step: 1, Speed: 30},
	Walking: {First: 0, Last: 0, Step: 1, Speed: 30},
	Egg:     {First: 0, Last: 0, Step: 1, Speed: 30},
}

// AnimationsFor returns the animation set for a sprite key, falling back
// to single-frame defs for unknown keys.
func AnimationsFor(spriteKey string) map[StateID]AnimationDef {
	if defs, ok := CompanionAnimations[spriteKey]; ok {
		return defs
	}
	return fallbackAnimations
}
