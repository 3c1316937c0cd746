package tags

import "github.com/yohamta/donburi"

var (
	Companion = donburi.NewTag().SetName("Companion")
)

// Resolv tags for shelf-space hit testing
const (
	ResolvCompanion = "companion"
)
