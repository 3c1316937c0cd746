package components

import (
	"github.com/leo110047/ODANGO/config"
	"github.com/yohamta/donburi"
)

// CompanionData holds the feed-supplied identity and appearance of one
// companion. IDs are assigned externally and never reused while the
// companion is live.
type CompanionData struct {
	ID            string
	Name          string
	SpriteKey     string
	Stage         string // config.StageEgg disables positional movement
	DefaultFacing config.FacingID
	ScaleFactor   float64
}

var Companion = donburi.NewComponentType[CompanionData]()
