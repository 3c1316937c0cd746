package components

import (
	"time"

	"github.com/leo110047/ODANGO/config"
	"github.com/yohamta/donburi"
)

// WalkData is the random-walk state of one companion. Position and Target
// live in shelf coordinates (left edge of the handle). Direction is always
// derived from the sign of Target minus Position when a target is picked,
// never stored independently of that recomputation.
type WalkData struct {
	Position  float64
	Target    float64
	Direction config.DirectionID

	Resting   bool
	RestUntil time.Time

	// SpeedMultiplier is fixed per companion at spawn; BaseSpeed comes from
	// settings and is clamped to the configured range.
	SpeedMultiplier float64
	BaseSpeed       float64

	MovementEnabled bool
}

// EffectiveSpeed is the per-tick position delta magnitude.
func (w *WalkData) EffectiveSpeed() float64 {
	return w.BaseSpeed * w.SpeedMultiplier
}

var Walk = donburi.NewComponentType[WalkData]()
