package config

// StateID identifies a companion animation state
type StateID int

const (
	StateNone StateID = iota
	Idle
	Walking
	Egg
)

// StateToFileName maps animation states to sprite sheet name suffixes
var StateToFileName = map[StateID]string{
	Idle:    "idle",
	Walking: "walk",
	Egg:     "egg",
}

// Lifecycle stage tags delivered by the snapshot feed. StageEgg is the
// distinguished value that disables positional movement.
const (
	StageEgg   = "egg"
	StageBaby  = "baby"
	StageAdult = "adult"
)

// DirectionID is the current walk heading along the shelf
type DirectionID int

const (
	Backward DirectionID = iota // toward smaller x
	Forward                     // toward larger x
)

// Sign returns the position delta sign for the heading
func (d DirectionID) Sign() float64 {
	if d == Forward {
		return 1.0
	}
	return -1.0
}

// FacingID is the intrinsic orientation of a companion's sprite sheet
type FacingID int

const (
	FacingLeft FacingID = iota
	FacingRight
)
