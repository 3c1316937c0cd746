package config

import (
	"image/color"
	"time"
)

// WalkConfig contains companion random-walk tuning values
type WalkConfig struct {
	// Motion
	BaseSpeed   float64 // units per tick before per-companion variance
	MinSpeed    float64 // floor for externally supplied speed overrides
	MaxSpeed    float64 // ceiling for externally supplied speed overrides
	VarianceMin float64 // per-companion speed multiplier range, fixed at spawn
	VarianceMax float64

	// Target selection
	Margin        float64 // keep-out band at both shelf edges
	MinTargetDist float64 // redraw targets closer than this to the current position
	NarrowSpan    float64 // usable spans at or below this accept close targets

	// Resting
	RestMin time.Duration
	RestMax time.Duration

	// Arrival: rest once within this many effective-speed units of the target
	StopWithinSpeeds float64
}

// InteractionConfig contains mode-toggle and gesture tuning values
type InteractionConfig struct {
	HoldDuration   time.Duration // hotkey hold required to toggle modes
	MinWindowWidth int           // hard floor for shelf width
	EdgeWidth      float64       // resize affordance strip width
	BarHeight      float64       // top drag bar affordance height
	DragDeadZone   float64       // pointer travel before a press becomes a drag
}

// CompanionConfig contains shared companion visual values
type CompanionConfig struct {
	FrameWidth   int
	FrameHeight  int
	DefaultScale float64
	LabelOffsetY float64 // name label distance above the sprite

	// Click reaction pop
	PopScale    float64
	PopDuration float32 // seconds, gween time base
}

// UIConfig contains affordance and label styling
type UIConfig struct {
	EdgeColor      color.RGBA
	EdgeHoverColor color.RGBA
	BarColor       color.RGBA
	LabelColor     color.RGBA
	LabelShadow    color.RGBA
	FadeDuration   float32 // seconds for affordance fade in/out

	ToolbarBg      color.RGBA
	ToolbarText    color.RGBA
	ButtonIdle     color.RGBA
	ButtonHover    color.RGBA
	ButtonPressed  color.RGBA
	ToolbarHint    string
	ToolbarGeomFmt string
}

// RosterEntry describes one companion the local feed serves
type RosterEntry struct {
	ID        string
	Name      string
	SpriteKey string
	Facing    FacingID
	Hatched   bool // false starts the companion in the egg stage
}

// RosterConfig drives the built-in snapshot feed
type RosterConfig struct {
	Companions []RosterEntry
	Interval   time.Duration // snapshot publish interval
	HatchAfter time.Duration // egg lifetime before hatching
	GrowEvery  time.Duration // scale step interval after hatch
	GrowStep   float64
	MaxScale   float64
}

// Config holds general shelf window values
type Config struct {
	Width  int // initial shelf width
	Height int // fixed shelf height
}

// Global configuration instances
var C *Config
var Walk WalkConfig
var Interaction InteractionConfig
var Companion CompanionConfig
var UI UIConfig
var Roster RosterConfig

// Shared RGBA color constants
var (
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cream      = color.RGBA{R: 250, G: 240, B: 215, A: 255}
	Peach      = color.RGBA{R: 255, G: 190, B: 150, A: 255}
	Mint       = color.RGBA{R: 160, G: 230, B: 190, A: 255}
	SkyBlue    = color.RGBA{R: 150, G: 200, B: 255, A: 255}
	SoftShadow = color.RGBA{R: 0, G: 0, B: 0, A: 120}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 160,
	}

	Walk = WalkConfig{
		BaseSpeed:   1.0,
		MinSpeed:    0.3,
		MaxSpeed:    2.0,
		VarianceMin: 0.8,
		VarianceMax: 1.2,

		Margin:        10.0,
		MinTargetDist: 50.0,
		NarrowSpan:    100.0,

		RestMin: 2000 * time.Millisecond,
		RestMax: 8000 * time.Millisecond,

		StopWithinSpeeds: 2.0,
	}

	Interaction = InteractionConfig{
		HoldDuration:   500 * time.Millisecond,
		MinWindowWidth: 400,
		EdgeWidth:      12.0,
		BarHeight:      18.0,
		DragDeadZone:   4.0,
	}

	Companion = CompanionConfig{
		FrameWidth:   48,
		FrameHeight:  48,
		DefaultScale: 1.0,
		LabelOffsetY: 6.0,

		PopScale:    1.25,
		PopDuration: 0.12,
	}

	UI = UIConfig{
		EdgeColor:      color.RGBA{R: 255, G: 255, B: 255, A: 70},
		EdgeHoverColor: color.RGBA{R: 255, G: 255, B: 255, A: 150},
		BarColor:       color.RGBA{R: 255, G: 255, B: 255, A: 50},
		LabelColor:     Cream,
		LabelShadow:    SoftShadow,
		FadeDuration:   0.2,

		ToolbarBg:      color.RGBA{R: 25, G: 25, B: 35, A: 220},
		ToolbarText:    Cream,
		ButtonIdle:     color.RGBA{R: 60, G: 60, B: 80, A: 255},
		ButtonHover:    color.RGBA{R: 80, G: 80, B: 100, A: 255},
		ButtonPressed:  color.RGBA{R: 40, G: 40, B: 60, A: 255},
		ToolbarHint:    "drag edges to resize, hold Alt to move, drag a pet to place it",
		ToolbarGeomFmt: "%dx%d @ %d,%d",
	}

	Roster = RosterConfig{
		Companions: []RosterEntry{
			{ID: "odango-1", Name: "Mochi", SpriteKey: "odango", Facing: FacingLeft, Hatched: true},
			{ID: "odango-2", Name: "Anko", SpriteKey: "odango", Facing: FacingRight, Hatched: true},
			{ID: "odango-3", Name: "Kinako", SpriteKey: "odango", Facing: FacingLeft},
		},
		Interval:   5 * time.Second,
		HatchAfter: 45 * time.Second,
		GrowEvery:  90 * time.Second,
		GrowStep:   0.1,
		MaxScale:   1.6,
	}
}
