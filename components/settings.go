package components

import (
	"github.com/yohamta/donburi"
)

// CompanionSettings are the per-companion knobs a user can change and that
// survive restarts.
type CompanionSettings struct {
	MovementEnabled bool
	MovementSpeed   float64 // clamped to the configured walk speed range on apply
}

// SettingsData stores global settings state (singleton component)
type SettingsData struct {
	SFXVolume float64 // 0.0 - 1.0
	Muted     bool

	// Per-companion overrides keyed by companion ID. Companions absent from
	// the map run with defaults.
	Companions map[string]CompanionSettings
}

// Settings is the component type for persisted settings state
var Settings = donburi.NewComponentType[SettingsData]()
