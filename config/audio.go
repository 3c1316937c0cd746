package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	SoundClick
	SoundHatch
	SoundModeEnter
	SoundModeExit
)

// ChirpDef describes one synthesized chirp: a short sine sweep
type ChirpDef struct {
	StartHz  float64
	EndHz    float64
	Duration float64 // seconds
	Volume   float64
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate int
	SFXVolume  float64
	Chirps     map[SoundID]ChirpDef
}

var Audio AudioConfig

func init() {
	Audio = AudioConfig{
		SampleRate: 44100,
		SFXVolume:  0.6,
		Chirps: map[SoundID]ChirpDef{
			SoundClick:     {StartHz: 880, EndHz: 1320, Duration: 0.08, Volume: 0.5},
			SoundHatch:     {StartHz: 440, EndHz: 1760, Duration: 0.30, Volume: 0.7},
			SoundModeEnter: {StartHz: 523, EndHz: 784, Duration: 0.12, Volume: 0.4},
			SoundModeExit:  {StartHz: 784, EndHz: 523, Duration: 0.12, Volume: 0.4},
		},
	}
}
