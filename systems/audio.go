package systems

import (
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/leo110047/ODANGO/assets"
	"github.com/leo110047/ODANGO/components"
	cfg "github.com/leo110047/ODANGO/config"
	"github.com/yohamta/donburi/ecs"
)

// Global audio state - created once and shared across scene rebuilds
var (
	globalAudioContext *audio.Context
	globalChirpLoader  *assets.ChirpLoader
	audioInitOnce      sync.Once
)

// initGlobalAudio initializes the global audio context (called once)
func initGlobalAudio() {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
		globalChirpLoader = assets.NewChirpLoader(globalAudioContext)
	})
}

// PreloadAllSFX synthesizes and decodes every chirp at startup so the first
// click does not stall a frame.
func PreloadAllSFX() {
	initGlobalAudio()
	if err := globalChirpLoader.Preload(); err != nil {
		log.Printf("Warning: Could not preload sfx: %v", err)
	}
}

// UpdateAudio drains the pending SFX queue on the audio singleton.
func UpdateAudio(e *ecs.ECS) {
	initGlobalAudio()

	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	audioData := components.Audio.Get(entry)
	for _, soundID := range audioData.PendingSFX {
		playSFX(soundID, audioData.SFXVolume)
	}
	audioData.PendingSFX = audioData.PendingSFX[:0]
}

// QueueSFX schedules a chirp for the next audio update. Safe before the
// audio singleton exists; the sound is simply dropped.
func QueueSFX(e *ecs.ECS, soundID cfg.SoundID) {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	audioData := components.Audio.Get(entry)
	audioData.PendingSFX = append(audioData.PendingSFX, soundID)
}

// SetSFXVolume applies a settings change to the audio singleton.
func SetSFXVolume(e *ecs.ECS, volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	components.Audio.Get(entry).SFXVolume = volume
}

func playSFX(soundID cfg.SoundID, volume float64) {
	if volume <= 0 {
		return
	}

	player, err := globalChirpLoader.Player(soundID)
	if err != nil {
		log.Printf("Warning: Could not play sfx %d: %v", soundID, err)
		return
	}
	if player == nil {
		return
	}

	player.SetVolume(volume)
	player.Play()
}
