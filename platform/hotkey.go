package platform

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ChordHeld reports whether every key in the chord is currently down.
func ChordHeld(chord []ebiten.Key) bool {
	if len(chord) == 0 {
		return false
	}
	for _, key := range chord {
		if !ebiten.IsKeyPressed(key) {
			return false
		}
	}
	return true
}

// ChordHotkey reports the activation chord via per-frame key polling. There
// is no OS-level grab to fail, so Register only rejects an empty chord; the
// fallible signature is for hosts that do register a global hotkey.
type ChordHotkey struct {
	chord []ebiten.Key
}

func NewChordHotkey(chord []ebiten.Key) *ChordHotkey {
	return &ChordHotkey{chord: chord}
}

func (k *ChordHotkey) Register() error {
	if len(k.chord) == 0 {
		return errors.New("empty activation chord")
	}
	return nil
}

func (k *ChordHotkey) Unregister() {}

func (k *ChordHotkey) Held() bool { return ChordHeld(k.chord) }
