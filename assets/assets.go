package assets

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/leo110047/ODANGO/config"
)

//go:embed all:sprites
var spriteFS embed.FS

// SheetLoader handles loading and caching of companion sprite sheets.
// A sheet that cannot be read or decoded is remembered as missing so the
// renderer falls back to its placeholder without retrying every frame.
type SheetLoader struct {
	cache   map[string]*ebiten.Image
	missing map[string]bool
}

func NewSheetLoader() *SheetLoader {
	return &SheetLoader{
		cache:   make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
	}
}

// LoadSheet returns the sprite sheet for a sprite key and animation state.
// Missing assets return an error exactly once per path; later calls return
// (nil, nil) so callers can degrade silently.
func (l *SheetLoader) LoadSheet(spriteKey string, state config.StateID) (*ebiten.Image, error) {
	path := sheetPath(spriteKey, state)
	if img, ok := l.cache[path]; ok {
		return img, nil
	}
	if l.missing[path] {
		return nil, nil
	}

	imgBytes, err := spriteFS.ReadFile(path)
	if err != nil {
		l.missing[path] = true
		return nil, fmt.Errorf("read sprite sheet %s: %w", path, err)
	}

	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(imgBytes))
	if err != nil {
		l.missing[path] = true
		return nil, fmt.Errorf("decode sprite sheet %s: %w", path, err)
	}

	l.cache[path] = img
	return img, nil
}

func sheetPath(spriteKey string, state config.StateID) string {
	suffix, ok := config.StateToFileName[state]
	if !ok {
		suffix = "idle"
	}
	return fmt.Sprintf("sprites/%s_%s.png", spriteKey, suffix)
}

var sheetLoader = NewSheetLoader()

// GetSheet is the package-level accessor the companion scheduler loads
// sheets through.
func GetSheet(spriteKey string, state config.StateID) (*ebiten.Image, error) {
	return sheetLoader.LoadSheet(spriteKey, state)
}
