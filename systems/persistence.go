package systems

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

// SavedLayout is the window placement stored on disk, plus each companion's
// last dragged shelf offset keyed by id.
type SavedLayout struct {
	X          int                `json:"x"`
	Y          int                `json:"y"`
	W          int                `json:"width"`
	H          int                `json:"height"`
	Companions map[string]float64 `json:"companions,omitempty"`
}

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	SFXVolume float64            `json:"sfxVolume"`
	Muted     bool               `json:"muted"`
	Movement  map[string]bool    `json:"movement,omitempty"`
	Speeds    map[string]float64 `json:"speeds,omitempty"`
}

// itemStore is the slice of gdata.Manager that persistence goes through;
// tests substitute an in-memory map.
type itemStore interface {
	SaveItem(itemName string, data []byte) error
	LoadItem(itemName string) ([]byte, error)
}

var saveStore itemStore
var storeInitialized bool

// InitPersistence opens the gdata manager for layout and settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "odango",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	saveStore = m
	storeInitialized = true
	return nil
}

// LoadLayout loads the saved window placement from disk
func LoadLayout() (*SavedLayout, error) {
	data, ok := loadItem("layout")
	if !ok {
		return nil, nil
	}

	var layout SavedLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		log.Printf("Warning: Could not parse saved layout: %v", err)
		return nil, err
	}
	return &layout, nil
}

// SaveLayout saves the window placement to disk
func SaveLayout(l *SavedLayout) error {
	return saveItem("layout", l)
}

// LoadSettings loads settings from disk
func LoadSettings() (*SavedSettings, error) {
	data, ok := loadItem("settings")
	if !ok {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	return saveItem("settings", s)
}

func loadItem(name string) ([]byte, bool) {
	if !storeInitialized || saveStore == nil {
		return nil, false
	}

	data, err := saveStore.LoadItem(name)
	if err != nil {
		log.Printf("Warning: Could not load %s: %v", name, err)
		return nil, false
	}
	if len(data) == 0 {
		// Nothing saved yet, use defaults
		return nil, false
	}
	return data, true
}

func saveItem(name string, v interface{}) error {
	if !storeInitialized || saveStore == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Warning: Could not serialize %s: %v", name, err)
		return err
	}

	if err := saveStore.SaveItem(name, data); err != nil {
		log.Printf("Warning: Could not save %s: %v", name, err)
		return err
	}
	return nil
}
