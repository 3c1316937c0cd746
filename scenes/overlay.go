package scenes

import (
	"math/rand"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leo110047/ODANGO/archetypes"
	"github.com/leo110047/ODANGO/assets"
	"github.com/leo110047/ODANGO/companion"
	"github.com/leo110047/ODANGO/components"
	cfg "github.com/leo110047/ODANGO/config"
	"github.com/leo110047/ODANGO/feed"
	"github.com/leo110047/ODANGO/interaction"
	"github.com/leo110047/ODANGO/platform"
	"github.com/leo110047/ODANGO/stage"
	"github.com/leo110047/ODANGO/systems"
	"github.com/leo110047/ODANGO/tags"
	"github.com/leo110047/ODANGO/ui"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// OverlayScene is the only scene: the shelf stage, the walk scheduler, the
// interaction controller and the roster feed wired together over one ecs
// world. The controller talks to the scheduler exclusively through the
// two-call bridge; everything else goes through callbacks wired here.
type OverlayScene struct {
	ecs        *ecs.ECS
	stage      *stage.Stage
	scheduler  *companion.Scheduler
	controller *interaction.Controller
	source     *feed.Source
	toolbar    *ui.Toolbar
	once       sync.Once

	savedOffsets map[string]float64 // from the stored layout, applied once
	offsets      map[string]float64 // live dragged positions, persisted with the layout
	reconciled   bool
	quit         bool
}

func NewOverlayScene() *OverlayScene {
	return &OverlayScene{
		offsets: map[string]float64{},
	}
}

func (s *OverlayScene) Update() {
	s.once.Do(s.configure)
	s.ecs.Update()

	if s.controller.Mode() == interaction.Interactive {
		s.toolbar.Update()
		if platform.ChordHeld(cfg.Input.QuitChord) {
			s.quit = true
		}
	}
}

// ShouldQuit reports whether the quit chord was pressed while interactive.
func (s *OverlayScene) ShouldQuit() bool { return s.quit }

func (s *OverlayScene) Draw(screen *ebiten.Image) {
	// The window is transparent; undrawn pixels must stay clear.
	screen.Clear()

	if s.ecs == nil {
		return
	}
	s.ecs.Draw(screen)

	if s.controller.Mode() == interaction.Interactive {
		s.toolbar.Draw(screen)
	}
}

// Dispose stops the feed, the hotkey and the scheduler. Safe to call even if
// the scene never ran an update.
func (s *OverlayScene) Dispose() {
	if s.ecs == nil {
		return
	}
	s.source.Stop()
	s.controller.Stop()
	s.scheduler.Dispose()
}

func (s *OverlayScene) configure() {
	systems.PreloadAllSFX()

	e := ecs.NewECS(donburi.NewWorld())
	s.ecs = e

	// The window geometry was applied before the loop started; the stage
	// takes the real width so clamps are right from the first tick.
	width, _ := ebiten.WindowSize()
	if width <= 0 {
		width = cfg.C.Width
	}
	s.stage = stage.New(width, cfg.C.Height, cfg.Companion.FrameWidth, cfg.Companion.FrameHeight)

	settings := s.spawnSettings(e)
	audioEntry := archetypes.Audio.Spawn(e)
	audioData := components.Audio.Get(audioEntry)
	audioData.SFXVolume = settings.SFXVolume
	if settings.Muted {
		audioData.SFXVolume = 0
	}

	if layout, err := systems.LoadLayout(); err == nil && layout != nil {
		s.savedOffsets = layout.Companions
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	s.scheduler = companion.New(e, s.stage, cfg.Walk, assets.GetSheet, s.settingsFor(settings), rng, time.Now)
	s.scheduler.OnHatch = func(id string) {
		systems.QueueSFX(e, cfg.SoundHatch)
		systems.TriggerReaction(e, id)
	}

	s.source = feed.NewSource()

	s.controller = interaction.New(
		platform.NewWindowGateway(),
		platform.NewChordHotkey(cfg.Input.ToggleChord),
		platform.NewMousePointer(),
		s.stage,
		s.scheduler,
		cfg.Interaction,
		time.Now,
	)
	s.controller.OnModeChanged = func(mode interaction.Mode) {
		interactive := mode == interaction.Interactive
		systems.SetAffordancesVisible(interactive)
		if interactive {
			systems.QueueSFX(e, cfg.SoundModeEnter)
		} else {
			systems.QueueSFX(e, cfg.SoundModeExit)
		}
	}
	s.controller.OnLayoutSaved = func(g interaction.Geometry) {
		s.persistLayout(g)
	}
	s.controller.OnCompanionSaved = func(id string, x float64) {
		s.offsets[id] = x
		s.persistLayout(s.controller.Geometry())
	}
	s.controller.OnCompanionClick = func(id string) {
		systems.QueueSFX(e, cfg.SoundClick)
		systems.TriggerReaction(e, id)
	}
	s.controller.Start()

	s.toolbar = ui.NewToolbar(
		func() { s.controller.Deactivate() },
		func() { s.toggleMute() },
	)
	s.toolbar.SetMuted(settings.Muted)

	e.AddSystem(systems.UpdateAudio)
	e.AddSystem(s.updateFeed)
	// Gestures write handles before the walk ticks read them.
	e.AddSystem(s.updateController)
	e.AddSystem(s.scheduler.Update)
	e.AddSystem(systems.UpdateReactions)
	e.AddSystem(systems.UpdateAffordances)

	e.AddRenderer(cfg.Default, systems.DrawCompanions)
	e.AddRenderer(cfg.Overlay, systems.DrawAffordances)
	e.AddRenderer(cfg.Overlay, systems.DrawLabels)
}

// spawnSettings creates the settings singleton, seeded from disk when a
// saved copy exists.
func (s *OverlayScene) spawnSettings(e *ecs.ECS) *components.SettingsData {
	entry := archetypes.Settings.Spawn(e)
	settings := components.Settings.Get(entry)
	settings.SFXVolume = cfg.Audio.SFXVolume
	settings.Companions = map[string]components.CompanionSettings{}

	saved, err := systems.LoadSettings()
	if err != nil || saved == nil {
		return settings
	}

	settings.SFXVolume = saved.SFXVolume
	settings.Muted = saved.Muted
	for id, enabled := range saved.Movement {
		cs := settings.Companions[id]
		cs.MovementEnabled = enabled
		if cs.MovementSpeed == 0 {
			cs.MovementSpeed = cfg.Walk.BaseSpeed
		}
		settings.Companions[id] = cs
	}
	for id, speed := range saved.Speeds {
		cs, ok := settings.Companions[id]
		if !ok {
			cs.MovementEnabled = true
		}
		cs.MovementSpeed = speed
		settings.Companions[id] = cs
	}
	return settings
}

// settingsFor adapts the settings singleton to the scheduler's lookup.
func (s *OverlayScene) settingsFor(settings *components.SettingsData) companion.SettingsFunc {
	return func(id string) companion.Override {
		o := companion.Override{MovementEnabled: true, Speed: cfg.Walk.BaseSpeed}
		if cs, ok := settings.Companions[id]; ok {
			o.MovementEnabled = cs.MovementEnabled
			o.Speed = cs.MovementSpeed
		}
		return o
	}
}

// updateFeed drains the snapshot channel into the scheduler.
func (s *OverlayScene) updateFeed(e *ecs.ECS) {
	descs, ok := s.source.Poll()
	if !ok {
		return
	}
	s.scheduler.Reconcile(descs)

	// First snapshot: put companions back where the user last dragged them.
	if !s.reconciled {
		s.reconciled = true
		s.applySavedOffsets()
	}
}

func (s *OverlayScene) updateController(e *ecs.ECS) {
	s.controller.Update()
	if s.controller.Mode() == interaction.Interactive {
		g := s.controller.Geometry()
		s.toolbar.SetGeometry(g.X, g.Y, g.W, g.H)
	}
}

// applySavedOffsets replays stored drag positions through the same two-phase
// path a live drag uses, so clamping and retargeting apply.
func (s *OverlayScene) applySavedOffsets() {
	if len(s.savedOffsets) == 0 {
		return
	}
	tags.Companion.Each(s.ecs.World, func(entry *donburi.Entry) {
		id := components.Companion.Get(entry).ID
		x, ok := s.savedOffsets[id]
		if !ok {
			return
		}
		handle := components.Handle.Get(entry).Handle
		if handle == nil {
			return
		}
		handle.SetX(x)
		s.scheduler.NotifyRepositioned(id)
		s.offsets[id] = handle.X()
	})
	s.savedOffsets = nil
}

func (s *OverlayScene) persistLayout(g interaction.Geometry) {
	_ = systems.SaveLayout(&systems.SavedLayout{
		X: g.X, Y: g.Y, W: g.W, H: g.H,
		Companions: s.offsets,
	})
}

func (s *OverlayScene) toggleMute() {
	entry, ok := components.Settings.First(s.ecs.World)
	if !ok {
		return
	}
	settings := components.Settings.Get(entry)
	settings.Muted = !settings.Muted

	volume := settings.SFXVolume
	if settings.Muted {
		volume = 0
	}
	systems.SetSFXVolume(s.ecs, volume)
	s.toolbar.SetMuted(settings.Muted)
	s.persistSettings(settings)
}

func (s *OverlayScene) persistSettings(settings *components.SettingsData) {
	saved := &systems.SavedSettings{
		SFXVolume: settings.SFXVolume,
		Muted:     settings.Muted,
	}
	if len(settings.Companions) > 0 {
		saved.Movement = map[string]bool{}
		saved.Speeds = map[string]float64{}
		for id, cs := range settings.Companions {
			saved.Movement[id] = cs.MovementEnabled
			saved.Speeds[id] = cs.MovementSpeed
		}
	}
	_ = systems.SaveSettings(saved)
}
