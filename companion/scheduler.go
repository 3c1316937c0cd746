package companion

import (
	"image"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leo110047/ODANGO/archetypes"
	"github.com/leo110047/ODANGO/assets/animations"
	"github.com/leo110047/ODANGO/components"
	"github.com/leo110047/ODANGO/config"
	"github.com/leo110047/ODANGO/feed"
	"github.com/leo110047/ODANGO/stage"
	"github.com/leo110047/ODANGO/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Override is a per-companion movement setting, queried at spawn and
// applicable at any time.
type Override struct {
	MovementEnabled bool
	Speed           float64
}

// SettingsFunc resolves the persisted override for a companion id. It must
// return defaults for unknown ids.
type SettingsFunc func(id string) Override

// SheetSource resolves a sprite sheet for a sprite key and animation state.
// A (nil, nil) return means "no sheet"; the renderer then degrades to its
// placeholder fill.
type SheetSource func(spriteKey string, state config.StateID) (*ebiten.Image, error)

// Scheduler owns every companion entity: the registry synchronized against
// feed snapshots and the per-tick random-walk update. Nothing else mutates
// companion walk state or stage handles; the interaction layer reaches it
// only through SetContainerWidth and NotifyRepositioned.
type Scheduler struct {
	ecs      *ecs.ECS
	stage    *stage.Stage
	walk     config.WalkConfig
	sheets   SheetSource
	settings SettingsFunc
	rng      *rand.Rand
	now      func() time.Time

	entries map[string]*donburi.Entry

	// OnHatch fires when a reconcile moves a companion out of the egg
	// stage. The scene wires it to audio and reaction feedback.
	OnHatch func(id string)
}

func New(e *ecs.ECS, st *stage.Stage, walk config.WalkConfig, sheets SheetSource, settings SettingsFunc, rng *rand.Rand, now func() time.Time) *Scheduler {
	return &Scheduler{
		ecs:      e,
		stage:    st,
		walk:     walk,
		sheets:   sheets,
		settings: settings,
		rng:      rng,
		now:      now,
		entries:  make(map[string]*donburi.Entry),
	}
}

// Update is the ecs system adapter; the overlay scene registers it.
func (s *Scheduler) Update(_ *ecs.ECS) {
	s.Tick()
}

// Reconcile synchronizes the registry against an authoritative snapshot.
// New ids spawn, existing ids refresh in place, absent ids tear down.
// Running the same snapshot twice is a no-op for the id set and every
// mutable attribute.
func (s *Scheduler) Reconcile(snapshot []feed.Descriptor) {
	seen := make(map[string]bool, len(snapshot))
	for _, d := range snapshot {
		seen[d.ID] = true
		if entry, ok := s.entries[d.ID]; ok {
			s.refresh(entry, d)
		} else {
			s.spawn(d)
		}
	}

	for id, entry := range s.entries {
		if !seen[id] {
			s.despawn(id, entry)
		}
	}
}

// SetContainerWidth records the new shared bound, clamps every companion
// back into the usable range, and retargets the walking ones that moved.
func (s *Scheduler) SetContainerWidth(width float64) {
	s.stage.SetWidth(width)

	for _, entry := range s.entries {
		companion := components.Companion.Get(entry)
		walk := components.Walk.Get(entry)
		handle := components.Handle.Get(entry)

		clamped := s.clampPos(walk.Position, handle.Width())
		if clamped == walk.Position {
			continue
		}
		walk.Position = clamped
		handle.SetX(clamped)

		if companion.Stage != config.StageEgg && !walk.Resting {
			s.retarget(entry)
		}
	}
}

// Apply overrides one companion's movement settings. Disabling movement
// freezes position advancement only; resting and egg animation state is
// untouched.
func (s *Scheduler) Apply(id string, o Override) {
	entry, ok := s.entries[id]
	if !ok {
		return
	}
	walk := components.Walk.Get(entry)
	walk.MovementEnabled = o.MovementEnabled
	walk.BaseSpeed = s.clampSpeed(o.Speed)
}

// NotifyRepositioned resynchronizes a companion after an outside actor
// moved its stage handle. The committed position is read back from the
// handle; unless the companion is an egg or resting, a fresh target keeps
// it from snapping back toward the old one.
func (s *Scheduler) NotifyRepositioned(id string) {
	entry, ok := s.entries[id]
	if !ok {
		return
	}
	companion := components.Companion.Get(entry)
	walk := components.Walk.Get(entry)
	handle := components.Handle.Get(entry)

	pos := s.clampPos(handle.X(), handle.Width())
	walk.Position = pos
	handle.SetX(pos)

	if companion.Stage == config.StageEgg || walk.Resting {
		return
	}
	s.retarget(entry)
}

// OnWindowWidthChanged and OnEntityRepositioned make the Scheduler the
// bridge the interaction layer talks to.
func (s *Scheduler) OnWindowWidthChanged(width float64) {
	s.SetContainerWidth(width)
}

func (s *Scheduler) OnEntityRepositioned(id string) {
	s.NotifyRepositioned(id)
}

// Tick advances every companion one frame. Eggs and held companions play
// their animation in place; everything else runs the walk.
func (s *Scheduler) Tick() {
	now := s.now()
	tags.Companion.Each(s.ecs.World, func(entry *donburi.Entry) {
		s.tickEntry(entry, now)
	})
}

// Dispose tears down every companion: handles released, entities removed.
func (s *Scheduler) Dispose() {
	for id, entry := range s.entries {
		s.despawn(id, entry)
	}
}

func (s *Scheduler) tickEntry(entry *donburi.Entry, now time.Time) {
	companion := components.Companion.Get(entry)
	walk := components.Walk.Get(entry)
	handle := components.Handle.Get(entry)
	animData := components.Animation.Get(entry)

	switch {
	case companion.Stage == config.StageEgg:
		animData.SetAnimation(config.Egg)

	case handle.Held():
		animData.SetAnimation(config.Idle)

	case walk.Resting:
		if !now.Before(walk.RestUntil) {
			walk.Resting = false
			s.retarget(entry)
		}
		animData.SetAnimation(config.Idle)

	case !walk.MovementEnabled:
		animData.SetAnimation(config.Idle)

	default:
		s.advance(entry, walk, handle)
		animData.SetAnimation(config.Walking)
	}

	if animData.CurrentAnimation != nil {
		animData.CurrentAnimation.Update()
	}
}

// advance moves one walking companion a single step and handles arrival
// and edge contact.
func (s *Scheduler) advance(entry *donburi.Entry, walk *components.WalkData, handle *components.HandleData) {
	eff := walk.EffectiveSpeed()
	walk.Position += eff * walk.Direction.Sign()

	lo, hi := s.usable(handle.Width())
	hitEdge := false
	if walk.Position <= lo {
		walk.Position = lo
		hitEdge = walk.Direction == config.Backward
	} else if walk.Position >= hi {
		walk.Position = hi
		hitEdge = walk.Direction == config.Forward
	}
	handle.SetX(walk.Position)

	if hitEdge {
		s.beginRest(walk)
		s.retarget(entry)
		return
	}
	if math.Abs(walk.Target-walk.Position) <= s.walk.StopWithinSpeeds*eff {
		s.beginRest(walk)
	}
}

func (s *Scheduler) spawn(d feed.Descriptor) {
	entry := archetypes.Companion.Spawn(s.ecs)

	scale := d.Scale
	if scale <= 0 {
		scale = config.Companion.DefaultScale
	}

	handle := s.stage.AddHandle(d.ID, s.walk.Margin, scale)
	lo, hi := s.usable(handle.Width())
	pos := lo
	if hi > lo {
		pos = lo + s.rng.Float64()*(hi-lo)
	}
	handle.SetX(pos)
	components.Handle.SetValue(entry, components.HandleData{Handle: handle})

	components.Companion.SetValue(entry, components.CompanionData{
		ID:            d.ID,
		Name:          d.Name,
		SpriteKey:     d.SpriteKey,
		Stage:         d.Stage,
		DefaultFacing: d.Facing,
		ScaleFactor:   scale,
	})

	o := s.overrideFor(d.ID)
	components.Walk.SetValue(entry, components.WalkData{
		Position:        pos,
		Target:          pos,
		SpeedMultiplier: s.walk.VarianceMin + s.rng.Float64()*(s.walk.VarianceMax-s.walk.VarianceMin),
		BaseSpeed:       s.clampSpeed(o.Speed),
		MovementEnabled: o.MovementEnabled,
	})

	components.Animation.Set(entry, s.buildAnimations(d.SpriteKey))
	components.Reaction.SetValue(entry, components.ReactionData{Scale: 1})

	s.entries[d.ID] = entry

	if d.Stage != config.StageEgg {
		s.retarget(entry)
	}
}

func (s *Scheduler) refresh(entry *donburi.Entry, d feed.Descriptor) {
	companion := components.Companion.Get(entry)
	walk := components.Walk.Get(entry)
	handle := components.Handle.Get(entry)

	wasEgg := companion.Stage == config.StageEgg

	if d.SpriteKey != companion.SpriteKey {
		companion.SpriteKey = d.SpriteKey
		components.Animation.Set(entry, s.buildAnimations(d.SpriteKey))
	}
	companion.Name = d.Name
	companion.DefaultFacing = d.Facing
	companion.Stage = d.Stage

	scale := d.Scale
	if scale <= 0 {
		scale = config.Companion.DefaultScale
	}
	if scale != companion.ScaleFactor {
		companion.ScaleFactor = scale
		handle.SetScale(scale)
		// The wider handle can push the usable range past the current
		// position.
		walk.Position = s.clampPos(walk.Position, handle.Width())
		handle.SetX(walk.Position)
	}

	o := s.overrideFor(d.ID)
	walk.BaseSpeed = s.clampSpeed(o.Speed)
	walk.MovementEnabled = o.MovementEnabled

	if wasEgg && d.Stage != config.StageEgg {
		// Hatched: wake up and head somewhere.
		walk.Resting = false
		s.retarget(entry)
		if s.OnHatch != nil {
			s.OnHatch(d.ID)
		}
		return
	}

	mirror := companion.Stage != config.StageEgg && mirrored(companion.DefaultFacing, walk.Direction)
	handle.SetMirrored(mirror)
}

func (s *Scheduler) despawn(id string, entry *donburi.Entry) {
	handle := components.Handle.Get(entry)
	s.stage.Remove(handle.Handle)
	s.ecs.World.Remove(entry.Entity())
	delete(s.entries, id)
}

// retarget draws a new destination, derives the heading from its sign and
// recomputes the sprite orientation.
func (s *Scheduler) retarget(entry *donburi.Entry) {
	companion := components.Companion.Get(entry)
	walk := components.Walk.Get(entry)
	handle := components.Handle.Get(entry)

	walk.Target = s.pickTarget(walk.Position, handle.Width())
	if walk.Target >= walk.Position {
		walk.Direction = config.Forward
	} else {
		walk.Direction = config.Backward
	}
	handle.SetMirrored(mirrored(companion.DefaultFacing, walk.Direction))
}

// pickTarget draws uniformly inside the usable range. Draws close to the
// current position are rejected only while the span is wide enough that a
// distant draw exists, so selection terminates on narrow shelves.
func (s *Scheduler) pickTarget(pos, handleWidth float64) float64 {
	lo, hi := s.usable(handleWidth)
	span := hi - lo
	if span <= 0 {
		return lo
	}
	t := lo + s.rng.Float64()*span
	for span > s.walk.NarrowSpan && math.Abs(t-pos) < s.walk.MinTargetDist {
		t = lo + s.rng.Float64()*span
	}
	return t
}

func (s *Scheduler) beginRest(walk *components.WalkData) {
	walk.Resting = true
	walk.RestUntil = s.now().Add(s.restDuration())
}

// restDuration draws uniformly from [RestMin, RestMax).
func (s *Scheduler) restDuration() time.Duration {
	span := s.walk.RestMax - s.walk.RestMin
	if span <= 0 {
		return s.walk.RestMin
	}
	return s.walk.RestMin + time.Duration(s.rng.Int63n(int64(span)))
}

// usable returns the position clamp range for a handle of the given width.
// A shelf too narrow for the margins collapses the range to a point.
func (s *Scheduler) usable(handleWidth float64) (lo, hi float64) {
	lo = s.walk.Margin
	hi = s.stage.Width() - handleWidth - s.walk.Margin
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (s *Scheduler) clampPos(x, handleWidth float64) float64 {
	lo, hi := s.usable(handleWidth)
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func (s *Scheduler) clampSpeed(v float64) float64 {
	if v < s.walk.MinSpeed {
		return s.walk.MinSpeed
	}
	if v > s.walk.MaxSpeed {
		return s.walk.MaxSpeed
	}
	return v
}

func (s *Scheduler) overrideFor(id string) Override {
	if s.settings == nil {
		return Override{MovementEnabled: true, Speed: s.walk.BaseSpeed}
	}
	return s.settings(id)
}

// mirrored reports whether the sprite must flip: the sheet's intrinsic
// facing disagrees with the walk heading.
func mirrored(facing config.FacingID, dir config.DirectionID) bool {
	if facing == config.FacingLeft {
		return dir == config.Forward
	}
	return dir == config.Backward
}

// buildAnimations assembles the animation component for a sprite key.
// Sheets that fail to load leave nil entries and the companion still moves;
// the renderer shows its placeholder fill instead.
func (s *Scheduler) buildAnimations(spriteKey string) *components.AnimationData {
	defs := config.AnimationsFor(spriteKey)

	animData := &components.AnimationData{
		SpriteSheets: make(map[config.StateID]*ebiten.Image),
		Animations:   make(map[config.StateID]*animations.Animation),
		CachedFrames: make(map[config.StateID]map[int]*ebiten.Image),
		FrameWidth:   config.Companion.FrameWidth,
		FrameHeight:  config.Companion.FrameHeight,
		CurrentSheet: config.StateNone,
	}

	for state, def := range defs {
		var sheet *ebiten.Image
		if s.sheets != nil {
			var err error
			sheet, err = s.sheets(spriteKey, state)
			if err != nil {
				log.Printf("Warning: companion sprite unavailable: %v", err)
			}
		}
		animData.SpriteSheets[state] = sheet
		animData.Animations[state] = animations.NewAnimation(def.First, def.Last, def.Step, def.Speed)

		if sheet == nil {
			continue
		}

		// Pre-calculate frames
		frames := make(map[int]*ebiten.Image)
		step := def.Step
		if step <= 0 {
			step = 1
		}
		for sheetIndex := def.First; sheetIndex <= def.Last; sheetIndex += step {
			sx := sheetIndex * animData.FrameWidth
			srcRect := image.Rect(sx, 0, sx+animData.FrameWidth, animData.FrameHeight)
			frames[sheetIndex] = sheet.SubImage(srcRect).(*ebiten.Image)
		}
		animData.CachedFrames[state] = frames
	}

	return animData
}
