package interaction

import (
	"log"
	"math"
	"time"

	"github.com/leo110047/ODANGO/config"
	"github.com/leo110047/ODANGO/stage"
)

// Mode is the surface interactivity state.
type Mode int

const (
	PassThrough Mode = iota
	Interactive
)

// Gesture classifies the active pointer interaction. At most one gesture is
// active at a time.
type Gesture int

const (
	None Gesture = iota
	DraggingWindow
	ResizingWindow
	DraggingEntity
)

// Edge is the window side a resize gesture grabs.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
)

// Geometry is the window placement in logical units.
type Geometry struct {
	X, Y, W, H int
}

// Gateway abstracts the host window: placement, sizing and pointer
// pass-through. Calls cross an async host boundary and are fallible;
// failures are logged and never propagate.
type Gateway interface {
	Position() (x, y int, err error)
	SetPosition(x, y int) error
	Size() (w, h int, err error)
	SetSize(w, h int) error
	SetMousePassthrough(enabled bool) error
}

// Pointer reports the cursor in surface-local coordinates plus whether the
// window-drag modifier is held. Polled once per update.
type Pointer interface {
	State() (x, y float64, pressed bool)
	ModifierHeld() bool
}

// Hotkey reports the held state of the activation chord. Register is the
// fallible platform-side registration; Held is polled every update.
type Hotkey interface {
	Register() error
	Unregister()
	Held() bool
}

// Bridge carries the only two calls allowed to reach the animation side.
type Bridge interface {
	OnWindowWidthChanged(width float64)
	OnEntityRepositioned(id string)
}

// anchor captures pointer and window/entity coordinates at gesture start.
// Deltas are computed against it; it is discarded when the gesture ends.
type anchor struct {
	pointerX float64 // absolute coordinates, so window moves do not
	pointerY float64 // perturb the delta
	geom     Geometry
	entityID string
	entityX  float64
	handle   *stage.Handle
}

// Controller owns the mode state machine and the pointer-gesture state
// machine. It is the single authority for window geometry; the animation
// side hears about width changes and entity repositions only through the
// Bridge.
type Controller struct {
	gateway Gateway
	hotkey  Hotkey
	pointer Pointer
	stage   *stage.Stage
	bridge  Bridge
	cfg     config.InteractionConfig
	now     func() time.Time

	// Optional callbacks, wired by the scene.
	OnModeChanged    func(mode Mode)
	OnLayoutSaved    func(g Geometry)
	OnCompanionSaved func(id string, x float64)
	OnCompanionClick func(id string)

	mode    Mode
	gesture Gesture
	edge    Edge
	anchor  anchor

	hotkeyUsable bool
	prevHeld     bool
	holdDeadline *time.Time

	prevPressed bool
	dragMoved   bool

	geom      Geometry
	flushed   Geometry
	geomDirty bool
}

func New(gateway Gateway, hotkey Hotkey, pointer Pointer, st *stage.Stage, bridge Bridge, cfg config.InteractionConfig, now func() time.Time) *Controller {
	return &Controller{
		gateway: gateway,
		hotkey:  hotkey,
		pointer: pointer,
		stage:   st,
		bridge:  bridge,
		cfg:     cfg,
		now:     now,
	}
}

// Start registers the activation hotkey. Registration failure is not fatal:
// the overlay stays in pass-through mode and interactive mode is simply
// unreachable.
func (c *Controller) Start() {
	if err := c.hotkey.Register(); err != nil {
		log.Printf("Warning: hotkey registration failed, interactive mode unavailable: %v", err)
		return
	}
	c.hotkeyUsable = true
	c.refreshGeometry()
}

func (c *Controller) Stop() {
	if c.hotkeyUsable {
		c.hotkey.Unregister()
		c.hotkeyUsable = false
	}
	if c.mode == Interactive {
		c.leaveInteractive()
	}
}

func (c *Controller) Mode() Mode { return c.mode }

// Geometry returns the pending window geometry, which leads the host by at
// most one flush.
func (c *Controller) Geometry() Geometry { return c.geom }

func (c *Controller) ActiveGesture() Gesture { return c.gesture }

// Deactivate leaves interactive mode immediately (the toolbar's hide
// button). No-op while passing through.
func (c *Controller) Deactivate() {
	if c.mode == Interactive {
		c.leaveInteractive()
	}
}

// Update runs one poll cycle: hold-timer processing, then pointer edges and
// gesture moves, then a single coalesced geometry flush.
func (c *Controller) Update() {
	now := c.now()
	c.processHold(now)
	if c.mode == Interactive {
		c.processPointer()
	}
	c.flushGeometry()
}

func (c *Controller) processHold(now time.Time) {
	if !c.hotkeyUsable {
		return
	}
	held := c.hotkey.Held()
	pressedEdge := held && !c.prevHeld
	c.prevHeld = held

	switch {
	case pressedEdge:
		if c.holdDeadline != nil {
			// A hold is already pending; repeat presses are ignored.
			return
		}
		deadline := now.Add(c.cfg.HoldDuration)
		c.holdDeadline = &deadline

	case !held:
		// Released before the deadline: no mode change.
		c.holdDeadline = nil

	case c.holdDeadline != nil && !now.Before(*c.holdDeadline):
		c.holdDeadline = nil
		c.toggleMode()
	}
}

func (c *Controller) toggleMode() {
	if c.mode == PassThrough {
		c.enterInteractive()
	} else {
		c.leaveInteractive()
	}
}

func (c *Controller) enterInteractive() {
	c.mode = Interactive
	c.gesture = None
	c.edge = EdgeNone
	if err := c.gateway.SetMousePassthrough(false); err != nil {
		log.Printf("Warning: failed to disable mouse passthrough: %v", err)
	}
	c.refreshGeometry()

	// Arm pointer edge detection from the current button state so a press
	// that predates the mode change is not taken as a pointer-down.
	_, _, pressed := c.pointer.State()
	c.prevPressed = pressed

	if c.OnModeChanged != nil {
		c.OnModeChanged(c.mode)
	}
}

func (c *Controller) leaveInteractive() {
	c.mode = PassThrough
	c.cancelGesture()
	if err := c.gateway.SetMousePassthrough(true); err != nil {
		log.Printf("Warning: failed to re-enable mouse passthrough: %v", err)
	}
	if c.OnModeChanged != nil {
		c.OnModeChanged(c.mode)
	}
}

// cancelGesture force-clears any in-flight gesture without committing it.
// A dragged companion snaps back to its committed position and nothing is
// persisted; an already staged geometry write may still flush but cannot
// resurrect gesture state.
func (c *Controller) cancelGesture() {
	if c.gesture == DraggingEntity && c.anchor.handle != nil {
		c.anchor.handle.SetX(c.anchor.entityX)
		c.anchor.handle.SetHeld(false)
	}
	c.gesture = None
	c.edge = EdgeNone
	c.anchor = anchor{}
	c.dragMoved = false
}

func (c *Controller) processPointer() {
	lx, ly, pressed := c.pointer.State()
	pressEdge := pressed && !c.prevPressed
	releaseEdge := !pressed && c.prevPressed
	c.prevPressed = pressed

	// Surface-local to absolute, against the pending geometry: the window
	// itself moves under the cursor mid-drag.
	ax := float64(c.geom.X) + lx
	ay := float64(c.geom.Y) + ly

	switch {
	case pressEdge:
		c.beginGesture(lx, ly, ax, ay)
	case releaseEdge:
		c.endGesture()
	case pressed && c.gesture != None:
		c.moveGesture(ax, ay)
	}
}

// beginGesture classifies a pointer-down. Priority order: resize affordance,
// then window-drag modifier, then a companion handle; otherwise no gesture.
func (c *Controller) beginGesture(lx, ly, ax, ay float64) {
	c.dragMoved = false
	c.anchor = anchor{pointerX: ax, pointerY: ay, geom: c.geom}

	if edge := c.edgeAt(lx); edge != EdgeNone {
		c.gesture = ResizingWindow
		c.edge = edge
		return
	}

	if c.pointer.ModifierHeld() {
		c.gesture = DraggingWindow
		return
	}

	if h, ok := c.stage.HandleAt(lx, ly); ok {
		c.gesture = DraggingEntity
		c.anchor.handle = h
		c.anchor.entityID = h.ID()
		c.anchor.entityX = h.X()
	}
}

func (c *Controller) moveGesture(ax, ay float64) {
	dx := ax - c.anchor.pointerX
	dy := ay - c.anchor.pointerY

	switch c.gesture {
	case DraggingWindow:
		y := c.anchor.geom.Y + int(dy)
		if y < 0 {
			y = 0
		}
		c.setGeometry(Geometry{
			X: c.anchor.geom.X + int(dx),
			Y: y,
			W: c.anchor.geom.W,
			H: c.anchor.geom.H,
		})

	case ResizingWindow:
		c.resizeBy(dx)

	case DraggingEntity:
		if !c.dragMoved {
			if math.Hypot(dx, dy) < c.cfg.DragDeadZone {
				return
			}
			c.dragMoved = true
			c.anchor.handle.SetHeld(true)
		}
		c.anchor.handle.SetX(c.clampEntityX(c.anchor.entityX + dx))
	}
}

// resizeBy applies a horizontal pointer delta to the anchored geometry.
// The left edge keeps the right edge fixed by shifting x with the applied
// width change, so hitting the width floor pins x instead of overshooting.
// Geometry and the shared container width update together.
func (c *Controller) resizeBy(dx float64) {
	g := c.anchor.geom
	switch c.edge {
	case EdgeRight:
		g.W = c.anchor.geom.W + int(dx)
	case EdgeLeft:
		g.W = c.anchor.geom.W - int(dx)
	default:
		return
	}
	if g.W < c.cfg.MinWindowWidth {
		g.W = c.cfg.MinWindowWidth
	}
	if c.edge == EdgeLeft {
		g.X = c.anchor.geom.X + (c.anchor.geom.W - g.W)
	}

	c.setGeometry(g)
	c.bridge.OnWindowWidthChanged(float64(g.W))
}

func (c *Controller) endGesture() {
	g := c.gesture
	c.gesture = None
	c.edge = EdgeNone

	switch g {
	case DraggingEntity:
		h := c.anchor.handle
		id := c.anchor.entityID
		moved := c.dragMoved
		if h != nil {
			h.SetHeld(false)
		}
		if !moved {
			// Down and up inside the dead-zone: a click, not a drag.
			if c.OnCompanionClick != nil {
				c.OnCompanionClick(id)
			}
			break
		}
		c.bridge.OnEntityRepositioned(id)
		if c.OnCompanionSaved != nil && h != nil {
			// Read back after the bridge call so the persisted x is the
			// committed, clamped one.
			c.OnCompanionSaved(id, h.X())
		}

	case DraggingWindow, ResizingWindow:
		if c.OnLayoutSaved != nil {
			c.OnLayoutSaved(c.geom)
		}
	}

	c.anchor = anchor{}
	c.dragMoved = false
}

// edgeAt reports which resize strip the surface-local x falls in.
func (c *Controller) edgeAt(lx float64) Edge {
	if lx <= c.cfg.EdgeWidth {
		return EdgeLeft
	}
	if lx >= float64(c.geom.W)-c.cfg.EdgeWidth {
		return EdgeRight
	}
	return EdgeNone
}

func (c *Controller) clampEntityX(x float64) float64 {
	lo := config.Walk.Margin
	hi := c.stage.Width() - c.anchor.handle.Width() - lo
	if hi < lo {
		hi = lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// setGeometry stages a pending write; flushGeometry performs at most one
// host update per tick, so bursts of pointer moves cannot interleave stale
// writes.
func (c *Controller) setGeometry(g Geometry) {
	if g == c.geom {
		return
	}
	c.geom = g
	c.geomDirty = true
}

func (c *Controller) flushGeometry() {
	if !c.geomDirty {
		return
	}
	c.geomDirty = false

	if c.geom.X != c.flushed.X || c.geom.Y != c.flushed.Y {
		if err := c.gateway.SetPosition(c.geom.X, c.geom.Y); err != nil {
			log.Printf("Warning: window move failed: %v", err)
		}
	}
	if c.geom.W != c.flushed.W || c.geom.H != c.flushed.H {
		if err := c.gateway.SetSize(c.geom.W, c.geom.H); err != nil {
			log.Printf("Warning: window resize failed: %v", err)
		}
	}
	c.flushed = c.geom
}

// refreshGeometry resyncs the pending geometry from the host. On failure
// the last known values stand and gestures work from those.
func (c *Controller) refreshGeometry() {
	x, y, err := c.gateway.Position()
	if err != nil {
		log.Printf("Warning: window position unavailable: %v", err)
		return
	}
	w, h, err := c.gateway.Size()
	if err != nil {
		log.Printf("Warning: window size unavailable: %v", err)
		return
	}
	c.geom = Geometry{X: x, Y: y, W: w, H: h}
	c.flushed = c.geom
	c.geomDirty = false
}
