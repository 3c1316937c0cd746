package interaction

import (
	"errors"
	"testing"
	"time"

	"github.com/leo110047/ODANGO/config"
	"github.com/leo110047/ODANGO/stage"
)

type fakeGateway struct {
	x, y, w, h  int
	passthrough bool

	posErr      error
	sizeErr     error
	setPosErr   error
	setSizeErr  error
	setPosCalls int
	setSizeCall int
}

func (g *fakeGateway) Position() (int, int, error) { return g.x, g.y, g.posErr }

func (g *fakeGateway) SetPosition(x, y int) error {
	g.setPosCalls++
	if g.setPosErr != nil {
		return g.setPosErr
	}
	g.x, g.y = x, y
	return nil
}

func (g *fakeGateway) Size() (int, int, error) { return g.w, g.h, g.sizeErr }

func (g *fakeGateway) SetSize(w, h int) error {
	g.setSizeCall++
	if g.setSizeErr != nil {
		return g.setSizeErr
	}
	g.w, g.h = w, h
	return nil
}

func (g *fakeGateway) SetMousePassthrough(enabled bool) error {
	g.passthrough = enabled
	return nil
}

type fakePointer struct {
	x, y     float64
	pressed  bool
	modifier bool
}

func (p *fakePointer) State() (float64, float64, bool) { return p.x, p.y, p.pressed }
func (p *fakePointer) ModifierHeld() bool              { return p.modifier }

type fakeHotkey struct {
	held        bool
	registerErr error
	registered  bool
}

func (k *fakeHotkey) Register() error {
	if k.registerErr != nil {
		return k.registerErr
	}
	k.registered = true
	return nil
}
func (k *fakeHotkey) Unregister() { k.registered = false }
func (k *fakeHotkey) Held() bool  { return k.held }

type fakeBridge struct {
	widths         []float64
	repositionings []string
}

func (b *fakeBridge) OnWindowWidthChanged(width float64) { b.widths = append(b.widths, width) }
func (b *fakeBridge) OnEntityRepositioned(id string)     { b.repositionings = append(b.repositionings, id) }

type harness struct {
	gw     *fakeGateway
	hk     *fakeHotkey
	ptr    *fakePointer
	stage  *stage.Stage
	bridge *fakeBridge
	ctrl   *Controller
	now    time.Time

	modes  []Mode
	saved  []Geometry
	moved  []string
	movedX []float64
	clicks []string
}

func newHarness(windowW int) *harness {
	h := &harness{
		gw:  &fakeGateway{x: 100, y: 200, w: windowW, h: 160, passthrough: true},
		hk:  &fakeHotkey{},
		ptr: &fakePointer{},
		now: time.Unix(1000, 0),
	}
	h.stage = stage.New(windowW, 160, 64, 64)
	h.bridge = &fakeBridge{}
	h.ctrl = New(h.gw, h.hk, h.ptr, h.stage, h.bridge, config.Interaction, func() time.Time { return h.now })
	h.ctrl.OnModeChanged = func(m Mode) { h.modes = append(h.modes, m) }
	h.ctrl.OnLayoutSaved = func(g Geometry) { h.saved = append(h.saved, g) }
	h.ctrl.OnCompanionSaved = func(id string, x float64) {
		h.moved = append(h.moved, id)
		h.movedX = append(h.movedX, x)
	}
	h.ctrl.OnCompanionClick = func(id string) { h.clicks = append(h.clicks, id) }
	h.ctrl.Start()
	return h
}

// step advances one 16ms frame.
func (h *harness) step() {
	h.now = h.now.Add(16 * time.Millisecond)
	h.ctrl.Update()
}

func (h *harness) enterInteractive(t *testing.T) {
	t.Helper()
	h.hk.held = true
	h.step()
	h.now = h.now.Add(config.Interaction.HoldDuration)
	h.ctrl.Update()
	h.hk.held = false
	h.step()
	if h.ctrl.Mode() != Interactive {
		t.Fatal("hold did not enter interactive mode")
	}
}

func (h *harness) press(x, y float64) {
	h.ptr.x, h.ptr.y = x, y
	h.ptr.pressed = true
	h.step()
}

func (h *harness) moveTo(x, y float64) {
	h.ptr.x, h.ptr.y = x, y
	h.step()
}

func (h *harness) release() {
	h.ptr.pressed = false
	h.step()
}

func TestShortPressNeverTogglesMode(t *testing.T) {
	h := newHarness(640)

	for i := 0; i < 3; i++ {
		h.hk.held = true
		h.step() // press edge arms the hold
		for j := 0; j < 10; j++ {
			h.step() // 10 × 16ms, well under the threshold
		}
		h.hk.held = false
		h.step()

		if got := h.ctrl.Mode(); got != PassThrough {
			t.Fatalf("short press %d toggled mode to %v", i, got)
		}
	}
	if len(h.modes) != 0 {
		t.Errorf("OnModeChanged fired %d times for short presses", len(h.modes))
	}
}

func TestHoldTogglesExactlyOnce(t *testing.T) {
	h := newHarness(640)

	h.hk.held = true
	h.step()
	h.now = h.now.Add(config.Interaction.HoldDuration)
	h.ctrl.Update()

	if h.ctrl.Mode() != Interactive {
		t.Fatal("hold past the threshold did not toggle mode")
	}

	// Keeping the chord held must not toggle again.
	for i := 0; i < 200; i++ {
		h.step()
	}
	if h.ctrl.Mode() != Interactive {
		t.Fatal("continued holding toggled mode a second time")
	}
	if len(h.modes) != 1 {
		t.Fatalf("OnModeChanged fired %d times, want 1", len(h.modes))
	}

	// A full release and a fresh hold toggles back.
	h.hk.held = false
	h.step()
	h.hk.held = true
	h.step()
	h.now = h.now.Add(config.Interaction.HoldDuration)
	h.ctrl.Update()

	if h.ctrl.Mode() != PassThrough {
		t.Fatal("second hold did not toggle back")
	}
}

func TestHotkeyRegistrationFailureDegrades(t *testing.T) {
	h := &harness{
		gw:  &fakeGateway{w: 640, h: 160},
		hk:  &fakeHotkey{registerErr: errors.New("platform says no")},
		ptr: &fakePointer{},
		now: time.Unix(1000, 0),
	}
	h.stage = stage.New(640, 160, 64, 64)
	h.bridge = &fakeBridge{}
	h.ctrl = New(h.gw, h.hk, h.ptr, h.stage, h.bridge, config.Interaction, func() time.Time { return h.now })
	h.ctrl.Start()

	h.hk.held = true
	for i := 0; i < 100; i++ {
		h.step()
	}
	if h.ctrl.Mode() != PassThrough {
		t.Error("mode toggled despite failed hotkey registration")
	}
}

func TestModeTransitionsFlipPassthrough(t *testing.T) {
	h := newHarness(640)
	h.enterInteractive(t)

	if h.gw.passthrough {
		t.Error("interactive mode left mouse passthrough enabled")
	}
	if len(h.modes) != 1 || h.modes[0] != Interactive {
		t.Errorf("mode callbacks = %v, want [Interactive]", h.modes)
	}

	h.ctrl.Deactivate()

	if h.ctrl.Mode() != PassThrough {
		t.Error("Deactivate did not leave interactive mode")
	}
	if !h.gw.passthrough {
		t.Error("pass-through mode left the surface hit-testable")
	}
	if len(h.modes) != 2 || h.modes[1] != PassThrough {
		t.Errorf("mode callbacks = %v, want [Interactive PassThrough]", h.modes)
	}
}

func TestStartSyncsGeometry(t *testing.T) {
	h := newHarness(640)
	if got := h.ctrl.Geometry(); got != (Geometry{X: 100, Y: 200, W: 640, H: 160}) {
		t.Errorf("geometry after Start = %+v, want the gateway's", got)
	}
}

func TestWindowDrag(t *testing.T) {
	h := newHarness(640)
	h.enterInteractive(t)
	h.ptr.modifier = true

	h.press(200, 80)
	if h.ctrl.ActiveGesture() != DraggingWindow {
		t.Fatalf("gesture = %v, want DraggingWindow", h.ctrl.ActiveGesture())
	}

	h.moveTo(250, 60) // +50, -20
	want := Geometry{X: 150, Y: 180, W: 640, H: 160}
	if got := h.ctrl.Geometry(); got != want {
		t.Fatalf("geometry after move = %+v, want %+v", got, want)
	}
	if h.gw.x != 150 || h.gw.y != 180 {
		t.Fatalf("gateway at (%d, %d), want flushed (150, 180)", h.gw.x, h.gw.y)
	}

	// The window moved under the cursor: the same physical spot now reads
	// local (200, 80) again, which must be a stable fixed point.
	calls := h.gw.setPosCalls
	h.moveTo(200, 80)
	if h.gw.setPosCalls != calls {
		t.Error("stationary cursor produced another geometry write")
	}

	h.release()
	if len(h.saved) != 1 || h.saved[0] != want {
		t.Errorf("layout saved = %v, want [%+v]", h.saved, want)
	}
	if h.gw.setSizeCall != 0 {
		t.Errorf("window drag resized the window %d times", h.gw.setSizeCall)
	}
}

func TestWindowDragClampsYToZero(t *testing.T) {
	h := newHarness(640)
	h.enterInteractive(t)
	h.ptr.modifier = true

	h.press(200, 80)
	h.moveTo(100, -400) // dy = -480, far past the top of the screen

	got := h.ctrl.Geometry()
	if got.Y != 0 {
		t.Errorf("y = %d, want floor-clamped 0", got.Y)
	}
	if got.X != 0 {
		t.Errorf("x = %d, want 0 (horizontal travel unconstrained)", got.X)
	}
}

func TestResizeRightEdge(t *testing.T) {
	h := newHarness(640)
	h.enterInteractive(t)

	h.press(635, 80) // inside the right strip
	if h.ctrl.ActiveGesture() != ResizingWindow {
		t.Fatalf("gesture = %v, want ResizingWindow", h.ctrl.ActiveGesture())
	}

	h.moveTo(695, 80) // +60
	want := Geometry{X: 100, Y: 200, W: 700, H: 160}
	if got := h.ctrl.Geometry(); got != want {
		t.Fatalf("geometry = %+v, want %+v", got, want)
	}
	if h.gw.w != 700 {
		t.Fatalf("gateway width = %d, want flushed 700", h.gw.w)
	}
	if h.gw.setPosCalls != 0 {
		t.Error("right-edge resize moved the window")
	}
	if n := len(h.bridge.widths); n == 0 || h.bridge.widths[n-1] != 700 {
		t.Errorf("bridge widths = %v, want last 700", h.bridge.widths)
	}

	h.release()
	if len(h.saved) != 1 || h.saved[0] != want {
		t.Errorf("layout saved = %v, want [%+v]", h.saved, want)
	}
}

func TestResizeLeftEdgeKeepsRightEdgeFixed(t *testing.T) {
	h := newHarness(500)
	h.enterInteractive(t)

	h.press(5, 80)
	h.moveTo(55, 80) // +50: width 450, x shifts +50

	want := Geometry{X: 150, Y: 200, W: 450, H: 160}
	if got := h.ctrl.Geometry(); got != want {
		t.Fatalf("geometry = %+v, want %+v (right edge fixed at 600)", got, want)
	}
	if n := len(h.bridge.widths); n == 0 || h.bridge.widths[n-1] != 450 {
		t.Errorf("bridge widths = %v, want last 450", h.bridge.widths)
	}
}

func TestResizeLeftEdgeFloorPinsX(t *testing.T) {
	h := newHarness(500)
	h.enterInteractive(t)

	h.press(5, 80)
	h.moveTo(155, 80) // +150 would mean width 350; the floor is 400

	want := Geometry{X: 200, Y: 200, W: 400, H: 160}
	if got := h.ctrl.Geometry(); got != want {
		t.Fatalf("geometry = %+v, want %+v (x shifted +100, not +150)", got, want)
	}
	if n := len(h.bridge.widths); n == 0 || h.bridge.widths[n-1] != 400 {
		t.Errorf("bridge widths = %v, want last 400", h.bridge.widths)
	}
	if h.gw.x != 200 || h.gw.w != 400 {
		t.Errorf("gateway = (x=%d, w=%d), want (200, 400)", h.gw.x, h.gw.w)
	}
}

func TestEntityDragCommits(t *testing.T) {
	h := newHarness(300)
	pet := h.stage.AddHandle("pet", 50, 1)
	h.enterInteractive(t)

	h.press(60, 140) // inside the handle box
	if h.ctrl.ActiveGesture() != DraggingEntity {
		t.Fatalf("gesture = %v, want DraggingEntity", h.ctrl.ActiveGesture())
	}

	h.moveTo(90, 140) // +30
	if pet.X() != 80 {
		t.Fatalf("visual position = %v, want 80", pet.X())
	}
	if !pet.Held() {
		t.Error("handle not marked held during the drag")
	}

	h.release()
	if pet.Held() {
		t.Error("handle still held after release")
	}
	if len(h.bridge.repositionings) != 1 || h.bridge.repositionings[0] != "pet" {
		t.Errorf("bridge repositionings = %v, want [pet]", h.bridge.repositionings)
	}
	if len(h.moved) != 1 || h.moved[0] != "pet" || h.movedX[0] != 80 {
		t.Errorf("persisted = %v at %v, want pet at 80", h.moved, h.movedX)
	}
	if len(h.clicks) != 0 {
		t.Errorf("click fired on a committed drag: %v", h.clicks)
	}
	if h.gw.setPosCalls != 0 || h.gw.setSizeCall != 0 {
		t.Error("entity drag touched window geometry")
	}
}

func TestEntityDragClampsToUsableRange(t *testing.T) {
	h := newHarness(300)
	pet := h.stage.AddHandle("pet", 50, 1)
	h.enterInteractive(t)

	h.press(60, 140)
	h.moveTo(600, 140) // far past the right edge

	hi := 300.0 - 64 - config.Walk.Margin
	if pet.X() != hi {
		t.Errorf("visual position = %v, want clamped %v", pet.X(), hi)
	}

	h.moveTo(-600, 140)
	if pet.X() != config.Walk.Margin {
		t.Errorf("visual position = %v, want clamped %v", pet.X(), config.Walk.Margin)
	}
}

func TestEntityClickInsideDeadZone(t *testing.T) {
	h := newHarness(300)
	pet := h.stage.AddHandle("pet", 50, 1)
	h.enterInteractive(t)

	h.press(60, 140)
	h.moveTo(62, 141) // under the dead-zone
	h.release()

	if pet.X() != 50 {
		t.Errorf("click moved the handle to %v", pet.X())
	}
	if len(h.clicks) != 1 || h.clicks[0] != "pet" {
		t.Errorf("clicks = %v, want [pet]", h.clicks)
	}
	if len(h.bridge.repositionings) != 0 {
		t.Errorf("click repositioned: %v", h.bridge.repositionings)
	}
	if len(h.moved) != 0 {
		t.Errorf("click persisted a position: %v", h.moved)
	}
}

func TestModeExitCancelsEntityDrag(t *testing.T) {
	h := newHarness(300)
	pet := h.stage.AddHandle("pet", 50, 1)
	h.enterInteractive(t)

	h.press(60, 140)
	h.moveTo(90, 140)
	if pet.X() != 80 {
		t.Fatalf("drag did not move the handle, x = %v", pet.X())
	}

	// Hold the chord to force a mode exit mid-drag.
	h.hk.held = true
	h.step()
	h.now = h.now.Add(config.Interaction.HoldDuration)
	h.ctrl.Update()

	if h.ctrl.Mode() != PassThrough {
		t.Fatal("hold mid-drag did not exit interactive mode")
	}
	if h.ctrl.ActiveGesture() != None {
		t.Fatal("gesture survived the mode exit")
	}
	if pet.X() != 50 {
		t.Errorf("cancelled drag left the handle at %v, want snapped back to 50", pet.X())
	}
	if pet.Held() {
		t.Error("handle still held after cancellation")
	}
	if len(h.bridge.repositionings) != 0 || len(h.moved) != 0 || len(h.clicks) != 0 {
		t.Error("cancelled drag committed or persisted state")
	}

	// The release that eventually arrives must be a no-op.
	h.hk.held = false
	h.release()
	if len(h.bridge.repositionings) != 0 || len(h.moved) != 0 || len(h.clicks) != 0 {
		t.Error("stale release after cancellation fired callbacks")
	}
}

func TestGesturePriority(t *testing.T) {
	t.Run("modifier beats entity handle", func(t *testing.T) {
		h := newHarness(640)
		pet := h.stage.AddHandle("pet", 100, 1)
		h.enterInteractive(t)
		h.ptr.modifier = true

		h.press(110, 140) // over the handle, but the modifier is held
		if h.ctrl.ActiveGesture() != DraggingWindow {
			t.Fatalf("gesture = %v, want DraggingWindow", h.ctrl.ActiveGesture())
		}
		h.moveTo(160, 140)
		if pet.X() != 100 {
			t.Errorf("window drag moved the entity to %v", pet.X())
		}
	})

	t.Run("resize strip beats modifier", func(t *testing.T) {
		h := newHarness(640)
		h.enterInteractive(t)
		h.ptr.modifier = true

		h.press(5, 80)
		if h.ctrl.ActiveGesture() != ResizingWindow {
			t.Fatalf("gesture = %v, want ResizingWindow", h.ctrl.ActiveGesture())
		}
	})

	t.Run("resize strip beats entity handle", func(t *testing.T) {
		h := newHarness(640)
		h.stage.AddHandle("pet", 0, 1) // extends into the left strip
		h.enterInteractive(t)

		h.press(5, 140)
		if h.ctrl.ActiveGesture() != ResizingWindow {
			t.Fatalf("gesture = %v, want ResizingWindow", h.ctrl.ActiveGesture())
		}
	})

	t.Run("empty surface begins nothing", func(t *testing.T) {
		h := newHarness(640)
		h.enterInteractive(t)

		h.press(300, 50)
		if h.ctrl.ActiveGesture() != None {
			t.Fatalf("gesture = %v, want None", h.ctrl.ActiveGesture())
		}
		h.release()
		if len(h.saved)+len(h.moved)+len(h.clicks) != 0 {
			t.Error("empty press/release fired callbacks")
		}
	})
}

func TestFlushCoalescesToOneWritePerUpdate(t *testing.T) {
	h := newHarness(640)
	h.enterInteractive(t)
	h.ptr.modifier = true

	h.press(200, 80)
	for i := 0; i < 5; i++ {
		before := h.gw.setPosCalls
		h.moveTo(210+float64(i)*7, 80)
		if h.gw.setPosCalls-before != 1 {
			t.Fatalf("move %d produced %d position writes, want 1", i, h.gw.setPosCalls-before)
		}
	}

	// The final flushed geometry is the last move's.
	if h.gw.x != h.ctrl.Geometry().X {
		t.Errorf("gateway x = %d, pending %d; final write lost", h.gw.x, h.ctrl.Geometry().X)
	}
}

func TestGeometryWriteFailureDoesNotBreakGesture(t *testing.T) {
	h := newHarness(640)
	h.enterInteractive(t)
	h.ptr.modifier = true
	h.gw.setPosErr = errors.New("host is sulking")

	h.press(200, 80)
	h.moveTo(250, 80)

	if h.ctrl.ActiveGesture() != DraggingWindow {
		t.Error("geometry write failure killed the gesture")
	}
	if got := h.ctrl.Geometry().X; got != 150 {
		t.Errorf("pending x = %d, want 150 despite the failed write", got)
	}

	h.release()
	if len(h.saved) != 1 {
		t.Errorf("layout save skipped after write failure: %v", h.saved)
	}
}
