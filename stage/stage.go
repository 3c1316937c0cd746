package stage

import (
	"github.com/leo110047/ODANGO/tags"
	"github.com/solarlune/resolv"
)

// Handle is the visual placement of one companion on the shelf: a tagged
// resolv object plus the render flags the draw system reads. Companions are
// bottom-anchored, so scale changes grow the box upward from the shelf floor.
type Handle struct {
	id       string
	obj      *resolv.Object
	mirrored bool
	held     bool
	scale    float64
	frameW   float64
	frameH   float64
	shelfH   float64
}

func (h *Handle) ID() string { return h.id }

// X returns the left edge of the handle in shelf coordinates.
func (h *Handle) X() float64 { return h.obj.X }

// SetX moves the handle horizontally. The vertical anchor is fixed.
func (h *Handle) SetX(x float64) {
	h.obj.X = x
	h.obj.Update()
}

// Width is the rendered width (frame width times scale). Both cores use it
// for bounds math.
func (h *Handle) Width() float64 { return h.obj.W }

// Bounds returns the handle box for rendering and hit drawing.
func (h *Handle) Bounds() (x, y, w, hh float64) {
	return h.obj.X, h.obj.Y, h.obj.W, h.obj.H
}

func (h *Handle) Mirrored() bool { return h.mirrored }

// SetMirrored flips the rendered sprite horizontally.
func (h *Handle) SetMirrored(m bool) { h.mirrored = m }

func (h *Handle) Held() bool { return h.held }

// SetHeld marks the handle as pointer-held. While held the walk keeps its
// own bookkeeping but leaves the handle alone, so the drag position is what
// renders until the gesture commits or cancels.
func (h *Handle) SetHeld(held bool) { h.held = held }

func (h *Handle) Scale() float64 { return h.scale }

// SetScale resizes the handle box, keeping it bottom-anchored to the shelf
// floor so companions grow upward.
func (h *Handle) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	h.scale = scale
	h.obj.W = h.frameW * scale
	h.obj.H = h.frameH * scale
	h.obj.Y = h.shelfH - h.obj.H
	h.obj.Update()
}

// Stage is the shelf surface: a resolv space holding one object per live
// companion. It answers pointer hit queries for the interaction layer and
// hands out handles the scheduler owns. The logical width is mutable (the
// window resizes); the height is fixed.
type Stage struct {
	space   *resolv.Space
	handles []*Handle
	width   float64
	height  float64
	frameW  float64
	frameH  float64
}

// New creates a shelf surface of the given logical size. frameW/frameH are
// the unscaled sprite frame dimensions every handle is derived from.
func New(width, height, frameW, frameH int) *Stage {
	return &Stage{
		space:  resolv.NewSpace(width, height, 16, 16),
		width:  float64(width),
		height: float64(height),
		frameW: float64(frameW),
		frameH: float64(frameH),
	}
}

func (s *Stage) Width() float64  { return s.width }
func (s *Stage) Height() float64 { return s.height }

// SetWidth records the new shelf width. Existing handles are not touched;
// the scheduler clamps them as part of its own width update.
func (s *Stage) SetWidth(width float64) {
	if width < 0 {
		width = 0
	}
	s.width = width
}

// AddHandle creates the visual handle for a companion at the given x and
// scale, bottom-anchored, and registers it for hit queries.
func (s *Stage) AddHandle(id string, x, scale float64) *Handle {
	if scale <= 0 {
		scale = 1
	}
	w := s.frameW * scale
	hh := s.frameH * scale
	obj := resolv.NewObject(x, s.height-hh, w, hh, tags.ResolvCompanion)
	h := &Handle{
		id:     id,
		obj:    obj,
		scale:  scale,
		frameW: s.frameW,
		frameH: s.frameH,
		shelfH: s.height,
	}
	obj.Data = h
	s.space.Add(obj)
	s.handles = append(s.handles, h)
	return h
}

// Remove releases a handle. Safe to call with nil.
func (s *Stage) Remove(h *Handle) {
	if h == nil {
		return
	}
	s.space.Remove(h.obj)
	for i, other := range s.handles {
		if other == h {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			break
		}
	}
}

// HandleAt returns the topmost companion handle containing the point, if
// any. Later-added handles draw on top, so the scan runs newest-first.
// The space's cell order is spatial, not insertion order, so the scan
// walks the stage's own handle list instead.
func (s *Stage) HandleAt(x, y float64) (*Handle, bool) {
	for i := len(s.handles) - 1; i >= 0; i-- {
		obj := s.handles[i].obj
		if !obj.HasTags(tags.ResolvCompanion) {
			continue
		}
		if x >= obj.X && x <= obj.X+obj.W && y >= obj.Y && y <= obj.Y+obj.H {
			return s.handles[i], true
		}
	}
	return nil, false
}
