package stage

import "testing"

func TestAddHandleBottomAnchored(t *testing.T) {
	s := New(640, 160, 48, 48)
	h := s.AddHandle("odango-1", 100, 1.0)

	x, y, w, hh := h.Bounds()
	if x != 100 {
		t.Errorf("x = %v, want 100", x)
	}
	if w != 48 || hh != 48 {
		t.Errorf("size = %vx%v, want 48x48", w, hh)
	}
	if y != 160-48 {
		t.Errorf("y = %v, want %v (bottom anchored)", y, 160-48)
	}
}

func TestSetScaleGrowsUpward(t *testing.T) {
	s := New(640, 160, 48, 48)
	h := s.AddHandle("odango-1", 100, 1.0)

	h.SetScale(1.5)

	_, y, w, hh := h.Bounds()
	if w != 72 || hh != 72 {
		t.Errorf("scaled size = %vx%v, want 72x72", w, hh)
	}
	if y != 160-72 {
		t.Errorf("scaled y = %v, want %v (still bottom anchored)", y, 160-72)
	}
	if h.Scale() != 1.5 {
		t.Errorf("Scale() = %v, want 1.5", h.Scale())
	}
}

func TestHandleAt(t *testing.T) {
	s := New(640, 160, 48, 48)
	a := s.AddHandle("a", 50, 1.0)
	b := s.AddHandle("b", 200, 1.0)

	tests := []struct {
		name   string
		x, y   float64
		want   *Handle
		wantOK bool
	}{
		{"inside first", 74, 140, a, true},
		{"inside second", 224, 140, b, true},
		{"left edge", 50, 130, a, true},
		{"right edge", 98, 130, a, true},
		{"between handles", 150, 140, nil, false},
		{"above shelf floor sprites", 74, 50, nil, false},
		{"outside everything", 500, 10, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.HandleAt(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("HandleAt(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("HandleAt(%v, %v) = handle %q, want %q", tt.x, tt.y, got.ID(), tt.want.ID())
			}
		})
	}
}

func TestHandleAtPrefersNewest(t *testing.T) {
	tests := []struct {
		name         string
		underX, topX float64
		hitX         float64
	}{
		{"top overlaps from the right", 100, 110, 120},
		{"top overlaps from the left", 100, 90, 105},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(640, 160, 48, 48)
			s.AddHandle("under", tt.underX, 1.0)
			top := s.AddHandle("over", tt.topX, 1.0)

			got, ok := s.HandleAt(tt.hitX, 140)
			if !ok {
				t.Fatal("expected a hit on overlapping handles")
			}
			if got != top {
				t.Errorf("HandleAt hit %q, want the later-added %q", got.ID(), "over")
			}
		})
	}
}

func TestRemoveStopsHits(t *testing.T) {
	s := New(640, 160, 48, 48)
	h := s.AddHandle("a", 50, 1.0)

	s.Remove(h)

	if _, ok := s.HandleAt(74, 140); ok {
		t.Error("removed handle still hit-testable")
	}
	// Removing nil or twice must not panic.
	s.Remove(nil)
	s.Remove(h)
}

func TestSetXMovesHitBox(t *testing.T) {
	s := New(640, 160, 48, 48)
	h := s.AddHandle("a", 50, 1.0)

	h.SetX(300)

	if h.X() != 300 {
		t.Errorf("X() = %v, want 300", h.X())
	}
	if _, ok := s.HandleAt(74, 140); ok {
		t.Error("old position still hit-testable after SetX")
	}
	if got, ok := s.HandleAt(324, 140); !ok || got != h {
		t.Error("new position not hit-testable after SetX")
	}
}
