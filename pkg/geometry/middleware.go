package geometry

import "fmt"

// State is the pipeline state handed to each Middleware.
type State struct {
	X, Y             float64
	Placement        Placement
	InitialPlacement Placement
	Reference        Rect
	Floating         Size
	Boundary         Rect

	// Tried records the main-side overflow of placements Flip rejected.
	Tried []PlacementOverflow
}

// Box returns the floating element's rectangle at the current coordinates.
func (s State) Box() Rect {
	return NewRect(Point{X: s.X, Y: s.Y}, s.Floating)
}

// PlacementOverflow pairs a placement with its main-side overflow.
type PlacementOverflow struct {
	Placement Placement
	Overflow  float64
}

// Adjustment is what a Middleware returns.
type Adjustment struct {
	DX, DY float64

	// Reset restarts the pipeline with a new placement.
	Reset Placement

	// Tried is appended to State.Tried.
	Tried *PlacementOverflow
}

// Middleware modifies the pipeline state.
type Middleware interface {
	Name() string
	Apply(s State) Adjustment
}

type offset struct{ px float64 }

// Offset moves the floating element px away from the reference along the
// main axis.
func Offset(px float64) Middleware { return offset{px: px} }

func (m offset) Name() string { return fmt.Sprintf("offset(%g)", m.px) }

func (m offset) Apply(s State) Adjustment {
	switch s.Placement.Side() {
	case SideTop:
		return Adjustment{DY: -m.px}
	case SideBottom:
		return Adjustment{DY: m.px}
	case SideLeft:
		return Adjustment{DX: -m.px}
	case SideRight:
		return Adjustment{DX: m.px}
	}
	return Adjustment{}
}

type flip struct{}

// Flip switches to the opposite side when the preferred side overflows the
// boundary. When both sides overflow, the side with the least overflow wins.
func Flip() Middleware { return flip{} }

func (flip) Name() string { return "flip" }

func (flip) Apply(s State) Adjustment {
	if s.Boundary.Empty() {
		return Adjustment{}
	}
	over := Overflow(s.Box(), s.Boundary).Get(s.Placement.Side())
	if over <= 0 {
		return Adjustment{}
	}

	current := PlacementOverflow{Placement: s.Placement, Overflow: over}
	tried := append(append([]PlacementOverflow(nil), s.Tried...), current)

	next := s.InitialPlacement.Opposite()
	for _, t := range tried {
		if t.Placement == next {
			next = ""
			break
		}
	}
	if next != "" {
		return Adjustment{Reset: next, Tried: &current}
	}

	// Every candidate overflows; settle on the best fit.
	best := tried[0]
	for _, t := range tried[1:] {
		if t.Overflow < best.Overflow {
			best = t
		}
	}
	return Adjustment{Reset: best.Placement, Tried: &current}
}

type shift struct{ padding float64 }

// Shift slides the floating element along the cross axis so it stays inside
// the boundary inset by padding.
func Shift(padding float64) Middleware { return shift{padding: padding} }

func (m shift) Name() string { return fmt.Sprintf("shift(%g)", m.padding) }

func (m shift) Apply(s State) Adjustment {
	if s.Boundary.Empty() {
		return Adjustment{}
	}
	b := s.Boundary.Inset(m.padding)
	if s.Placement.Side().Vertical() {
		x := clamp(b.X, s.X, b.Right()-s.Floating.Width)
		return Adjustment{DX: x - s.X}
	}
	y := clamp(b.Y, s.Y, b.Bottom()-s.Floating.Height)
	return Adjustment{DY: y - s.Y}
}
