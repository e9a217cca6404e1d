package geometry

import "fmt"

// Point is a coordinate pair in the containing coordinate space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Size is the measurable box of an element.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// IsZero reports whether the size has no area.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewRect returns a rectangle with the given origin and size.
func NewRect(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's size.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inset shrinks the rectangle by pad on every side.
func (r Rect) Inset(pad float64) Rect {
	return Rect{X: r.X + pad, Y: r.Y + pad, Width: r.Width - 2*pad, Height: r.Height - 2*pad}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// SideOverflow is how far a box extends past each edge of a boundary.
// Positive values overflow, negative values are free space.
type SideOverflow struct {
	Top, Right, Bottom, Left float64
}

// Get returns the overflow on the given side.
func (o SideOverflow) Get(s Side) float64 {
	switch s {
	case SideTop:
		return o.Top
	case SideBottom:
		return o.Bottom
	case SideLeft:
		return o.Left
	case SideRight:
		return o.Right
	}
	return 0
}

// Overflow measures box against boundary.
func Overflow(box, boundary Rect) SideOverflow {
	return SideOverflow{
		Top:    boundary.Y - box.Y,
		Right:  box.Right() - boundary.Right(),
		Bottom: box.Bottom() - boundary.Bottom(),
		Left:   boundary.X - box.X,
	}
}

func clamp(lo, v, hi float64) float64 {
	// lo wins when the box cannot fit at all
	return max(lo, min(v, hi))
}
