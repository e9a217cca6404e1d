package geometry

import (
	"context"
	"fmt"
	"math"
)

// maxResets bounds how often middleware may restart the pipeline.
const maxResets = 50

// Request is the input to a Solver.
type Request struct {
	// Reference is the trigger rectangle.
	Reference Rect

	// Floating is the floating element's measured size. It may be zero
	// before the first layout pass.
	Floating Size

	// Placement is the preferred placement.
	Placement Placement

	// Boundary is the clipping rectangle, usually the viewport. An empty
	// boundary disables overflow detection.
	Boundary Rect

	// Middleware runs in order after the base coordinates are computed.
	Middleware []Middleware
}

// Result is the computed position of the floating element.
type Result struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Placement is the placement actually used, which differs from the
	// requested one when Flip switched sides.
	Placement Placement `json:"placement"`
}

// Point returns the result's coordinates.
func (r Result) Point() Point { return Point{X: r.X, Y: r.Y} }

// Solver computes a position for a floating element.
type Solver interface {
	Compute(ctx context.Context, req Request) (Result, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, req Request) (Result, error)

// Compute calls f(ctx, req).
func (f SolverFunc) Compute(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}

// DefaultSolver is the in-process solver.
var DefaultSolver Solver = SolverFunc(Compute)

// Compute runs the base placement and the middleware pipeline.
func Compute(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !req.Placement.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidPlacement, req.Placement)
	}
	if !finite(req.Reference.X, req.Reference.Y, req.Reference.Width, req.Reference.Height,
		req.Floating.Width, req.Floating.Height) {
		return Result{}, fmt.Errorf("geometry: non-finite input %v %v", req.Reference, req.Floating)
	}

	state := State{
		Placement:        req.Placement,
		InitialPlacement: req.Placement,
		Reference:        req.Reference,
		Floating:         req.Floating,
		Boundary:         req.Boundary,
	}
	state.X, state.Y = baseCoords(req.Reference, req.Floating, req.Placement)

	resets := 0
	for i := 0; i < len(req.Middleware); i++ {
		adj := req.Middleware[i].Apply(state)
		state.X += adj.DX
		state.Y += adj.DY
		if adj.Tried != nil {
			state.Tried = append(state.Tried, *adj.Tried)
		}
		if adj.Reset != "" && adj.Reset != state.Placement && resets < maxResets {
			resets++
			state.Placement = adj.Reset
			state.X, state.Y = baseCoords(req.Reference, req.Floating, adj.Reset)
			i = -1
		}
	}

	return Result{X: state.X, Y: state.Y, Placement: state.Placement}, nil
}

// baseCoords places the floating box flush against the reference.
func baseCoords(ref Rect, fl Size, p Placement) (x, y float64) {
	centerX := ref.X + ref.Width/2 - fl.Width/2
	centerY := ref.Y + ref.Height/2 - fl.Height/2

	switch p.Side() {
	case SideTop:
		x, y = centerX, ref.Y-fl.Height
	case SideBottom:
		x, y = centerX, ref.Bottom()
	case SideLeft:
		x, y = ref.X-fl.Width, centerY
	case SideRight:
		x, y = ref.Right(), centerY
	}

	switch p.Alignment() {
	case AlignStart:
		if p.Side().Vertical() {
			x = ref.X
		} else {
			y = ref.Y
		}
	case AlignEnd:
		if p.Side().Vertical() {
			x = ref.Right() - fl.Width
		} else {
			y = ref.Bottom() - fl.Height
		}
	}
	return x, y
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
