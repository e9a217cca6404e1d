package geometry

import (
	"context"
	"errors"
	"testing"
)

var viewport = Rect{Width: 1000, Height: 800}

func standardMiddleware(off float64) []Middleware {
	return []Middleware{Offset(off), Flip(), Shift(8)}
}

func TestCompute_BasePlacements(t *testing.T) {
	ref := Rect{X: 400, Y: 300, Width: 100, Height: 40}
	fl := Size{Width: 60, Height: 20}

	tests := []struct {
		placement Placement
		x, y      float64
	}{
		{PlacementTop, 420, 272},
		{PlacementTopStart, 400, 272},
		{PlacementTopEnd, 440, 272},
		{PlacementBottom, 420, 348},
		{PlacementBottomStart, 400, 348},
		{PlacementBottomEnd, 440, 348},
		{PlacementLeft, 332, 310},
		{PlacementLeftStart, 332, 300},
		{PlacementLeftEnd, 332, 320},
		{PlacementRight, 508, 310},
		{PlacementRightStart, 508, 300},
		{PlacementRightEnd, 508, 320},
	}

	for _, tt := range tests {
		t.Run(string(tt.placement), func(t *testing.T) {
			res, err := Compute(context.Background(), Request{
				Reference:  ref,
				Floating:   fl,
				Placement:  tt.placement,
				Boundary:   viewport,
				Middleware: standardMiddleware(8),
			})
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if res.X != tt.x || res.Y != tt.y {
				t.Errorf("Compute() = (%g, %g), want (%g, %g)", res.X, res.Y, tt.x, tt.y)
			}
			if res.Placement != tt.placement {
				t.Errorf("Placement = %q, want %q", res.Placement, tt.placement)
			}
		})
	}
}

func TestCompute_FlipNearBottomEdge(t *testing.T) {
	res, err := Compute(context.Background(), Request{
		Reference:  Rect{X: 100, Y: 770, Width: 80, Height: 24},
		Floating:   Size{Width: 120, Height: 30},
		Placement:  PlacementBottomStart,
		Boundary:   viewport,
		Middleware: standardMiddleware(8),
	})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if res.Placement != PlacementTopStart {
		t.Fatalf("Placement = %q, want top-start", res.Placement)
	}
	if res.X != 100 || res.Y != 770-30-8 {
		t.Errorf("Compute() = (%g, %g), want (100, %d)", res.X, res.Y, 770-30-8)
	}
}

func TestCompute_FlipBestFitWhenBothSidesOverflow(t *testing.T) {
	// 50px of room above, 10px below.
	res, err := Compute(context.Background(), Request{
		Reference:  Rect{X: 400, Y: 50, Width: 40, Height: 740},
		Floating:   Size{Width: 40, Height: 100},
		Placement:  PlacementBottom,
		Boundary:   viewport,
		Middleware: []Middleware{Flip()},
	})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if res.Placement != PlacementTop {
		t.Errorf("Placement = %q, want top (least overflow)", res.Placement)
	}
}

func TestCompute_ShiftClampsWithPadding(t *testing.T) {
	res, err := Compute(context.Background(), Request{
		Reference:  Rect{X: 0, Y: 300, Width: 20, Height: 20},
		Floating:   Size{Width: 200, Height: 30},
		Placement:  PlacementTop,
		Boundary:   viewport,
		Middleware: standardMiddleware(8),
	})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if res.X != 8 {
		t.Errorf("X = %g, want 8 (left padding)", res.X)
	}

	res, err = Compute(context.Background(), Request{
		Reference:  Rect{X: 990, Y: 300, Width: 10, Height: 20},
		Floating:   Size{Width: 200, Height: 30},
		Placement:  PlacementBottom,
		Boundary:   viewport,
		Middleware: standardMiddleware(8),
	})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if res.X != 1000-8-200 {
		t.Errorf("X = %g, want %d (right padding)", res.X, 1000-8-200)
	}
}

func TestCompute_EmptyBoundarySkipsConstraints(t *testing.T) {
	res, err := Compute(context.Background(), Request{
		Reference:  Rect{X: 0, Y: 0, Width: 20, Height: 20},
		Floating:   Size{Width: 100, Height: 30},
		Placement:  PlacementTop,
		Middleware: standardMiddleware(8),
	})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if res.Placement != PlacementTop || res.X != -40 || res.Y != -38 {
		t.Errorf("Compute() = %+v, want top at (-40, -38)", res)
	}
}

func TestCompute_ZeroSizeFloating(t *testing.T) {
	res, err := Compute(context.Background(), Request{
		Reference:  Rect{X: 100, Y: 100, Width: 50, Height: 20},
		Placement:  PlacementTop,
		Boundary:   viewport,
		Middleware: standardMiddleware(8),
	})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if res.X != 125 || res.Y != 92 {
		t.Errorf("Compute() = (%g, %g), want (125, 92)", res.X, res.Y)
	}
}

func TestCompute_Errors(t *testing.T) {
	_, err := Compute(context.Background(), Request{Placement: "diagonal"})
	if !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("invalid placement error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compute(ctx, Request{Placement: PlacementTop}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context error = %v", err)
	}
}

func TestSolverFunc(t *testing.T) {
	called := false
	s := SolverFunc(func(ctx context.Context, req Request) (Result, error) {
		called = true
		return Result{X: 1, Y: 2, Placement: req.Placement}, nil
	})
	res, err := s.Compute(context.Background(), Request{Placement: PlacementLeft})
	if err != nil || !called {
		t.Fatalf("SolverFunc not invoked: err=%v called=%v", err, called)
	}
	if res.Point() != (Point{X: 1, Y: 2}) {
		t.Errorf("Point() = %+v", res.Point())
	}
}
