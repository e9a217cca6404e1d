package tooltip

import (
	"context"
	"fmt"

	"github.com/vango-dev/tooltip/pkg/geometry"
)

// Middleware returns the ordered constraint strategies used for every
// computation: offset, flip, then shift with ShiftPadding.
func Middleware(offset float64) []geometry.Middleware {
	return []geometry.Middleware{
		geometry.Offset(offset),
		geometry.Flip(),
		geometry.Shift(ShiftPadding),
	}
}

// ComputePosition measures trigger and floating and asks solver where the
// floating element goes.
func ComputePosition(ctx context.Context, solver geometry.Solver, trigger, floating Element,
	viewport geometry.Rect, placement geometry.Placement, offset float64) (geometry.Result, error) {
	ref, err := trigger.Rect()
	if err != nil {
		return geometry.Result{}, fmt.Errorf("measure trigger: %w", err)
	}
	fl, err := floating.Rect()
	if err != nil {
		return geometry.Result{}, fmt.Errorf("measure floating: %w", err)
	}

	return solver.Compute(ctx, geometry.Request{
		Reference:  ref,
		Floating:   fl.Size(),
		Placement:  placement,
		Boundary:   viewport,
		Middleware: Middleware(offset),
	})
}

// UpdatePosition recomputes the floating element's position and writes it.
// It does nothing until both elements are mounted. Solver failures are
// logged and leave the last applied position in place.
func (c *Controller) UpdatePosition(ctx context.Context) {
	if c.disposed {
		return
	}
	trigger, floating := c.host.Trigger(), c.host.Floating()
	if trigger == nil || floating == nil {
		return
	}

	res, err := c.compute(ctx, trigger, floating)
	if err != nil {
		c.logger.Warn("tooltip positioning error", "error", err)
		return
	}

	floating.SetPosition(res.Point())
	c.last = res
	c.hasPosition = true
}

func (c *Controller) compute(ctx context.Context, trigger, floating Element) (res geometry.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("solver panic: %v", r)
		}
	}()
	return ComputePosition(ctx, c.solver, trigger, floating, c.host.Viewport(), c.cfg.Placement, c.cfg.Offset)
}
