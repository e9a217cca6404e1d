// Package geometry computes anchored coordinates for a floating element.
//
// A Solver takes the trigger rectangle, the floating element's size, a
// preferred Placement and an ordered list of Middleware, and returns the
// top-left corner at which the floating element should be drawn.
//
// # Placements
//
// There are twelve placements: four sides (top, bottom, left, right), each
// with three alignments (center, start, end):
//
//	top-start     top     top-end
//	left-start                  right-start
//	left                        right
//	left-end                    right-end
//	bottom-start  bottom  bottom-end
//
// # Middleware
//
// Middleware runs in order after the base coordinates are computed:
//
//	res, err := geometry.DefaultSolver.Compute(ctx, geometry.Request{
//	    Reference: triggerRect,
//	    Floating:  floatingSize,
//	    Placement: geometry.PlacementTop,
//	    Boundary:  viewport,
//	    Middleware: []geometry.Middleware{
//	        geometry.Offset(8),
//	        geometry.Flip(),
//	        geometry.Shift(8),
//	    },
//	})
//
// Flip may restart the pipeline with the opposite side; the result's
// Placement reports the side that was finally used.
package geometry
