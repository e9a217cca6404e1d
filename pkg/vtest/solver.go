package vtest

import (
	"context"

	"github.com/vango-dev/tooltip/pkg/geometry"
)

// Solver records requests and returns a canned or computed result.
type Solver struct {
	// Requests holds every request in order.
	Requests []geometry.Request

	// Result, when non-nil, is returned instead of computing.
	Result *geometry.Result

	// Err, when set, is returned for every call.
	Err error

	// Panic, when set, makes Compute panic with this value.
	Panic any
}

// Compute records req, then fails, panics, returns Result or falls back to
// geometry.Compute.
func (s *Solver) Compute(ctx context.Context, req geometry.Request) (geometry.Result, error) {
	s.Requests = append(s.Requests, req)
	if s.Panic != nil {
		panic(s.Panic)
	}
	if s.Err != nil {
		return geometry.Result{}, s.Err
	}
	if s.Result != nil {
		return *s.Result, nil
	}
	return geometry.Compute(ctx, req)
}

// Calls returns the number of Compute calls.
func (s *Solver) Calls() int { return len(s.Requests) }

// Last returns the most recent request.
func (s *Solver) Last() (geometry.Request, bool) {
	if len(s.Requests) == 0 {
		return geometry.Request{}, false
	}
	return s.Requests[len(s.Requests)-1], true
}
