package server

import (
	"encoding/json"
	"fmt"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/geometry"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// FrameType names a websocket frame.
type FrameType string

// Client to server.
const (
	FrameHello    FrameType = "hello"
	FramePointer  FrameType = "pointer"
	FrameLayout   FrameType = "layout"
	FrameRendered FrameType = "rendered"
)

// Server to client.
const (
	FrameVisibility FrameType = "visibility"
	FramePosition   FrameType = "position"
	FrameNotify     FrameType = "notify"
	FrameError      FrameType = "error"
)

// Pointer targets.
const (
	TargetTrigger  = "trigger"
	TargetFloating = "floating"
)

// Frame is the JSON envelope of every message. Fields are set according to
// Type.
type Frame struct {
	Type FrameType `json:"type"`

	// hello, layout, rendered
	Viewport *geometry.Rect `json:"viewport,omitempty"`
	Trigger  *geometry.Rect `json:"trigger,omitempty"`
	Floating *geometry.Rect `json:"floating,omitempty"`

	// hello: optional placement override
	Placement geometry.Placement `json:"placement,omitempty"`

	// pointer
	Target string `json:"target,omitempty"`
	Event  string `json:"event,omitempty"`

	// visibility
	Visible *bool  `json:"visible,omitempty"`
	ID      string `json:"id,omitempty"`

	// position
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`

	// notify
	Kind string `json:"kind,omitempty"`

	// error
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// DecodeFrame parses a client frame. It fails with T060 for malformed JSON
// or missing fields and T061 for unknown types.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, errors.New("T060").Wrap(err)
	}

	switch f.Type {
	case FrameHello:
		if f.Trigger == nil {
			return Frame{}, errors.New("T060").WithDetail("hello frame needs a trigger rect")
		}
		if f.Placement != "" && !f.Placement.Valid() {
			return Frame{}, errors.New("T060").WithDetail(fmt.Sprintf("unsupported placement %q", f.Placement))
		}
	case FramePointer:
		if f.Target != TargetTrigger && f.Target != TargetFloating {
			return Frame{}, errors.New("T060").WithDetail(fmt.Sprintf("unknown pointer target %q", f.Target))
		}
		if _, ok := ParseEvent(f.Event); !ok {
			return Frame{}, errors.New("T060").WithDetail(fmt.Sprintf("unknown pointer event %q", f.Event))
		}
	case FrameLayout, FrameRendered:
	default:
		return Frame{}, errors.New("T061").WithDetail(fmt.Sprintf("frame type %q", f.Type))
	}
	return f, nil
}

// ParseEvent maps a DOM event name to a tooltip.Event.
func ParseEvent(name string) (tooltip.Event, bool) {
	switch name {
	case tooltip.PointerEnter.String(), "mouseenter":
		return tooltip.PointerEnter, true
	case tooltip.PointerLeave.String(), "mouseleave":
		return tooltip.PointerLeave, true
	default:
		return 0, false
	}
}

func visibilityFrame(visible bool, id string) Frame {
	return Frame{Type: FrameVisibility, Visible: &visible, ID: id}
}

func positionFrame(p geometry.Point, placement geometry.Placement) Frame {
	return Frame{Type: FramePosition, X: &p.X, Y: &p.Y, Placement: placement}
}

func notifyFrame(n tooltip.Notification) Frame {
	return Frame{Type: FrameNotify, Kind: n.String()}
}

func errorFrame(err error) Frame {
	f := Frame{Type: FrameError, Message: err.Error()}
	if e, ok := err.(*errors.Error); ok {
		f.Code = e.Code
		f.Message = e.Message
		if e.Detail != "" {
			f.Message += ": " + e.Detail
		}
	}
	return f
}
