package replay

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/tooltip/internal/config"
	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/geometry"
)

// Event is a scripted interaction.
type Event string

const (
	TriggerEnter  Event = "trigger-enter"
	TriggerLeave  Event = "trigger-leave"
	FloatingEnter Event = "floating-enter"
	FloatingLeave Event = "floating-leave"
	Show          Event = "show"
	Hide          Event = "hide"
	Unmount       Event = "unmount"
	Layout        Event = "layout"
	Disable       Event = "disable"
	Enable        Event = "enable"
)

var events = map[Event]bool{
	TriggerEnter: true, TriggerLeave: true,
	FloatingEnter: true, FloatingLeave: true,
	Show: true, Hide: true, Unmount: true, Layout: true,
	Disable: true, Enable: true,
}

// Script is a replayable session.
type Script struct {
	Name     string               `yaml:"name"`
	Config   config.TooltipConfig `yaml:"config"`
	Viewport *geometry.Rect       `yaml:"viewport"`
	Trigger  *geometry.Rect       `yaml:"trigger"`
	Floating *geometry.Rect       `yaml:"floating"`
	Steps    []Step               `yaml:"steps"`

	// Until extends the run past the last step. Default: last step plus
	// the hover delay, so a trailing delayed hide is observed.
	Until time.Duration `yaml:"until"`

	Expect []Expectation `yaml:"expect"`
}

// Step is one interaction at a virtual time.
type Step struct {
	At    time.Duration `yaml:"at"`
	Event Event         `yaml:"event"`

	// Trigger and Floating replace the element rectangles on layout.
	Trigger  *geometry.Rect `yaml:"trigger"`
	Floating *geometry.Rect `yaml:"floating"`
}

// Expectation asserts that a timeline entry of Kind exists at At.
type Expectation struct {
	At   time.Duration `yaml:"at"`
	Kind string        `yaml:"kind"`

	// Never asserts the kind does not occur at all.
	Never bool `yaml:"never"`

	// Placement, when set, is compared for position entries.
	Placement geometry.Placement `yaml:"placement"`
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.New("T020").
			WithDetail(err.Error()).
			WithLocationFromYAML("", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses the script at path.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("T020").Wrap(err)
	}
	s, err := Parse(data)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			if e.Location != nil {
				return nil, e.WithLocation(path, e.Location.Line, e.Location.Column)
			}
			return nil, e.WithLocation(path, 0, 0)
		}
		return nil, err
	}
	return s, nil
}

// Validate checks event names and step order.
func (s *Script) Validate() error {
	var prev time.Duration
	for i, step := range s.Steps {
		if !events[step.Event] {
			return errors.New("T021").
				WithDetail(fmt.Sprintf("step %d: %q", i+1, step.Event)).
				WithSuggestion("Use trigger-enter, trigger-leave, floating-enter, floating-leave, show, hide, unmount, layout, disable or enable")
		}
		if step.At < 0 || step.At < prev {
			return errors.New("T022").
				WithDetail(fmt.Sprintf("step %d at %s comes before %s", i+1, step.At, prev))
		}
		prev = step.At
	}
	for i, e := range s.Expect {
		switch e.Kind {
		case KindShow, KindHide, KindPosition:
		default:
			return errors.New("T020").
				WithDetail(fmt.Sprintf("expectation %d: unknown kind %q", i+1, e.Kind))
		}
	}
	return nil
}
