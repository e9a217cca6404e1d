package tooltip

import (
	"errors"
	"testing"
	"time"

	"github.com/vango-dev/tooltip/pkg/geometry"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []error
	}{
		{name: "defaults", cfg: DefaultConfig()},
		{
			name:    "negative offset",
			cfg:     Config{Placement: geometry.PlacementLeft, Offset: -1},
			wantErr: []error{ErrNegativeOffset},
		},
		{
			name:    "everything wrong",
			cfg:     Config{Placement: "up", Offset: -1, HoverDelay: -time.Millisecond},
			wantErr: []error{geometry.ErrInvalidPlacement, ErrNegativeOffset, ErrNegativeHoverDelay},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Validate() = %v, want it to include %v", err, want)
				}
			}
		})
	}
}

func TestStateAndEventStrings(t *testing.T) {
	cases := map[string]string{
		StateHidden.String():      "hidden",
		StateShowing.String():     "showing",
		StateShown.String():       "shown",
		StatePendingHide.String(): "pending-hide",
		PointerEnter.String():     "pointerenter",
		PointerLeave.String():     "pointerleave",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestNotifierUnregisterDuringEmit(t *testing.T) {
	var n notifier
	calls := 0
	var stop Cleanup
	stop = n.add(func(Notification) {
		calls++
		stop()
	})
	n.add(func(Notification) { calls++ })

	n.emit(Shown)
	n.emit(Shown)
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}
