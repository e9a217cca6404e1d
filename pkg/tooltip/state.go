package tooltip

// State is the controller's position in its state machine.
type State uint8

const (
	// StateHidden is the initial state.
	StateHidden State = iota

	// StateShowing waits for the render checkpoint before the first
	// position computation.
	StateShowing

	// StateShown is visible and tracking.
	StateShown

	// StatePendingHide is visible with a delayed hide scheduled.
	StatePendingHide
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateShowing:
		return "showing"
	case StateShown:
		return "shown"
	case StatePendingHide:
		return "pending-hide"
	default:
		return "unknown"
	}
}

// phase is the visibility flag plus the transient showing step. The
// PendingHide state is derived from the pending timer.
type phase uint8

const (
	phaseHidden phase = iota
	phaseShowing
	phaseShown
)
