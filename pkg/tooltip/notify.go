package tooltip

// Notification is emitted to the host when a transition completes.
type Notification uint8

const (
	// Shown fires once per completed show, after the first position
	// computation.
	Shown Notification = iota + 1

	// Hidden fires once per completed hide, explicit or timer driven.
	Hidden
)

// String returns "show" or "hide", the event names hosts emit.
func (n Notification) String() string {
	switch n {
	case Shown:
		return "show"
	case Hidden:
		return "hide"
	default:
		return "unknown"
	}
}

type listenerEntry struct {
	id uint64
	fn func(Notification)
}

type notifier struct {
	nextID    uint64
	listeners []listenerEntry
}

func (n *notifier) add(fn func(Notification)) Cleanup {
	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, listenerEntry{id: id, fn: fn})
	return once(func() {
		for i, l := range n.listeners {
			if l.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	})
}

func (n *notifier) emit(kind Notification) {
	// Listeners may unregister themselves while being notified.
	snapshot := append([]listenerEntry(nil), n.listeners...)
	for _, l := range snapshot {
		l.fn(kind)
	}
}

func (n *notifier) reset() {
	n.listeners = nil
}
