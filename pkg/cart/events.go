package cart

// EventKind names what happened to the cart.
type EventKind string

// Event kinds published by the Store.
const (
	EventAdded           EventKind = "added"
	EventQuantityChanged EventKind = "quantity_changed"
	EventRemoved         EventKind = "removed"
	EventCleared         EventKind = "cleared"
	EventLoaded          EventKind = "loaded"
)

// Event describes a cart mutation. Index is the affected position, or -1 for
// whole-cart events. Entries is a snapshot taken right after the change.
type Event struct {
	Kind    EventKind
	Index   int
	Entries []Entry
}

// ChangeHook is called after every cart mutation.
type ChangeHook func(Event)
