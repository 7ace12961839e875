// Package connectflow drives the client side of an OAuth connect: open the
// provider consent page, wait for the code to come back, check the CSRF
// state and hand the code to the backend exchange endpoint.
package connectflow

import "fmt"

type State int

const (
	StateIdle State = iota
	StatePopupOpen
	StateAwaitingCallback
	StateExchanging
	StateConnected
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:             "idle",
	StatePopupOpen:        "popup-open",
	StateAwaitingCallback: "awaiting-callback",
	StateExchanging:       "exchanging",
	StateConnected:        "connected",
	StateFailed:           "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateConnected || s == StateFailed
}

// allowed lists the legal successors of each state. Idle may jump straight to
// exchanging when the code arrives on the opener's own redirect.
var allowed = map[State][]State{
	StateIdle:             {StatePopupOpen, StateExchanging, StateFailed},
	StatePopupOpen:        {StateAwaitingCallback, StateFailed},
	StateAwaitingCallback: {StateExchanging, StateFailed},
	StateExchanging:       {StateConnected, StateFailed},
}

func canTransition(from, to State) bool {
	for _, next := range allowed[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionError is returned for a transition the table does not allow.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal connect flow transition %s -> %s", e.From, e.To)
}
