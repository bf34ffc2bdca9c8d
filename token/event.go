package token

import "github.com/holiman/uint256"

// Kind classifies a change notification.
type Kind string

const (
	// KindTransfer covers transfers, mints (from the zero address) and
	// burns (to the zero address), mirroring the standard Transfer event.
	KindTransfer Kind = "Transfer"
	KindApproval Kind = "Approval"
	KindPaused   Kind = "Paused"
	KindUnpaused Kind = "Unpaused"
)

// Event is the structured change notification emitted exactly once after
// every successful mutating operation, and never on a rejected one.
type Event struct {
	ID       string       `json:"id"`
	Sequence uint64       `json:"sequence"`
	Kind     Kind         `json:"kind"`
	From     Address      `json:"from"`
	To       Address      `json:"to"`
	Owner    Address      `json:"owner"`
	Spender  Address      `json:"spender"`
	Amount   *uint256.Int `json:"amount,omitempty"`
}

// Emitter receives change notifications from the facade.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(Event)

// Emit implements Emitter.
func (f EmitterFunc) Emit(e Event) { f(e) }
