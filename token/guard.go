package token

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Op identifies a facade operation for policy evaluation.
type Op int

const (
	OpTransfer Op = iota
	OpTransferFrom
	OpApprove
	OpMint
	OpBurn
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpTransfer:
		return "transfer"
	case OpTransferFrom:
		return "transferFrom"
	case OpApprove:
		return "approve"
	case OpMint:
		return "mint"
	case OpBurn:
		return "burn"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// MovesValue reports whether the operation moves token value. Approvals
// do not; they only delegate spending permission.
func (op Op) MovesValue() bool {
	switch op {
	case OpTransfer, OpTransferFrom, OpMint, OpBurn:
		return true
	default:
		return false
	}
}

// GuardContext is the read-only state a guard may inspect when deciding
// whether an operation proceeds.
type GuardContext struct {
	Paused bool
	Supply *uint256.Int
	Cap    *uint256.Int // nil when uncapped
	Amount *uint256.Int
	From   Address
	To     Address
}

// Guard is a predicate that may reject an operation before any state
// mutation occurs. Extensions contribute guards instead of overriding
// base methods; composition is list concatenation.
type Guard interface {
	Name() string
	Check(op Op, ctx *GuardContext) error
}

// Chain evaluates guards in registration order, short-circuiting on the
// first rejection.
type Chain []Guard

// Check runs every guard until one rejects.
func (c Chain) Check(op Op, ctx *GuardContext) error {
	for _, g := range c {
		if err := g.Check(op, ctx); err != nil {
			return err
		}
	}
	return nil
}

// PauseGuard rejects value-moving operations while the pause flag is set.
type PauseGuard struct{}

// Name returns the guard name.
func (PauseGuard) Name() string { return "pause" }

// Check implements Guard.
func (PauseGuard) Check(op Op, ctx *GuardContext) error {
	if ctx.Paused && op.MovesValue() {
		return fmt.Errorf("%w: %s", ErrPaused, op)
	}
	return nil
}

// CapGuard rejects a mint that would push total supply past the cap.
type CapGuard struct{}

// Name returns the guard name.
func (CapGuard) Name() string { return "cap" }

// Check implements Guard.
func (CapGuard) Check(op Op, ctx *GuardContext) error {
	if op != OpMint || ctx.Cap == nil {
		return nil
	}
	sum, overflow := new(uint256.Int).AddOverflow(ctx.Supply, ctx.Amount)
	if overflow || sum.Cmp(ctx.Cap) > 0 {
		return fmt.Errorf("%w: supply %s + %s exceeds cap %s",
			ErrCapExceeded, ctx.Supply.Dec(), ctx.Amount.Dec(), ctx.Cap.Dec())
	}
	return nil
}
