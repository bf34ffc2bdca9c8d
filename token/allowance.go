package token

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Unlimited is the allowance sentinel that is exempt from decrement on
// spend, semantically an infinite approval. Treat as read-only.
var Unlimited = new(uint256.Int).SetAllOne()

// AllowanceTable maps (owner, spender) pairs to spending limits.
// An allowance of zero is indistinguishable from an absent one.
type AllowanceTable struct {
	grants map[Address]map[Address]*uint256.Int
}

// NewAllowanceTable creates an empty allowance table.
func NewAllowanceTable() *AllowanceTable {
	return &AllowanceTable{
		grants: make(map[Address]map[Address]*uint256.Int),
	}
}

// Allowance returns the limit granted by owner to spender, zero if none.
func (t *AllowanceTable) Allowance(owner, spender Address) *uint256.Int {
	if row, ok := t.grants[owner]; ok {
		if a, ok := row[spender]; ok {
			return new(uint256.Int).Set(a)
		}
	}
	return new(uint256.Int)
}

// Approve sets the allowance to an absolute amount, overwriting any prior
// value. The overwrite (rather than additive) semantics follow the base
// standard, including its known approve/transferFrom ordering caveat.
func (t *AllowanceTable) Approve(owner, spender Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return fmt.Errorf("%w: zero address", ErrInvalidSpender)
	}
	t.set(owner, spender, new(uint256.Int).Set(amount))
	return nil
}

// Increase raises the allowance by delta.
func (t *AllowanceTable) Increase(owner, spender Address, delta *uint256.Int) error {
	if spender.IsZero() {
		return fmt.Errorf("%w: zero address", ErrInvalidSpender)
	}
	current := t.Allowance(owner, spender)
	sum, overflow := new(uint256.Int).AddOverflow(current, delta)
	if overflow {
		return fmt.Errorf("%w: allowance of %s", ErrOverflow, spender)
	}
	t.set(owner, spender, sum)
	return nil
}

// Decrease lowers the allowance by delta. Decreasing below zero fails
// rather than clamping.
func (t *AllowanceTable) Decrease(owner, spender Address, delta *uint256.Int) error {
	if spender.IsZero() {
		return fmt.Errorf("%w: zero address", ErrInvalidSpender)
	}
	current := t.Allowance(owner, spender)
	if current.Cmp(delta) < 0 {
		return fmt.Errorf("%w: spender %s has %s, decrease by %s",
			ErrInsufficientAllowance, spender, current.Dec(), delta.Dec())
	}
	t.set(owner, spender, current.Sub(current, delta))
	return nil
}

// Spend consumes amount of the allowance. The Unlimited sentinel is left
// unchanged.
func (t *AllowanceTable) Spend(owner, spender Address, amount *uint256.Int) error {
	current := t.Allowance(owner, spender)
	if current.Cmp(amount) < 0 {
		return fmt.Errorf("%w: spender %s has %s, needs %s",
			ErrInsufficientAllowance, spender, current.Dec(), amount.Dec())
	}
	if current.Eq(Unlimited) {
		return nil
	}
	t.set(owner, spender, current.Sub(current, amount))
	return nil
}

func (t *AllowanceTable) set(owner, spender Address, amount *uint256.Int) {
	row, ok := t.grants[owner]
	if amount.IsZero() {
		if ok {
			delete(row, spender)
			if len(row) == 0 {
				delete(t.grants, owner)
			}
		}
		return
	}
	if !ok {
		row = make(map[Address]*uint256.Int)
		t.grants[owner] = row
	}
	row[spender] = amount
}
