package token

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Ledger maps accounts to balances and tracks total supply.
// Accounts are created implicitly on first credit; a zero balance is
// indistinguishable from an absent one. The ledger maintains the
// conservation invariant: the sum of all balances equals total supply.
type Ledger struct {
	balances map[Address]*uint256.Int
	supply   *uint256.Int
}

// NewLedger creates an empty ledger with zero supply.
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[Address]*uint256.Int),
		supply:   new(uint256.Int),
	}
}

// BalanceOf returns the balance of an account. Unknown accounts have a
// zero balance, never an error.
func (l *Ledger) BalanceOf(account Address) *uint256.Int {
	if b, ok := l.balances[account]; ok {
		return new(uint256.Int).Set(b)
	}
	return new(uint256.Int)
}

// TotalSupply returns the current total supply.
func (l *Ledger) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(l.supply)
}

// Credit adds amount to an account's balance. Total supply is untouched;
// supply accounting happens only on the mint and burn paths.
func (l *Ledger) Credit(account Address, amount *uint256.Int) error {
	current := l.BalanceOf(account)
	sum, overflow := new(uint256.Int).AddOverflow(current, amount)
	if overflow {
		return fmt.Errorf("%w: balance of %s", ErrOverflow, account)
	}
	l.setBalance(account, sum)
	return nil
}

// Debit removes amount from an account's balance.
func (l *Ledger) Debit(account Address, amount *uint256.Int) error {
	current := l.BalanceOf(account)
	if current.Cmp(amount) < 0 {
		return fmt.Errorf("%w: account %s has %s, needs %s",
			ErrInsufficientBalance, account, current.Dec(), amount.Dec())
	}
	l.setBalance(account, current.Sub(current, amount))
	return nil
}

// Move atomically debits from and credits to. A self-transfer is a no-op
// that still requires sufficient balance. Either both sides apply or
// neither does.
func (l *Ledger) Move(from, to Address, amount *uint256.Int) error {
	fromBalance := l.BalanceOf(from)
	if fromBalance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: account %s has %s, needs %s",
			ErrInsufficientBalance, from, fromBalance.Dec(), amount.Dec())
	}
	if from == to {
		return nil
	}
	// Credit cannot overflow while conservation holds: the destination
	// balance plus amount is bounded by total supply. Checked anyway.
	toBalance := l.BalanceOf(to)
	sum, overflow := new(uint256.Int).AddOverflow(toBalance, amount)
	if overflow {
		return fmt.Errorf("%w: balance of %s", ErrOverflow, to)
	}
	l.setBalance(from, fromBalance.Sub(fromBalance, amount))
	l.setBalance(to, sum)
	return nil
}

// Mint credits an account and grows total supply by the same amount.
func (l *Ledger) Mint(account Address, amount *uint256.Int) error {
	sum, overflow := new(uint256.Int).AddOverflow(l.supply, amount)
	if overflow {
		return fmt.Errorf("%w: total supply", ErrOverflow)
	}
	if err := l.Credit(account, amount); err != nil {
		return err
	}
	l.supply = sum
	return nil
}

// Burn debits an account and shrinks total supply by the same amount.
func (l *Ledger) Burn(account Address, amount *uint256.Int) error {
	diff, underflow := new(uint256.Int).SubOverflow(l.supply, amount)
	if underflow {
		return fmt.Errorf("%w: total supply", ErrUnderflow)
	}
	if err := l.Debit(account, amount); err != nil {
		return err
	}
	l.supply = diff
	return nil
}

// Balances returns a copy of every non-zero balance.
func (l *Ledger) Balances() map[Address]*uint256.Int {
	out := make(map[Address]*uint256.Int, len(l.balances))
	for a, b := range l.balances {
		out[a] = new(uint256.Int).Set(b)
	}
	return out
}

// Conserved reports whether the sum of all balances equals total supply.
func (l *Ledger) Conserved() bool {
	sum := new(uint256.Int)
	for _, b := range l.balances {
		var overflow bool
		sum, overflow = new(uint256.Int).AddOverflow(sum, b)
		if overflow {
			return false
		}
	}
	return sum.Eq(l.supply)
}

// Clone creates a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	clone := NewLedger()
	clone.supply.Set(l.supply)
	for a, b := range l.balances {
		clone.balances[a] = new(uint256.Int).Set(b)
	}
	return clone
}

func (l *Ledger) setBalance(account Address, balance *uint256.Int) {
	if balance.IsZero() {
		delete(l.balances, account)
		return
	}
	l.balances[account] = balance
}
