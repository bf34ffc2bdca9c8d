// Package token implements a fungible-token ledger: ERC20 accounting plus
// burnable, pausable and capped behavior. Extensions compose through an
// ordered guard chain rather than method overriding; the facade owns all
// operation sequencing.
package token

import (
	"sync"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// Token is the public operation set over one contract instance's state.
// Every mutating operation follows the same sequence: resolve caller ->
// run the guard chain -> mutate ledger/allowances -> emit one event.
// Any failure aborts with no partial state change.
//
// Calls are serialized; the host runtime model is one call at a time per
// instance.
type Token struct {
	mu sync.Mutex

	config     Config
	ledger     *Ledger
	allowances *AllowanceTable
	access     *AccessControl
	chain      Chain

	paused   bool
	sequence uint64
	emitter  Emitter
}

// New creates a token instance from construction-time configuration.
func New(cfg Config) (*Token, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Cap != nil {
		cfg.Cap = new(uint256.Int).Set(cfg.Cap)
	}
	return &Token{
		config:     cfg,
		ledger:     NewLedger(),
		allowances: NewAllowanceTable(),
		access:     NewAccessControl(cfg.Authority),
		chain:      Chain{PauseGuard{}, CapGuard{}},
	}, nil
}

// SetEmitter installs the change-notification sink. Pass nil to disable
// emission.
func (t *Token) SetEmitter(e Emitter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emitter = e
}

// Name returns the display name.
func (t *Token) Name() string { return t.config.Name }

// Symbol returns the display symbol.
func (t *Token) Symbol() string { return t.config.Symbol }

// Decimals returns the display decimal count.
func (t *Token) Decimals() uint8 { return t.config.Decimals }

// Cap returns the supply ceiling, or nil when uncapped.
func (t *Token) Cap() *uint256.Int {
	if t.config.Cap == nil {
		return nil
	}
	return new(uint256.Int).Set(t.config.Cap)
}

// TotalSupply returns the current total supply.
func (t *Token) TotalSupply() *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.TotalSupply()
}

// BalanceOf returns the balance of an account.
func (t *Token) BalanceOf(account Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.BalanceOf(account)
}

// Balances returns a copy of every non-zero balance.
func (t *Token) Balances() map[Address]*uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Balances()
}

// Allowance returns the limit granted by owner to spender.
func (t *Token) Allowance(owner, spender Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allowances.Allowance(owner, spender)
}

// Paused reports whether the pause flag is set.
func (t *Token) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// Transfer moves amount from the caller to another account.
func (t *Token) Transfer(caller, to Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if to.IsZero() {
		return ErrInvalidRecipient
	}
	if err := t.chain.Check(OpTransfer, t.guardContext(caller, to, amount)); err != nil {
		return err
	}
	if err := t.ledger.Move(caller, to, amount); err != nil {
		return err
	}
	t.emit(Event{Kind: KindTransfer, From: caller, To: to, Amount: new(uint256.Int).Set(amount)})
	return nil
}

// Approve sets the allowance of spender over the caller's tokens to an
// absolute amount. Approvals are permitted while paused; they move no
// value.
func (t *Token) Approve(caller, spender Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.chain.Check(OpApprove, t.guardContext(caller, spender, amount)); err != nil {
		return err
	}
	if err := t.allowances.Approve(caller, spender, amount); err != nil {
		return err
	}
	t.emit(Event{Kind: KindApproval, Owner: caller, Spender: spender, Amount: new(uint256.Int).Set(amount)})
	return nil
}

// IncreaseAllowance raises the spender's allowance by delta and emits an
// approval carrying the new absolute value.
func (t *Token) IncreaseAllowance(caller, spender Address, delta *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.chain.Check(OpApprove, t.guardContext(caller, spender, delta)); err != nil {
		return err
	}
	if err := t.allowances.Increase(caller, spender, delta); err != nil {
		return err
	}
	t.emit(Event{Kind: KindApproval, Owner: caller, Spender: spender, Amount: t.allowances.Allowance(caller, spender)})
	return nil
}

// DecreaseAllowance lowers the spender's allowance by delta. Decreasing
// below zero fails rather than clamping.
func (t *Token) DecreaseAllowance(caller, spender Address, delta *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.chain.Check(OpApprove, t.guardContext(caller, spender, delta)); err != nil {
		return err
	}
	if err := t.allowances.Decrease(caller, spender, delta); err != nil {
		return err
	}
	t.emit(Event{Kind: KindApproval, Owner: caller, Spender: spender, Amount: t.allowances.Allowance(caller, spender)})
	return nil
}

// TransferFrom moves amount from owner to another account, consuming the
// caller's allowance. The balance is validated before the allowance is
// consumed so a failing move cannot leave a partial spend.
func (t *Token) TransferFrom(caller, owner, to Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if to.IsZero() {
		return ErrInvalidRecipient
	}
	if err := t.chain.Check(OpTransferFrom, t.guardContext(owner, to, amount)); err != nil {
		return err
	}
	if balance := t.ledger.BalanceOf(owner); balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := t.allowances.Spend(owner, caller, amount); err != nil {
		return err
	}
	if err := t.ledger.Move(owner, to, amount); err != nil {
		return err
	}
	// Spender is recorded so a replay can re-consume the allowance.
	t.emit(Event{Kind: KindTransfer, From: owner, To: to, Spender: caller, Amount: new(uint256.Int).Set(amount)})
	return nil
}

// Mint creates amount new tokens for an account. Requires the mint
// authority; the cap guard bounds the resulting supply.
func (t *Token) Mint(caller, to Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.access.Authorize(caller, CapabilityMint); err != nil {
		return err
	}
	if to.IsZero() {
		return ErrInvalidRecipient
	}
	if err := t.chain.Check(OpMint, t.guardContext(ZeroAddress, to, amount)); err != nil {
		return err
	}
	if err := t.ledger.Mint(to, amount); err != nil {
		return err
	}
	t.emit(Event{Kind: KindTransfer, From: ZeroAddress, To: to, Amount: new(uint256.Int).Set(amount)})
	return nil
}

// Burn destroys amount of the caller's tokens, lowering total supply.
func (t *Token) Burn(caller Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.burn(caller, amount)
}

// BurnFrom destroys amount of owner's tokens, consuming the caller's
// allowance first.
func (t *Token) BurnFrom(caller, owner Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if owner.IsZero() {
		return ErrInvalidSpender
	}
	if err := t.chain.Check(OpBurn, t.guardContext(owner, ZeroAddress, amount)); err != nil {
		return err
	}
	if balance := t.ledger.BalanceOf(owner); balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := t.allowances.Spend(owner, caller, amount); err != nil {
		return err
	}
	if err := t.ledger.Burn(owner, amount); err != nil {
		return err
	}
	t.emit(Event{Kind: KindTransfer, From: owner, To: ZeroAddress, Spender: caller, Amount: new(uint256.Int).Set(amount)})
	return nil
}

func (t *Token) burn(account Address, amount *uint256.Int) error {
	if account.IsZero() {
		return ErrInvalidSpender
	}
	if err := t.chain.Check(OpBurn, t.guardContext(account, ZeroAddress, amount)); err != nil {
		return err
	}
	if err := t.ledger.Burn(account, amount); err != nil {
		return err
	}
	t.emit(Event{Kind: KindTransfer, From: account, To: ZeroAddress, Amount: new(uint256.Int).Set(amount)})
	return nil
}

// Pause sets the global transfer freeze. Requires the pause authority.
// Pausing an already-paused instance is an error, not a silent success.
func (t *Token) Pause(caller Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.access.Authorize(caller, CapabilityPause); err != nil {
		return err
	}
	if t.paused {
		return ErrAlreadyPaused
	}
	t.paused = true
	t.emit(Event{Kind: KindPaused, From: caller})
	return nil
}

// Unpause lifts the global transfer freeze. Requires the pause authority.
func (t *Token) Unpause(caller Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.access.Authorize(caller, CapabilityPause); err != nil {
		return err
	}
	if !t.paused {
		return ErrAlreadyUnpaused
	}
	t.paused = false
	t.emit(Event{Kind: KindUnpaused, From: caller})
	return nil
}

// Apply replays a previously emitted event against this instance's state.
// Replay bypasses guards, authorization and emission: the event was
// validated when it was first emitted. Used to rebuild state from a
// persisted stream.
func (t *Token) Apply(e Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e.Kind {
	case KindTransfer:
		switch {
		case e.From.IsZero():
			if err := t.ledger.Mint(e.To, e.Amount); err != nil {
				return err
			}
		case e.To.IsZero():
			if err := t.ledger.Burn(e.From, e.Amount); err != nil {
				return err
			}
		default:
			if err := t.ledger.Move(e.From, e.To, e.Amount); err != nil {
				return err
			}
		}
		// Delegated transfers carry the spender; re-consume the allowance.
		if !e.From.IsZero() && !e.Spender.IsZero() {
			if err := t.allowances.Spend(e.From, e.Spender, e.Amount); err != nil {
				return err
			}
		}
	case KindApproval:
		if err := t.allowances.Approve(e.Owner, e.Spender, e.Amount); err != nil {
			return err
		}
	case KindPaused:
		t.paused = true
	case KindUnpaused:
		t.paused = false
	}
	t.sequence = e.Sequence
	return nil
}

// guardContext snapshots the state guards may inspect. Callers hold t.mu.
func (t *Token) guardContext(from, to Address, amount *uint256.Int) *GuardContext {
	return &GuardContext{
		Paused: t.paused,
		Supply: t.ledger.TotalSupply(),
		Cap:    t.config.Cap,
		Amount: amount,
		From:   from,
		To:     to,
	}
}

// emit publishes one change notification. Callers hold t.mu and call emit
// only after every mutation for the operation has succeeded.
func (t *Token) emit(e Event) {
	t.sequence++
	e.ID = uuid.NewString()
	e.Sequence = t.sequence
	if t.emitter != nil {
		t.emitter.Emit(e)
	}
}
