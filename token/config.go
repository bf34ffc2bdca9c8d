package token

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Config carries the construction-time options of a token instance.
// Name, Symbol and Decimals are display metadata with no accounting effect.
type Config struct {
	Name     string
	Symbol   string
	Decimals uint8

	// Cap is the immutable upper bound on total supply. Nil means uncapped.
	Cap *uint256.Int

	// Authority is granted the mint and pause capabilities.
	Authority Address
}

// validate rejects configurations that can never produce a working token.
func (c Config) validate() error {
	if c.Cap != nil && c.Cap.IsZero() {
		return fmt.Errorf("%w: cap must be positive", ErrInvalidCap)
	}
	return nil
}
