package token

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the byte length of an account identifier.
const AddressLength = 20

// Address identifies an account. The zero value is the null identity,
// which is never a valid participant in a transfer or approval.
type Address [AddressLength]byte

// ZeroAddress is the null identity.
var ZeroAddress = Address{}

// IsZero reports whether a is the null identity.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String returns the 0x-prefixed hex form of the address.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress parses a 0x-prefixed or bare hex address.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroAddress, fmt.Errorf("token: invalid address %q: %w", s, err)
	}
	if len(b) != AddressLength {
		return ZeroAddress, fmt.Errorf("token: invalid address length %d", len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// AddressFromUint64 builds an address from a small integer.
// Handy for tests and simulations where real key material is irrelevant.
func AddressFromUint64(n uint64) Address {
	var a Address
	for i := AddressLength - 1; n > 0; i-- {
		a[i] = byte(n)
		n >>= 8
	}
	return a
}
