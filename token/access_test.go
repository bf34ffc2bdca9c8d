package token

import (
	"errors"
	"testing"
)

func TestAccessControl(t *testing.T) {
	authority := AddressFromUint64(7)
	stranger := AddressFromUint64(8)
	ac := NewAccessControl(authority)

	for _, capability := range []Capability{CapabilityMint, CapabilityPause} {
		t.Run(capability.String(), func(t *testing.T) {
			if err := ac.Authorize(authority, capability); err != nil {
				t.Errorf("authority rejected: %v", err)
			}
			err := ac.Authorize(stranger, capability)
			if !errors.Is(err, ErrUnauthorized) {
				t.Errorf("stranger error = %v, want ErrUnauthorized", err)
			}
		})
	}

	// The null identity never holds a capability, even if configured.
	ac = NewAccessControl(ZeroAddress)
	err := ac.Authorize(ZeroAddress, CapabilityMint)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("zero authority error = %v, want ErrUnauthorized", err)
	}
}
