package token

import "fmt"

// Capability names a class of privileged operation.
type Capability int

const (
	CapabilityMint Capability = iota
	CapabilityPause
)

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case CapabilityMint:
		return "mint"
	case CapabilityPause:
		return "pause"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// AccessControl resolves caller authorization for privileged operations.
// One fixed authority per capability; no delegation, no role hierarchy.
type AccessControl struct {
	authorities map[Capability]Address
}

// NewAccessControl grants every capability to a single authority.
func NewAccessControl(authority Address) *AccessControl {
	return &AccessControl{
		authorities: map[Capability]Address{
			CapabilityMint:  authority,
			CapabilityPause: authority,
		},
	}
}

// Authorize checks the caller against the configured authority for the
// capability.
func (ac *AccessControl) Authorize(caller Address, capability Capability) error {
	authority, ok := ac.authorities[capability]
	if !ok || caller != authority || caller.IsZero() {
		return fmt.Errorf("%w: %s requires the %s authority",
			ErrUnauthorized, caller, capability)
	}
	return nil
}
