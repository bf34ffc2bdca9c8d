package token

import "errors"

var (
	// Arithmetic errors
	ErrOverflow  = errors.New("token: arithmetic overflow")
	ErrUnderflow = errors.New("token: arithmetic underflow")

	// Funds and permission errors
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")

	// Identity errors
	ErrInvalidSpender   = errors.New("token: invalid spender")
	ErrInvalidRecipient = errors.New("token: invalid recipient")

	// Policy errors
	ErrPaused      = errors.New("token: contract paused")
	ErrCapExceeded = errors.New("token: cap exceeded")

	// Authorization errors
	ErrUnauthorized = errors.New("token: unauthorized")

	// Pause toggle errors
	ErrAlreadyPaused   = errors.New("token: already paused")
	ErrAlreadyUnpaused = errors.New("token: already unpaused")

	// Configuration errors
	ErrInvalidCap = errors.New("token: invalid cap")
)
