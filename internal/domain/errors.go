package domain

import "errors"

// Sentinel errors shared by every layer. Use cases wrap them with
// fmt.Errorf("%w: ...") so callers can branch with errors.Is while the
// message keeps the human-readable detail.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrConflict               = errors.New("conflict")
)
