package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Profile errors
	ErrMsgProfileNotFound   = "profile not found"
	ErrMsgInvalidProfileTag = "invalid profile tag"
	ErrMsgNegativeGemDelta  = "gem delta must not be negative"

	// Artifact errors
	ErrMsgArtifactNotFound = "artifact not found"

	// Gacha errors
	ErrMsgInvalidWishCount = "invalid wish count"

	// Reward errors
	ErrMsgUnknownCommission = "unknown commission"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
// Insufficient gems, repeated claims and capped talents are not errors; they are
// reported as a false result by the operation that hit them.
var (
	// Profile errors
	ErrProfileNotFound   = errors.New(ErrMsgProfileNotFound)
	ErrInvalidProfileTag = errors.New(ErrMsgInvalidProfileTag)
	ErrNegativeGemDelta  = errors.New(ErrMsgNegativeGemDelta)

	// Artifact errors
	ErrArtifactNotFound = errors.New(ErrMsgArtifactNotFound)

	// Gacha errors
	ErrInvalidWishCount = errors.New(ErrMsgInvalidWishCount)

	// Reward errors
	ErrUnknownCommission = errors.New(ErrMsgUnknownCommission)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
