package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrNoBids        = errors.New("no bids found for auction")
)

// Business rule rejections. Each maps to a stable HTTP status in the
// transport helpers.
var (
	ErrValidation   = errors.New("invalid input")
	ErrPrecondition = errors.New("operation not allowed in current state")
	ErrUnauthorized = errors.New("actor not permitted")
	ErrBidTooLow    = errors.New("bid amount too low")
	ErrBidTooHigh   = errors.New("bid exceeds maximum limit")
)

// System-level errors
var (
	// ErrContention means a conditional update lost its race too many
	// times; the caller may retry.
	ErrContention = errors.New("update contention, retry")
	// ErrExternalService wraps payment processor failures. State is never
	// advanced when this is returned.
	ErrExternalService = errors.New("external service failure")
)
