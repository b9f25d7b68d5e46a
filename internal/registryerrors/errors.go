// Package registryerrors is the error taxonomy shared by every layer.
// Callers test with errors.Is; layers wrap with %w.
package registryerrors

import "errors"

// Repository-level errors
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrNoBids   = errors.New("no bids found for auction")
)

// Lifecycle errors
var (
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnauthorized      = errors.New("unauthorized")
)

// business logic errors
var (
	ErrInvalidBid       = errors.New("invalid bid")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrAuctionNotActive = errors.New("auction not active")
	ErrInvalidItem      = errors.New("invalid item")
	ErrInvalidLot       = errors.New("invalid lot")
	ErrInvalidSchedule  = errors.New("invalid auction schedule")
	ErrInvalidQuery     = errors.New("invalid query")
)
