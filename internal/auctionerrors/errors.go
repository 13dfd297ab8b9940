package auctionerrors

import (
	"errors"
	"fmt"
)

// Bidding engine errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrAuctionClosed   = errors.New("auction has ended")
	ErrInvalidAmount   = errors.New("invalid bid amount")
	ErrBidTooLow       = errors.New("bid amount too low")
)

// Session manager errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistrationFailed = errors.New("registration failed")
)

// BidTooLowError carries the minimum amount the rejected bid needed to clear.
// It matches ErrBidTooLow under errors.Is.
type BidTooLowError struct {
	Required int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid amount too low, minimum next bid is %d", e.Required)
}

func (e *BidTooLowError) Unwrap() error {
	return ErrBidTooLow
}
