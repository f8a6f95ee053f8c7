package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Shareholder errors
var (
	ErrShareholderHasShares   = errors.New("shareholders that still own shares cannot be deleted")
	ErrShareholderEmailExists = errors.New("a shareholder with this email address already exists")
)

// Schedule generation errors
var ErrInvalidConfiguration = errors.New("the share configuration does not result in a valid installment schedule")

// Payment errors
var (
	ErrPaymentNotPositive    = errors.New("payment amounts must be larger than zero")
	ErrPaymentExceedsBalance = errors.New("the payment amount is larger than the balance of the installment")
)
