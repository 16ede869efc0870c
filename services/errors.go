package services

import "errors"

// Sentinel errors translated by the handlers into HTTP statuses.
var (
	// ErrNotFound means a referenced entity does not exist (404).
	ErrNotFound = errors.New("not found")
	// ErrValidation means the input is missing or malformed (400).
	ErrValidation = errors.New("invalid input")
	// ErrAlreadyApplied means the user already has a seller application (400).
	ErrAlreadyApplied = errors.New("seller application already exists")
	// ErrNotPending means a seller approval targeted a user without a
	// pending application (400).
	ErrNotPending = errors.New("no pending seller application")
	// ErrInvalidOtp covers every OTP verification failure. Callers cannot
	// distinguish an unknown email from a wrong or expired code.
	ErrInvalidOtp = errors.New("invalid or expired OTP")
	// ErrAlreadyAssigned means the order already has a delivery man (400).
	ErrAlreadyAssigned = errors.New("order already assigned")
	// ErrNoCapacity means the delivery man is unavailable or at the
	// assignment limit (400).
	ErrNoCapacity = errors.New("delivery man not eligible for assignment")
)
