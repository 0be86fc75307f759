package banking

import "errors"

// Store errors.
var (
	ErrNotFound          = errors.New("record not found")
	ErrIOUnavailable     = errors.New("ledger file unavailable")
	ErrRecordLocked      = errors.New("ledger file is locked by another process")
	ErrCorruptLedger     = errors.New("corrupt ledger file")
	ErrDuplicateKey      = errors.New("account number already exists")
	ErrDuplicatePhone    = errors.New("phone number already registered")
	ErrUnknownField      = errors.New("unknown field")
	ErrImmutableField    = errors.New("field cannot be updated")
	ErrInvalidValue      = errors.New("invalid field value")
	ErrKeySpaceExhausted = errors.New("no free account number left")
)

// Account operation errors.
var (
	ErrUnderage            = errors.New("account holder is under age")
	ErrBelowMinimum        = errors.New("amount is below the minimum")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
