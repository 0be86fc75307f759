package loan

import "errors"

var (
	ErrInvalidLoanTerm  = errors.New("loan term must be a whole number of years between 1 and 30")
	ErrInvalidPrincipal = errors.New("loan amount must be at least 100000")
	ErrAgeIneligible    = errors.New("applicant is not eligible for this loan")
	ErrExceedsSanction  = errors.New("loan amount exceeds the sanctioned amount")
	ErrCorruptSchedule  = errors.New("corrupt schedule file")
)
