package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/nncalc/internal/natural"
)

// Error is returned when the engine refuses an operation.
//
// Refusals are contract violations by the caller: a boundary layer that
// consults Flags before offering an action never sees one. The registers
// are untouched whenever an Error is returned.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op is the operation that was refused.
	Op Op

	// Message is a human-readable description.
	Message string

	// Err is the underlying arithmetic error, if any.
	Err error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeIllegalOperation indicates the operation's legality flag was false.
	ErrCodeIllegalOperation ErrorCode = "ILLEGAL_OPERATION"

	// ErrCodeRangeConversion indicates bottom does not fit the bounded
	// exponent type used by power and root.
	ErrCodeRangeConversion ErrorCode = "RANGE_CONVERSION"

	// ErrCodeInvalidDigit indicates a digit outside [0, 9].
	ErrCodeInvalidDigit ErrorCode = "INVALID_DIGIT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
}

// Unwrap returns the underlying arithmetic error.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the ErrorCode carried by err, or "" when err is not an
// engine error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsIllegalOperation reports whether err is an illegal-operation refusal.
func IsIllegalOperation(err error) bool {
	return CodeOf(err) == ErrCodeIllegalOperation
}

// IsRangeConversion reports whether err is an exponent range refusal.
func IsRangeConversion(err error) bool {
	return CodeOf(err) == ErrCodeRangeConversion
}

// IsInvalidDigit reports whether err is an invalid digit refusal.
func IsInvalidDigit(err error) bool {
	return CodeOf(err) == ErrCodeInvalidDigit
}

func newIllegalError(op Op, message string, err error) *Error {
	return &Error{Code: ErrCodeIllegalOperation, Op: op, Message: message, Err: err}
}

func newRangeError(op Op) *Error {
	return &Error{
		Code:    ErrCodeRangeConversion,
		Op:      op,
		Message: fmt.Sprintf("bottom exceeds %d", MaxExponent),
	}
}

func newDigitError(d int, err error) *Error {
	return &Error{
		Code:    ErrCodeInvalidDigit,
		Op:      OpDigit,
		Message: fmt.Sprintf("digit %d out of range [0, 9]", d),
		Err:     err,
	}
}

// CheckDigit returns an INVALID_DIGIT error when d is outside [0, 9].
func CheckDigit(d int) error {
	if d < 0 || d > 9 {
		return newDigitError(d, natural.ErrInvalidDigit)
	}
	return nil
}
