package syntax

import (
	"errors"
	"fmt"
)

// Common syntax errors
var (
	// ErrInvalidPattern is matched by every error returned from Parse.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrMissingParen indicates a '(' without a matching ')'
	ErrMissingParen = errors.New("missing closing )")

	// ErrUnexpectedParen indicates a ')' without a matching '('
	ErrUnexpectedParen = errors.New("unexpected )")

	// ErrMissingBracket indicates a '[' without a matching ']'
	ErrMissingBracket = errors.New("missing closing ]")

	// ErrInvalidRepeat indicates a {n,m} body that is not an integer or integer pair
	ErrInvalidRepeat = errors.New("invalid repetition bounds")

	// ErrRepeatRange indicates a {n,m} quantifier with m < n
	ErrRepeatRange = errors.New("invalid repetition range: max less than min")

	// ErrRepeatTooLarge indicates a repetition bound above MaxRepeat
	ErrRepeatTooLarge = errors.New("repetition bound too large")

	// ErrInvalidClassRange indicates a class range such as z-a
	ErrInvalidClassRange = errors.New("invalid character class range")

	// ErrTrailingBackslash indicates a pattern ending in a lone '\'
	ErrTrailingBackslash = errors.New("trailing backslash at end of pattern")

	// ErrInvalidBackref indicates a backreference to a group that does not exist
	ErrInvalidBackref = errors.New("backreference to undefined group")
)

// Error describes a pattern that could not be compiled.
type Error struct {
	Pattern string
	// Offset is the byte offset in Pattern where the problem was detected.
	Offset int
	Err    error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("error parsing pattern %q at offset %d: %v", e.Pattern, e.Offset, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidPattern for every syntax error.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidPattern
}
