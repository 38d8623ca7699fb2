package at

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLine is returned when a line holds nothing but whitespace.
	ErrEmptyLine = errors.New("empty line")

	// ErrMissingPrefix is returned when a command line does not start with AT.
	ErrMissingPrefix = errors.New("missing AT prefix")

	// ErrUnknownExtension is returned when the character following the AT
	// prefix is neither the extension marker nor a basic command letter.
	ErrUnknownExtension = errors.New("unknown extension character")

	// ErrMissingName is returned when no command name follows the prefix.
	ErrMissingName = errors.New("missing command name")

	// ErrUnterminatedString is returned when a quoted string is not closed
	// before the end of the line.
	ErrUnterminatedString = errors.New("unterminated quoted string")

	// ErrUnbalancedGroup is returned when parentheses of an argument group
	// do not match up.
	ErrUnbalancedGroup = errors.New("unbalanced argument group")

	// ErrTrailingCharacters is returned when input remains after a complete
	// command or response.
	ErrTrailingCharacters = errors.New("unexpected trailing characters")

	// ErrNoMatchingRule is returned when the input fits none of the
	// command or argument forms.
	ErrNoMatchingRule = errors.New("no matching grammar rule")
)

// ParseError describes where and why a line could not be parsed.
type ParseError struct {
	Line   string
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at: parse %q: %v at offset %d", e.Line, e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
