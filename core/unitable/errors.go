package unitable

import (
	"fmt"

	"github.com/npillmayer/psfgen/core"
)

// ParseError describes a syntax error in a Unicode table file. Line and
// column are 1-based.
type ParseError struct {
	Line, Col int
	Msg       string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("unicode table: line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

func (e ParseError) ErrorCode() int      { return core.EINVALID }
func (e ParseError) UserMessage() string { return e.Error() }

// InvalidCodepointError is returned for a codepoint token whose value is
// not a valid Unicode scalar value, e.g. a surrogate or a value beyond
// U+10FFFF.
type InvalidCodepointError struct {
	Value uint32
}

func (e InvalidCodepointError) Error() string {
	return fmt.Sprintf("unicode table: U+%04X is not a valid Unicode scalar value", e.Value)
}

func (e InvalidCodepointError) ErrorCode() int      { return core.EINVALID }
func (e InvalidCodepointError) UserMessage() string { return e.Error() }

// IntParseError wraps a failure to read the hex digits of a codepoint
// token.
type IntParseError struct {
	Token string
	Err   error
}

func (e IntParseError) Error() string {
	return fmt.Sprintf("unicode table: cannot parse codepoint %q: %v", e.Token, e.Err)
}

func (e IntParseError) Unwrap() error       { return e.Err }
func (e IntParseError) ErrorCode() int      { return core.EINVALID }
func (e IntParseError) UserMessage() string { return e.Error() }

var (
	_ core.AppError = ParseError{}
	_ core.AppError = InvalidCodepointError{}
	_ core.AppError = IntParseError{}
)
