// Package bioerr defines the error kinds shared by the sequence and quality
// packages. Each typed error unwraps to one sentinel so callers can match the
// kind with errors.Is and read the details with errors.As.
package bioerr

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	ErrOutOfRange      = errors.New("value out of range")
	ErrNotInDomain     = errors.New("byte not in domain")
	ErrEmptyInput      = errors.New("empty input")
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrScoreOutOfRange = errors.New("score out of range")
)

// OutOfRangeError is returned when a raw value fails a domain constructor.
type OutOfRangeError struct {
	Given int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value %d out of range [%d, %d]", e.Given, e.Min, e.Max)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// NotInDomainError is returned when a byte is not a member of the charset an
// operation requires. Position is -1 when the byte was checked on its own.
type NotInDomainError struct {
	Byte     byte
	Position int
	Domain   string
}

func (e *NotInDomainError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("byte %q (%d) not in %s", e.Byte, e.Byte, e.Domain)
	}
	return fmt.Sprintf("byte %q (%d) at position %d not in %s", e.Byte, e.Byte, e.Position, e.Domain)
}

func (e *NotInDomainError) Unwrap() error { return ErrNotInDomain }

// LengthMismatchError is returned when two slices must have equal length.
type LengthMismatchError struct {
	Left  int
	Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: %d != %d", e.Left, e.Right)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// ScoreOutOfRangeError is returned when a quality score cannot be encoded.
type ScoreOutOfRangeError struct {
	Score    int
	Min      int
	Max      int
	Encoding string
}

func (e *ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("score %d out of range [%d, %d] for %s", e.Score, e.Min, e.Max, e.Encoding)
}

func (e *ScoreOutOfRangeError) Unwrap() error { return ErrScoreOutOfRange }
