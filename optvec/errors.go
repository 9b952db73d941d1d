package optvec

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned (or panicked) when an index is not below RawLen.
	ErrOutOfRange = errors.New("optvec: index out of range")
	// ErrEmptySlot is returned (or panicked) when an index addresses an empty slot.
	ErrEmptySlot = errors.New("optvec: slot is empty")
)

// IndexError describes a rejected index.
//
// The kind of failure (ErrOutOfRange or ErrEmptySlot) can be matched with
// errors.Is.
type IndexError struct {
	Op    string
	Index int
	Len   int
	cause error
}

func (e *IndexError) Error() string {
	if errors.Is(e.cause, ErrOutOfRange) {
		return fmt.Sprintf("optvec: %s: index %d out of range [0:%d]", e.Op, e.Index, e.Len)
	}
	return fmt.Sprintf("optvec: %s: slot %d is empty", e.Op, e.Index)
}

func (e *IndexError) Unwrap() error { return e.cause }

func outOfRange(op string, i, n int) *IndexError {
	return &IndexError{Op: op, Index: i, Len: n, cause: ErrOutOfRange}
}

func emptySlot(op string, i, n int) *IndexError {
	return &IndexError{Op: op, Index: i, Len: n, cause: ErrEmptySlot}
}
