// Package optvec provides OptVec, a growable slice whose indices stay stable
// across removals.
//
// Push returns the index a value was stored at. That index keeps addressing
// the same value until it is removed, no matter what else is pushed or
// removed in the meantime. Removal leaves an empty slot behind and records its
// index on a free stack; the next Push fills the most recently freed slot
// before growing the backing slice.
//
// Indices are not generational: once a slot is reused, an old index observes
// the new occupant. OptVec is not safe for concurrent use.
package optvec

import (
	"fmt"
	"slices"
	"strings"
)

// OptVec is a slice of optional slots with O(1) push, remove and indexed
// access. The zero value is an empty OptVec ready to use.
type OptVec[T any] struct {
	slots []Slot[T]
	free  []int
	live  int
}

// New creates an empty OptVec. Nothing is allocated until the first Push.
func New[T any]() *OptVec[T] {
	return &OptVec[T]{}
}

// WithCapacity creates an empty OptVec with room for at least n slots and n
// free indices. It panics if n is negative.
func WithCapacity[T any](n int) *OptVec[T] {
	return &OptVec[T]{
		slots: make([]Slot[T], 0, n),
		free:  make([]int, 0, n),
	}
}

// Len returns the number of occupied slots.
func (v *OptVec[T]) Len() int {
	return v.live
}

// RawLen returns the length of the backing store, empty slots included.
func (v *OptVec[T]) RawLen() int {
	return len(v.slots)
}

// FreeLen returns the number of empty slots waiting to be reused.
func (v *OptVec[T]) FreeLen() int {
	return len(v.free)
}

// Cap returns the capacity of the backing store plus the number of free
// slots: roughly how many values can be pushed before the backing store
// reallocates.
func (v *OptVec[T]) Cap() int {
	return cap(v.slots) + len(v.free)
}

// Push stores value and returns its index. The most recently freed slot is
// reused if there is one; otherwise the value is appended.
func (v *OptVec[T]) Push(value T) int {
	if n := len(v.free); n > 0 {
		i := v.free[n-1]
		v.free = v.free[:n-1]
		v.slots[i] = Occupied(value)
		v.live++
		return i
	}
	v.slots = append(v.slots, Occupied(value))
	v.live++
	return len(v.slots) - 1
}

// Pop removes the last slot of the backing store and returns its value.
// It returns false if the OptVec has no slots or the last slot was empty;
// in the latter case the slot is still removed and its index is taken off the
// free stack. That search runs from the top of the stack, so it is O(1) when
// the tail was the most recent removal and O(FreeLen) at worst.
func (v *OptVec[T]) Pop() (T, bool) {
	n := len(v.slots)
	if n == 0 {
		var zero T
		return zero, false
	}
	value, ok := v.slots[n-1].take()
	v.slots = v.slots[:n-1]
	if ok {
		v.live--
	} else {
		v.forget(n - 1)
	}
	return value, ok
}

// forget drops index i from the free stack. Used when the slot at i stops
// existing, so the stack never points past the end of the backing store.
func (v *OptVec[T]) forget(i int) {
	for j := len(v.free) - 1; j >= 0; j-- {
		if v.free[j] == i {
			v.free = slices.Delete(v.free, j, j+1)
			return
		}
	}
}

// Remove empties the slot at index i and returns the value it held. Removing
// an already empty slot returns false and changes nothing.
//
// Remove panics with an *IndexError if i is out of range, the same as At:
// only indices returned by Push are valid.
func (v *OptVec[T]) Remove(i int) (T, bool) {
	if i < 0 || i >= len(v.slots) {
		panic(outOfRange("remove", i, len(v.slots)))
	}
	if !v.slots[i].occupied {
		var zero T
		return zero, false
	}
	value, _ := v.slots[i].take()
	v.free = append(v.free, i)
	v.live--
	return value, true
}

// Has reports whether i addresses an occupied slot.
func (v *OptVec[T]) Has(i int) bool {
	return i >= 0 && i < len(v.slots) && v.slots[i].occupied
}

// At returns a pointer to the value at index i. The pointer is valid until
// the next call that grows the backing store.
//
// At panics with an *IndexError if i is out of range or the slot is empty.
func (v *OptVec[T]) At(i int) *T {
	if err := v.check("at", i); err != nil {
		panic(err)
	}
	return &v.slots[i].value
}

// Get returns the value at index i, or an *IndexError if i is out of range
// or the slot is empty.
func (v *OptVec[T]) Get(i int) (T, error) {
	if err := v.check("get", i); err != nil {
		var zero T
		return zero, err
	}
	return v.slots[i].value, nil
}

// Set replaces the value at index i. The slot must be occupied; Set never
// fills an empty slot, since that would bypass the free stack.
func (v *OptVec[T]) Set(i int, value T) error {
	if err := v.check("set", i); err != nil {
		return err
	}
	v.slots[i].value = value
	return nil
}

// MustSet is like Set but panics on error.
func (v *OptVec[T]) MustSet(i int, value T) {
	if err := v.Set(i, value); err != nil {
		panic(err)
	}
}

func (v *OptVec[T]) check(op string, i int) *IndexError {
	if i < 0 || i >= len(v.slots) {
		return outOfRange(op, i, len(v.slots))
	}
	if !v.slots[i].occupied {
		return emptySlot(op, i, len(v.slots))
	}
	return nil
}

// Grow makes room for at least n more appended slots. It panics if n is
// negative.
func (v *OptVec[T]) Grow(n int) {
	v.slots = slices.Grow(v.slots, n)
}

// Clear removes every slot. Allocated capacity is kept.
func (v *OptVec[T]) Clear() {
	clear(v.slots)
	v.slots = v.slots[:0]
	v.free = v.free[:0]
	v.live = 0
}

// IntoSlice returns the occupied values in backing-store order and leaves v
// empty. Index information is discarded.
func (v *OptVec[T]) IntoSlice() []T {
	out := make([]T, 0, v.live)
	for _, s := range v.slots {
		if s.occupied {
			out = append(out, s.value)
		}
	}
	v.slots = nil
	v.free = nil
	v.live = 0
	return out
}

// Clone returns a shallow copy of v, free stack order included.
func (v *OptVec[T]) Clone() *OptVec[T] {
	return &OptVec[T]{
		slots: slices.Clone(v.slots),
		free:  slices.Clone(v.free),
		live:  v.live,
	}
}

// Equal reports whether a and b have the same slots and the same free stack.
// Two OptVecs that hold the same values but would reuse slots in a different
// order are not equal. A nil OptVec is equal only to nil.
func Equal[T comparable](a, b *OptVec[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.live != b.live || !slices.Equal(a.free, b.free) {
		return false
	}
	return slices.EqualFunc(a.slots, b.slots, func(x, y Slot[T]) bool {
		return x.occupied == y.occupied && (!x.occupied || x.value == y.value)
	})
}

// String renders the backing store with "_" for empty slots, e.g. "[1 _ 3]".
func (v *OptVec[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range v.slots {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if s.occupied {
			fmt.Fprint(&sb, s.value)
		} else {
			sb.WriteByte('_')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
