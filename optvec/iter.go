package optvec

import "iter"

// All returns an iterator over every slot in backing-store order, empty slots
// included.
func (v *OptVec[T]) All() iter.Seq2[int, Slot[T]] {
	return func(yield func(int, Slot[T]) bool) {
		for i, s := range v.slots {
			if !yield(i, s) {
				return
			}
		}
	}
}

// AllMut yields every index in backing-store order with a pointer to the
// value held there, or nil for an empty slot. Writes through the pointer
// change the value in place; occupancy can only change through Push, Remove
// and Pop. The OptVec must not be pushed to or removed from during iteration.
func (v *OptVec[T]) AllMut() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range v.slots {
			if !yield(i, v.slots[i].Ptr()) {
				return
			}
		}
	}
}

// Values returns an iterator over the occupied slots only, yielding each
// index with its value.
func (v *OptVec[T]) Values() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, s := range v.slots {
			if !s.occupied {
				continue
			}
			if !yield(i, s.value) {
				return
			}
		}
	}
}
