package optvec

// Slot is one cell of an OptVec's backing store. It is either Occupied,
// holding a value, or Empty. The zero Slot is Empty.
type Slot[T any] struct {
	value    T
	occupied bool
}

// Occupied returns a Slot holding v.
func Occupied[T any](v T) Slot[T] {
	return Slot[T]{value: v, occupied: true}
}

// IsOccupied reports whether the slot holds a value.
func (s Slot[T]) IsOccupied() bool {
	return s.occupied
}

// Get returns the held value and true, or the zero value and false if the
// slot is empty.
func (s Slot[T]) Get() (T, bool) {
	return s.value, s.occupied
}

// Ptr returns a pointer to the held value, or nil if the slot is empty.
func (s *Slot[T]) Ptr() *T {
	if !s.occupied {
		return nil
	}
	return &s.value
}

// take empties the slot and returns what it held.
func (s *Slot[T]) take() (T, bool) {
	v, ok := s.value, s.occupied
	*s = Slot[T]{}
	return v, ok
}
