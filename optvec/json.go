package optvec

import (
	gojson "github.com/goccy/go-json"
)

// MarshalJSON encodes the backing store as a JSON array, with null for each
// empty slot. The free stack is not encoded.
//
// An occupied slot whose value itself encodes as null (a nil pointer, map or
// slice) is indistinguishable from an empty slot and decodes as empty.
func (v *OptVec[T]) MarshalJSON() ([]byte, error) {
	cells := make([]*T, len(v.slots))
	for i := range v.slots {
		cells[i] = v.slots[i].Ptr()
	}
	return gojson.Marshal(cells)
}

// UnmarshalJSON replaces v with the slots encoded in data. Every null becomes
// an empty slot on the free stack, ordered so that the lowest empty index is
// reused first.
func (v *OptVec[T]) UnmarshalJSON(data []byte) error {
	var cells []*T
	if err := gojson.Unmarshal(data, &cells); err != nil {
		return err
	}

	slots := make([]Slot[T], len(cells))
	var free []int
	live := 0
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i] == nil {
			free = append(free, i)
			continue
		}
		slots[i] = Occupied(*cells[i])
		live++
	}

	v.slots = slots
	v.free = free
	v.live = live
	return nil
}
