package optvec_test

import (
	"testing"

	"github.com/plus3/slotkit/optvec"
	"github.com/stretchr/testify/assert"
)

func newWithHole() *optvec.OptVec[int] {
	v := optvec.New[int]()
	v.Push(10)
	v.Push(20)
	v.Push(30)
	v.Remove(1)
	return v
}

func TestAllYieldsEverySlot(t *testing.T) {
	v := newWithHole()

	var indices []int
	var occupied []bool
	var values []int
	for i, s := range v.All() {
		indices = append(indices, i)
		occupied = append(occupied, s.IsOccupied())
		x, _ := s.Get()
		values = append(values, x)
	}

	assert.Equal(t, []int{0, 1, 2}, indices)
	assert.Equal(t, []bool{true, false, true}, occupied)
	assert.Equal(t, []int{10, 0, 30}, values)
}

func TestAllIsRestartable(t *testing.T) {
	v := newWithHole()
	seq := v.All()

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count())
}

func TestAllStopsEarly(t *testing.T) {
	v := newWithHole()
	n := 0
	for range v.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestAllMutChangesValuesInPlace(t *testing.T) {
	v := newWithHole()

	for _, p := range v.AllMut() {
		if p != nil {
			*p *= 2
		}
	}

	assert.Equal(t, 20, *v.At(0))
	assert.Equal(t, 60, *v.At(2))
	assert.False(t, v.Has(1))
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 1, v.Push(5), "hole must still be on the free stack")
}

func TestValuesSkipsEmpty(t *testing.T) {
	v := newWithHole()

	got := make(map[int]int)
	for i, x := range v.Values() {
		got[i] = x
	}
	assert.Equal(t, map[int]int{0: 10, 2: 30}, got)
}

func TestSlot(t *testing.T) {
	var empty optvec.Slot[string]
	assert.False(t, empty.IsOccupied())
	assert.Nil(t, empty.Ptr())
	_, ok := empty.Get()
	assert.False(t, ok)

	s := optvec.Occupied("x")
	assert.True(t, s.IsOccupied())
	got, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "x", got)
	*s.Ptr() = "y"
	got, _ = s.Get()
	assert.Equal(t, "y", got)
}
