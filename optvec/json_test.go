package optvec_test

import (
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/plus3/slotkit/optvec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestMarshalJSON(t *testing.T) {
	v := optvec.New[point]()
	v.Push(point{1, 2})
	v.Push(point{3, 4})
	v.Push(point{5, 6})
	v.Remove(1)

	data, err := gojson.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"x":1,"y":2},null,{"x":5,"y":6}]`, string(data))
}

func TestMarshalEmpty(t *testing.T) {
	data, err := gojson.Marshal(optvec.New[int]())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestUnmarshalJSON(t *testing.T) {
	v := optvec.New[point]()
	require.NoError(t, gojson.Unmarshal([]byte(`[null,{"x":1,"y":1},null,{"x":2,"y":2}]`), v))

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 4, v.RawLen())
	assert.Equal(t, 2, v.FreeLen())
	assert.Equal(t, point{2, 2}, *v.At(3))

	assert.Equal(t, 0, v.Push(point{}), "lowest hole is reused first")
	assert.Equal(t, 2, v.Push(point{}))
	assert.Equal(t, 4, v.Push(point{}))
}

func TestUnmarshalReplacesContents(t *testing.T) {
	v := optvec.New[int]()
	for i := range 10 {
		v.Push(i)
	}
	v.Remove(4)

	require.NoError(t, gojson.Unmarshal([]byte(`[7]`), v))
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 0, v.FreeLen())
	assert.Equal(t, 7, *v.At(0))
}

func TestUnmarshalInvalid(t *testing.T) {
	v := optvec.New[int]()
	v.Push(1)

	assert.Error(t, gojson.Unmarshal([]byte(`{"a":1}`), v))
	assert.Error(t, gojson.Unmarshal([]byte(`["x"]`), v))
	assert.Equal(t, 1, *v.At(0), "failed decode leaves v untouched")
}

func TestJSONRoundTripKeepsIndices(t *testing.T) {
	v := optvec.New[string]()
	a := v.Push("a")
	b := v.Push("b")
	c := v.Push("c")
	v.Remove(b)

	data, err := gojson.Marshal(v)
	require.NoError(t, err)

	w := optvec.New[string]()
	require.NoError(t, gojson.Unmarshal(data, w))
	assert.Equal(t, "a", *w.At(a))
	assert.Equal(t, "c", *w.At(c))
	assert.False(t, w.Has(b))
	assert.True(t, optvec.Equal(v, w))
}
