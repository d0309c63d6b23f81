package htable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestII32InsertAlreadyPresent(t *testing.T) {
	h := NewII32()

	res := h.Insert(1, 100)
	assert.Equal(t, Inserted, res)

	res = h.Insert(1, 200)
	assert.Equal(t, AlreadyPresent, res)

	v, ok := h.Get(1)
	require.True(t, ok)
	assert.Equal(t, uint32(100), v, "insert must not overwrite an existing key")
}

func TestII32CounterMonotonicity(t *testing.T) {
	h := NewII32()

	assert.Equal(t, uint32(0), h.GetOrZero(42), "absent key reads as 0")

	var last uint32
	for i := 1; i <= 10; i++ {
		last = h.Increment(42, 1)
		assert.Equal(t, uint32(i), last)
	}
	assert.Equal(t, uint32(10), h.GetOrZero(42))
}

func TestIU64MaxAssign(t *testing.T) {
	h := NewIU64()

	assert.Equal(t, uint64(5), h.MaxAssign(1, 5))
	assert.Equal(t, uint64(5), h.MaxAssign(1, 3), "lower value must not replace the max")
	assert.Equal(t, uint64(9), h.MaxAssign(1, 9))

	v, _ := h.Get(1)
	assert.Equal(t, uint64(9), v)
}

func TestIS32GetOrZero(t *testing.T) {
	h := NewIS32()
	assert.Equal(t, "", h.GetOrZero(1))

	h.Insert(1, "/index.html")
	assert.Equal(t, "/index.html", h.GetOrZero(1))
}

func TestDeleteIsIdempotent(t *testing.T) {
	h := NewII32()
	h.Insert(1, 1)
	h.Delete(1)
	h.Delete(1) // no panic, no error return to check

	_, ok := h.Get(1)
	assert.False(t, ok)
}

func TestClearResetsSize(t *testing.T) {
	h := NewSU64()
	h.Insert("total_requests", 10)
	h.Insert("excluded", 2)
	require.Equal(t, 2, h.Size())

	h.Clear(true)
	assert.Equal(t, 0, h.Size())
}

func TestIGSLAppendDedup(t *testing.T) {
	h := NewIGSL()

	assert.True(t, h.Append(1, 100))
	assert.True(t, h.Append(1, 101))
	assert.False(t, h.Append(1, 100), "duplicate agent id must not be re-added")

	vals := h.List(1)
	assert.ElementsMatch(t, []uint32{100, 101}, vals)
}

func TestIGSLDeleteClearsList(t *testing.T) {
	h := NewIGSL()
	h.Append(1, 100)
	h.Delete(1)

	assert.Nil(t, h.List(1))
	assert.Equal(t, 0, h.Size())
}

func TestForEachVisitsAllEntries(t *testing.T) {
	h := NewII32()
	h.Insert(1, 10)
	h.Insert(2, 20)
	h.Insert(3, 30)

	seen := map[uint32]uint32{}
	h.ForEach(func(k, v uint32) { seen[k] = v })

	assert.Equal(t, map[uint32]uint32{1: 10, 2: 20, 3: 30}, seen)
}
