package llist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertPrependOrder(t *testing.T) {
	l := New[int]()
	l.InsertPrepend(1)
	l.InsertPrepend(2)
	l.InsertPrepend(3)

	require.Equal(t, 3, l.Len())
	assert.Equal(t, []int{3, 2, 1}, l.Slice())
}

func TestFind(t *testing.T) {
	l := New[string]()
	l.InsertPrepend("a")
	l.InsertPrepend("b")
	l.InsertPrepend("c")

	v, ok := l.Find(func(s string) bool { return s == "a" })
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = l.Find(func(s string) bool { return s == "z" })
	assert.False(t, ok)
}

func TestForEach(t *testing.T) {
	l := New[int]()
	for i := 0; i < 5; i++ {
		l.InsertPrepend(i)
	}

	var sum int
	l.ForEach(func(v int) { sum += v })
	assert.Equal(t, 10, sum)
}

func TestRemoveNodes(t *testing.T) {
	l := New[int]()
	l.InsertPrepend(1)
	l.InsertPrepend(2)
	require.Equal(t, 2, l.Len())

	l.RemoveNodes()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Slice())
}
