package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/logcore/internal/hashkey"
)

func TestInternIdempotence(t *testing.T) {
	c := New()

	ck1, isNew1 := c.Intern("/a", hashkey.Djb2)
	ck2, isNew2 := c.Intern("/a", hashkey.Djb2)

	assert.True(t, isNew1)
	assert.False(t, isNew2)
	assert.Equal(t, ck1, ck2)

	hash, ok := c.HashOf(ck1)
	require.True(t, ok)
	assert.Equal(t, hashkey.Djb2("/a"), hash)
}

func TestInternHashedMatchesIntern(t *testing.T) {
	c := New()
	h := hashkey.Djb2("/b")

	ck1, isNew1 := c.InternHashed(h)
	ck2, isNew2 := c.Intern("/b", hashkey.Djb2)

	assert.True(t, isNew1)
	assert.False(t, isNew2)
	assert.Equal(t, ck1, ck2)
}

func TestSumAndMaxAccumulate(t *testing.T) {
	c := New()
	ck, _ := c.Intern("/a", hashkey.Djb2)

	c.AddHits(ck, 5)
	c.AddHits(ck, 7)
	assert.Equal(t, uint32(12), c.Hits.GetOrZero(ck))

	c.AssignMaxTS(ck, 3)
	c.AssignMaxTS(ck, 9)
	c.AssignMaxTS(ck, 4)
	assert.Equal(t, uint64(9), c.MaxTS.GetOrZero(ck))
}

func TestFirstObservationWins(t *testing.T) {
	c := New()
	ck, _ := c.Intern("/a", hashkey.Djb2)

	c.SetData(ck, "/a")
	c.SetData(ck, "/a-alias")
	assert.Equal(t, "/a", c.Datamap.GetOrZero(ck), "datamap must keep the first observation")

	c.SetMethod(ck, 1)
	c.SetMethod(ck, 2)
	v, _ := c.Methods.Get(ck)
	assert.Equal(t, uint8(1), v)
}

func TestTopNNumericDescendingWithKeyTieBreak(t *testing.T) {
	c := New()
	ckA, _ := c.Intern("/a", hashkey.Djb2)
	ckB, _ := c.Intern("/b", hashkey.Djb2)

	c.AddHits(ckA, 10)
	c.AddHits(ckB, 10)

	entries := c.TopN(false)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(10), entries[0].Value)
	assert.Less(t, entries[0].Key, entries[1].Key)
}

func TestTopNStringAscending(t *testing.T) {
	c := New()
	ck1, _ := c.Intern("/zebra", hashkey.Djb2)
	ck2, _ := c.Intern("/apple", hashkey.Djb2)
	c.SetData(ck1, "zebra")
	c.SetData(ck2, "apple")

	entries := c.TopN(true)
	require.Len(t, entries, 2)
	assert.Equal(t, "apple", entries[0].Data)
	assert.Equal(t, "zebra", entries[1].Data)
}

func TestMinMaxII32(t *testing.T) {
	c := New()
	ck1, _ := c.Intern("/a", hashkey.Djb2)
	ck2, _ := c.Intern("/b", hashkey.Djb2)
	c.AddHits(ck1, 3)
	c.AddHits(ck2, 9)

	lo, hi, ok := MinMaxII32(c.Hits)
	require.True(t, ok)
	assert.Equal(t, uint32(3), lo)
	assert.Equal(t, uint32(9), hi)

	_, _, ok = MinMaxII32(c.Visitors)
	assert.False(t, ok, "empty table has no min/max")
}
