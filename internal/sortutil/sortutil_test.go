package sortutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortRawNumDataDescendingWithKeyTieBreak(t *testing.T) {
	entries := []Entry{
		{Key: 3, Value: 5},
		{Key: 1, Value: 10},
		{Key: 2, Value: 10},
		{Key: 4, Value: 1},
	}

	SortRawNumData(entries)

	assert.Equal(t, []Entry{
		{Key: 1, Value: 10},
		{Key: 2, Value: 10},
		{Key: 3, Value: 5},
		{Key: 4, Value: 1},
	}, entries)
}

func TestSortRawStrDataLexicographicWithKeyTieBreak(t *testing.T) {
	entries := []Entry{
		{Key: 2, Data: "banana"},
		{Key: 1, Data: "apple"},
		{Key: 3, Data: "apple"},
	}

	SortRawStrData(entries)

	assert.Equal(t, []Entry{
		{Key: 1, Data: "apple"},
		{Key: 3, Data: "apple"},
		{Key: 2, Data: "banana"},
	}, entries)
}

func TestCmp(t *testing.T) {
	assert.True(t, CmpU32Asc(1, 2))
	assert.False(t, CmpU32Asc(2, 1))
	assert.True(t, CmpU32Desc(2, 1))
	assert.False(t, CmpU32Desc(1, 2))
}
