package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringParseRoundTrip(t *testing.T) {
	for _, m := range All() {
		parsed, err := ParseModule(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestParseModuleUnknown(t *testing.T) {
	_, err := ParseModule("not-a-module")
	assert.Error(t, err)

	_, err = ParseModule("")
	assert.Error(t, err)
}

func TestUnknownStringsDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = Module(999).String()
	})
}
