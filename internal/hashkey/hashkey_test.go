package hashkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDjb2KnownValues(t *testing.T) {
	// djb2("") == 5381 (the seed, untouched by the loop).
	assert.Equal(t, uint32(5381), Djb2(""))

	// Stable, deterministic output for repeated calls.
	a := Djb2("/index.html")
	b := Djb2("/index.html")
	assert.Equal(t, a, b)

	// Distinct (in practice) for distinct inputs.
	assert.NotEqual(t, Djb2("/a"), Djb2("/b"))
}

func TestCompositeRoundTrip(t *testing.T) {
	k := EncodeComposite(12345, 67890)
	v, h := DecodeComposite(k)
	assert.Equal(t, uint32(12345), v)
	assert.Equal(t, uint32(67890), h)
}
