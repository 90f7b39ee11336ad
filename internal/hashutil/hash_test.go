package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256Bytes(t *testing.T) {
	// Known vector for "abc".
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		SHA256Bytes([]byte("abc")))
}

func TestStableHash_EmptyIsEmpty(t *testing.T) {
	assert.Equal(t, "", StableHash(""))
	assert.NotEmpty(t, StableHash("x"))
}

func TestStableHash_IgnoresFormatting(t *testing.T) {
	a := StableHash("Merverdiavgift  skal\tberegnes")
	b := StableHash("merverdiavgift skal beregnes")
	assert.Equal(t, a, b)
}

func TestStableHash_PreservesNorwegianCharacters(t *testing.T) {
	a := StableHash("Næringsmidler på 15 %")
	b := StableHash("naeringsmidler pa 15 %")
	assert.NotEqual(t, a, b)
}

func TestStableHash_DiffersFromPlainHash(t *testing.T) {
	text := "Redusert  Sats"
	assert.NotEqual(t, SHA256Bytes([]byte(text)), StableHash(text))
}
