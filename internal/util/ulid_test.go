package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.True(t, IsValidULID(a))
	assert.NotEqual(t, a, b)
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, IsValidULID("01HVZ5R7W2Y0Q9K3N6M8P4T1XA"))

	invalid := []string{
		"",
		"not-a-ulid",
		"01HVZ5R7W2Y0Q9K3N6M8P4T1X",                          // too short
		"01HVZ5R7W2Y0Q9K3N6M8P4T1XAA",                        // too long
		"01HVZ5R7W2Y0Q9K3N6M8P4T1XI",                         // I not in alphabet
		strings.ToLower("01HVZ5R7W2Y0Q9K3N6M8P4T1XA"),        // lowercase
		"4f1c2b9a-3c7d-4e8f-9a6b-2d5e8f1c4a7b",               // uuid, not ulid
	}
	for _, s := range invalid {
		assert.False(t, IsValidULID(s), "should reject %q", s)
	}
}
