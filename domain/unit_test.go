package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("ml")
	require.NoError(t, err)
	assert.Equal(t, UnitMl, u)

	// Unit comparison is case-insensitive and whitespace-tolerant.
	u, err = ParseUnit("  ML ")
	require.NoError(t, err)
	assert.Equal(t, UnitMl, u)

	u, err = ParseUnit("Tbsp")
	require.NoError(t, err)
	assert.Equal(t, UnitTbsp, u)

	_, err = ParseUnit("gallon")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = ParseUnit("")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestParseStoredUnit(t *testing.T) {
	u, err := ParseStoredUnit("oz")
	require.NoError(t, err)
	assert.Equal(t, UnitOz, u)

	// A stored value outside the enumeration is corruption, not bad input.
	_, err = ParseStoredUnit("furlong")
	assert.ErrorIs(t, err, ErrCorruptUnit)
	assert.NotErrorIs(t, err, ErrUnknownUnit)
}
