package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koktajlove-api/domain"
)

func TestParseUintList(t *testing.T) {
	ids, err := parseUintList("3,7,12")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 7, 12}, ids)

	ids, err = parseUintList(" 3 , 7 ")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 7}, ids)

	ids, err = parseUintList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = parseUintList("3,x")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = parseUintList("0")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrCocktailNotFound, fiber.StatusNotFound},
		{domain.ErrCocktailDuplicate, fiber.StatusConflict},
		{domain.ErrUserNotAllowed, fiber.StatusForbidden},
		{domain.ErrWrongCredentials, fiber.StatusUnauthorized},
		{domain.ErrMinRatingOutOfRange, fiber.StatusBadRequest},
		{fmt.Errorf("%w: invalid id parameter", domain.ErrValidation), fiber.StatusBadRequest},
		{domain.ErrStoreTimeout, fiber.StatusGatewayTimeout},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusForError(tt.err), "error: %v", tt.err)
	}
}
