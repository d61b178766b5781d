package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"koktajlove-api/domain"
)

// statusForError maps domain sentinels to HTTP status codes. Unknown errors
// are treated as client errors at the call sites that validate input and as
// server errors here.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrCocktailNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrRatingNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrCocktailDuplicate),
		errors.Is(err, domain.ErrAlreadyRated),
		errors.Is(err, domain.ErrAlreadyFavorite),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrIngredientNameTaken),
		errors.Is(err, domain.ErrTagNameTaken),
		errors.Is(err, domain.ErrIngredientInUse),
		errors.Is(err, domain.ErrTagInUse):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUserNotAllowed),
		errors.Is(err, domain.ErrRateOwnCocktail):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrWrongCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrEmptyComposition),
		errors.Is(err, domain.ErrRepeatedIngredient),
		errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrUnknownUnit),
		errors.Is(err, domain.ErrMinRatingOutOfRange),
		errors.Is(err, domain.ErrRatingValueOutOfRange),
		errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrStoreTimeout):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func authenticatedUserID(c *fiber.Ctx) uint {
	return c.Locals("user_id").(uint)
}

// optionalUserID returns the authenticated user id, or nil when the request
// came through optional auth anonymously.
func optionalUserID(c *fiber.Ctx) *uint {
	if v, ok := c.Locals("user_id").(uint); ok {
		return &v
	}
	return nil
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id parameter", domain.ErrValidation)
	}
	return uint(id), nil
}

func pageRequest(c *fiber.Ctx) domain.PageRequest {
	return domain.PageRequest{
		Page: c.QueryInt("page", domain.DefaultPage),
		Size: c.QueryInt("size", domain.DefaultPageSize),
	}
}

// parseUintList parses a comma-separated id list query value, e.g. "3,7,12".
func parseUintList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: bad id list value %q", domain.ErrValidation, part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
