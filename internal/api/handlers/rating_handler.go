package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"koktajlove-api/domain"
	"koktajlove-api/internal/api/presenters"
	"koktajlove-api/pkg/rating"
)

type (
	RatingHandler interface {
		CreateRating(c *fiber.Ctx) error
		GetCocktailRatings(c *fiber.Ctx) error
		GetMyRating(c *fiber.Ctx) error
		UpdateRating(c *fiber.Ctx) error
		DeleteRating(c *fiber.Ctx) error
	}

	ratingHandler struct {
		ratingService rating.RatingService
		validator     *validator.Validate
	}
)

func NewRatingHandler(ratingService rating.RatingService, validator *validator.Validate) RatingHandler {
	return &ratingHandler{
		ratingService: ratingService,
		validator:     validator,
	}
}

func (h *ratingHandler) CreateRating(c *fiber.Ctx) error {
	userID := authenticatedUserID(c)
	req := new(domain.CreateRatingRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRating, err)
	}

	res, err := h.ratingService.CreateRating(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateRating, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRating)
}

func (h *ratingHandler) GetCocktailRatings(c *fiber.Ctx) error {
	cocktailID, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRatings, err)
	}

	res, err := h.ratingService.GetCocktailRatings(c.Context(), cocktailID, optionalUserID(c), pageRequest(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRatings, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRatings)
}

func (h *ratingHandler) GetMyRating(c *fiber.Ctx) error {
	userID := authenticatedUserID(c)
	cocktailID, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRatings, err)
	}

	res, err := h.ratingService.GetUserRatingForCocktail(c.Context(), cocktailID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRatings, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRatings)
}

func (h *ratingHandler) UpdateRating(c *fiber.Ctx) error {
	userID := authenticatedUserID(c)
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateRating, err)
	}

	req := new(domain.UpdateRatingRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRating, err)
	}

	res, err := h.ratingService.UpdateRating(c.Context(), id, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateRating, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRating)
}

func (h *ratingHandler) DeleteRating(c *fiber.Ctx) error {
	userID := authenticatedUserID(c)
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteRating, err)
	}

	if err := h.ratingService.DeleteRating(c.Context(), id, userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteRating, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRating)
}
