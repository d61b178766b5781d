package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"koktajlove-api/domain"
	"koktajlove-api/internal/api/presenters"
	"koktajlove-api/pkg/cocktail"
)

type (
	CocktailHandler interface {
		SearchCocktails(c *fiber.Ctx) error
		GetCocktailDetail(c *fiber.Ctx) error
		CreateCocktail(c *fiber.Ctx) error
		UpdateCocktail(c *fiber.Ctx) error
		DeleteCocktail(c *fiber.Ctx) error
		UploadCocktailImage(c *fiber.Ctx) error
	}

	cocktailHandler struct {
		cocktailService cocktail.CocktailService
		validator       *validator.Validate
	}
)

func NewCocktailHandler(cocktailService cocktail.CocktailService, validator *validator.Validate) CocktailHandler {
	return &cocktailHandler{
		cocktailService: cocktailService,
		validator:       validator,
	}
}

func (h *cocktailHandler) SearchCocktails(c *fiber.Ctx) error {
	req := domain.CocktailSearchRequest{
		Name:             c.Query("name", ""),
		RequestingUserID: optionalUserID(c),
		PageRequest:      pageRequest(c),
	}

	ingredientIDs, err := parseUintList(c.Query("ingredient_ids", ""))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetCocktails, err)
	}
	req.IngredientIDs = ingredientIDs

	tagIDs, err := parseUintList(c.Query("tag_ids", ""))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetCocktails, err)
	}
	req.TagIDs = tagIDs

	if raw := c.Query("min_avg_rating", ""); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCocktails, domain.ErrMinRatingOutOfRange)
		}
		req.MinAvgRating = &minRating
	}

	res, err := h.cocktailService.SearchCocktails(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetCocktails, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCocktails)
}

func (h *cocktailHandler) GetCocktailDetail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetCocktail, err)
	}

	res, err := h.cocktailService.GetCocktailDetail(c.Context(), id, optionalUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetCocktail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCocktail)
}

func (h *cocktailHandler) CreateCocktail(c *fiber.Ctx) error {
	userID := authenticatedUserID(c)
	req := new(domain.CreateCocktailRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCocktail, err)
	}

	res, err := h.cocktailService.CreateCocktail(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateCocktail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCocktail)
}

func (h *cocktailHandler) UpdateCocktail(c *fiber.Ctx) error {
	userID := authenticatedUserID(c)
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateCocktail, err)
	}

	req := new(domain.UpdateCocktailRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCocktail, err)
	}

	res, err := h.cocktailService.UpdateCocktail(c.Context(), id, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateCocktail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCocktail)
}

func (h *cocktailHandler) DeleteCocktail(c *fiber.Ctx) error {
	userID := authenticatedUserID(c)
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteCocktail, err)
	}

	res, err := h.cocktailService.DeleteCocktail(c.Context(), id, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteCocktail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteCocktail)
}

func (h *cocktailHandler) UploadCocktailImage(c *fiber.Ctx) error {
	userID := authenticatedUserID(c)
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUploadImage, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res, err := h.cocktailService.UploadCocktailImage(c.Context(), id, file, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
