package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetCocktails   = "success get cocktails"
	MessageSuccessGetCocktail    = "success get cocktail detail"
	MessageSuccessCreateCocktail = "cocktail created successfully"
	MessageSuccessUpdateCocktail = "cocktail updated successfully"
	MessageSuccessDeleteCocktail = "cocktail deleted successfully"
	MessageSuccessUploadImage    = "cocktail image uploaded successfully"
	MessageFailedGetCocktails    = "failed to get cocktails"
	MessageFailedGetCocktail     = "failed to get cocktail detail"
	MessageFailedCreateCocktail  = "failed to create cocktail"
	MessageFailedUpdateCocktail  = "failed to update cocktail"
	MessageFailedDeleteCocktail  = "failed to delete cocktail"
	MessageFailedUploadImage     = "failed to upload cocktail image"

	ErrCocktailNotFound   = errors.New("cocktail not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagNotFound        = errors.New("tag not found")

	// ErrCocktailDuplicate means a cocktail with the same name, the same
	// composition multiset and the same visibility scope already exists.
	ErrCocktailDuplicate = errors.New("duplicate cocktail")

	ErrEmptyComposition    = errors.New("cocktail needs at least one ingredient")
	ErrRepeatedIngredient  = errors.New("ingredient listed more than once")
	ErrNonPositiveAmount   = errors.New("ingredient amount must be positive")
	ErrMinRatingOutOfRange = errors.New("min_avg_rating must be between 1.0 and 5.0")
)

type (
	// CocktailSearchRequest carries every filter dimension of the catalog
	// search. Zero values impose no constraint for their dimension.
	CocktailSearchRequest struct {
		Name          string   `json:"name,omitempty"`
		IngredientIDs []uint   `json:"ingredient_ids,omitempty"`
		TagIDs        []uint   `json:"tag_ids,omitempty"`
		MinAvgRating  *float64 `json:"min_avg_rating,omitempty"`

		// RequestingUserID is nil for anonymous callers, who only ever see
		// public cocktails. An authenticated caller additionally sees their
		// own private cocktails.
		RequestingUserID *uint `json:"-"`

		PageRequest
	}

	CocktailIngredientData struct {
		IngredientID uint   `json:"ingredient_id" validate:"required"`
		Amount       int    `json:"amount" validate:"required,gt=0"`
		Unit         string `json:"unit" validate:"required"`
	}

	CocktailTagData struct {
		TagID uint `json:"tag_id" validate:"required"`
	}

	CreateCocktailRequest struct {
		Name         string                   `json:"name" validate:"required,min=1,max=200"`
		Description  string                   `json:"description" validate:"omitempty,max=1000"`
		Instructions string                   `json:"instructions" validate:"required,min=1"`
		ImageURL     string                   `json:"image_url" validate:"omitempty,url"`
		IsPublic     *bool                    `json:"is_public"`
		Ingredients  []CocktailIngredientData `json:"ingredients" validate:"required,min=1,dive"`
		Tags         []CocktailTagData        `json:"tags" validate:"omitempty,dive"`
	}

	// UpdateCocktailRequest is a partial patch. Nil means "leave unchanged".
	// A present-but-empty Tags slice clears all tag links; a present-but-empty
	// Ingredients slice is rejected, a cocktail always keeps at least one
	// ingredient.
	UpdateCocktailRequest struct {
		Name         *string                   `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
		Description  *string                   `json:"description,omitempty" validate:"omitempty,max=1000"`
		Instructions *string                   `json:"instructions,omitempty" validate:"omitempty,min=1"`
		ImageURL     *string                   `json:"image_url,omitempty" validate:"omitempty,url"`
		IsPublic     *bool                     `json:"is_public,omitempty"`
		Ingredients  *[]CocktailIngredientData `json:"ingredients,omitempty" validate:"omitempty,dive"`
		Tags         *[]CocktailTagData        `json:"tags,omitempty" validate:"omitempty,dive"`
	}

	IngredientInCocktail struct {
		ID     uint   `json:"id"`
		Name   string `json:"name"`
		Amount int    `json:"amount"`
		Unit   Unit   `json:"unit"`
	}

	CocktailDetail struct {
		ID            uint                   `json:"id"`
		Name          string                 `json:"name"`
		Description   string                 `json:"description,omitempty"`
		Instructions  string                 `json:"instructions"`
		ImageURL      string                 `json:"image_url,omitempty"`
		IsPublic      bool                   `json:"is_public"`
		UserID        uint                   `json:"user_id"`
		CreatedAt     time.Time              `json:"created_at"`
		UpdatedAt     time.Time              `json:"updated_at"`
		Author        UserResponse           `json:"author"`
		Ingredients   []IngredientInCocktail `json:"ingredients"`
		Tags          []TagResponse          `json:"tags"`
		AverageRating *float64               `json:"average_rating,omitempty"`
		RatingsCount  int64                  `json:"ratings_count"`
	}

	PaginatedCocktails struct {
		Items []CocktailDetail `json:"items"`
		Total int64            `json:"total"`
		Page  int              `json:"page"`
		Size  int              `json:"size"`
		Pages int              `json:"pages"`
	}
)
