package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRatings   = "success get ratings"
	MessageSuccessCreateRating = "rating created successfully"
	MessageSuccessUpdateRating = "rating updated successfully"
	MessageSuccessDeleteRating = "rating deleted successfully"
	MessageFailedGetRatings    = "failed to get ratings"
	MessageFailedCreateRating  = "failed to create rating"
	MessageFailedUpdateRating  = "failed to update rating"
	MessageFailedDeleteRating  = "failed to delete rating"

	ErrRatingNotFound        = errors.New("rating not found")
	ErrAlreadyRated          = errors.New("user has already rated this cocktail")
	ErrRateOwnCocktail       = errors.New("cannot rate your own cocktail")
	ErrRatingValueOutOfRange = errors.New("rating value must be between 1 and 5")
)

type (
	CreateRatingRequest struct {
		CocktailID  uint   `json:"cocktail_id" validate:"required"`
		RatingValue int    `json:"rating_value" validate:"required,gte=1,lte=5"`
		Comment     string `json:"comment" validate:"omitempty,max=1000"`
	}

	UpdateRatingRequest struct {
		RatingValue *int    `json:"rating_value,omitempty" validate:"omitempty,gte=1,lte=5"`
		Comment     *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
	}

	RatingResponse struct {
		ID          uint      `json:"id"`
		CocktailID  uint      `json:"cocktail_id"`
		UserID      uint      `json:"user_id"`
		RatingValue int       `json:"rating_value"`
		Comment     string    `json:"comment,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	PaginatedRatings struct {
		Items []RatingResponse `json:"items"`
		Total int64            `json:"total"`
		Page  int              `json:"page"`
		Size  int              `json:"size"`
		Pages int              `json:"pages"`
	}
)
