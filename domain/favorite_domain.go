package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetFavorites   = "success get favorites"
	MessageSuccessAddFavorite    = "cocktail added to favorites"
	MessageSuccessRemoveFavorite = "cocktail removed from favorites"
	MessageSuccessFavoriteStatus = "success get favorite status"
	MessageFailedGetFavorites    = "failed to get favorites"
	MessageFailedAddFavorite     = "failed to add favorite"
	MessageFailedRemoveFavorite  = "failed to remove favorite"

	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrAlreadyFavorite  = errors.New("cocktail is already in favorites")
)

type (
	AddFavoriteRequest struct {
		CocktailID uint `json:"cocktail_id" validate:"required"`
	}

	FavoriteResponse struct {
		ID         uint      `json:"id"`
		CocktailID uint      `json:"cocktail_id"`
		UserID     uint      `json:"user_id"`
		CreatedAt  time.Time `json:"created_at"`
	}

	PaginatedFavorites struct {
		Items []FavoriteResponse `json:"items"`
		Total int64              `json:"total"`
		Page  int                `json:"page"`
		Size  int                `json:"size"`
		Pages int                `json:"pages"`
	}

	FavoriteStatusResponse struct {
		CocktailID uint `json:"cocktail_id"`
		IsFavorite bool `json:"is_favorite"`
	}
)
