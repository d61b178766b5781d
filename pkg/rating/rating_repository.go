package rating

import (
	"context"

	"gorm.io/gorm"

	"koktajlove-api/entities"
)

type (
	RatingRepository interface {
		CreateRating(ctx context.Context, rating *entities.Rating) error
		GetRatingByID(ctx context.Context, id uint) (*entities.Rating, error)
		GetRatingByUserAndCocktail(ctx context.Context, userID, cocktailID uint) (*entities.Rating, error)
		GetRatingsByCocktail(ctx context.Context, cocktailID uint, offset, limit int) ([]*entities.Rating, int64, error)
		UpdateRating(ctx context.Context, rating *entities.Rating) error
		DeleteRating(ctx context.Context, id uint) error
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) CreateRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) GetRatingByID(ctx context.Context, id uint) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetRatingByUserAndCocktail(ctx context.Context, userID, cocktailID uint) (*entities.Rating, error) {
	var rating entities.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND cocktail_id = ?", userID, cocktailID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetRatingsByCocktail(ctx context.Context, cocktailID uint, offset, limit int) ([]*entities.Rating, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Rating{}).
		Where("cocktail_id = ?", cocktailID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []*entities.Rating
	err := r.db.WithContext(ctx).
		Where("cocktail_id = ?", cocktailID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *ratingRepository) UpdateRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *ratingRepository) DeleteRating(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Rating{}, id).Error
}
