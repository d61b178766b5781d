package favorite

import (
	"context"

	"gorm.io/gorm"

	"koktajlove-api/entities"
)

type (
	FavoriteRepository interface {
		CreateFavorite(ctx context.Context, favorite *entities.Favorite) error
		GetFavorite(ctx context.Context, userID, cocktailID uint) (*entities.Favorite, error)
		GetFavoritesByUser(ctx context.Context, userID uint, offset, limit int) ([]*entities.Favorite, int64, error)
		DeleteFavorite(ctx context.Context, userID, cocktailID uint) error
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) CreateFavorite(ctx context.Context, favorite *entities.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) GetFavorite(ctx context.Context, userID, cocktailID uint) (*entities.Favorite, error) {
	var favorite entities.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND cocktail_id = ?", userID, cocktailID).
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) GetFavoritesByUser(ctx context.Context, userID uint, offset, limit int) ([]*entities.Favorite, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []*entities.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

func (r *favoriteRepository) DeleteFavorite(ctx context.Context, userID, cocktailID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND cocktail_id = ?", userID, cocktailID).
		Delete(&entities.Favorite{}).Error
}
