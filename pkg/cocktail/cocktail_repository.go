package cocktail

import (
	"context"

	"gorm.io/gorm"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
)

type (
	CocktailRepository interface {
		SearchCocktails(ctx context.Context, req domain.CocktailSearchRequest, offset, limit int) ([]CocktailRow, int64, error)
		GetCocktailRow(ctx context.Context, id uint) (*CocktailRow, error)
		GetCocktailByID(ctx context.Context, id uint) (*entities.Cocktail, error)
		FindDuplicateCandidateIDs(ctx context.Context, name string, isPublic bool, ownerID uint, excludeID uint) ([]uint, error)
		GetCompositionLinks(ctx context.Context, cocktailID uint) ([]entities.CocktailIngredient, error)
		ListCompositionRows(ctx context.Context, cocktailIDs []uint) ([]CompositionRow, error)
		ListTagRows(ctx context.Context, cocktailIDs []uint) ([]TagRow, error)
		CreateCocktail(ctx context.Context, cocktail *entities.Cocktail, links []entities.CocktailIngredient, tags []entities.CocktailTag) error
		UpdateCocktail(ctx context.Context, cocktail *entities.Cocktail, links []entities.CocktailIngredient, replaceLinks bool, tags []entities.CocktailTag, replaceTags bool) error
		DeleteCocktail(ctx context.Context, id uint) error
		UpdateCocktailImage(ctx context.Context, id uint, imageURL string) error
	}

	cocktailRepository struct {
		db *gorm.DB
	}

	// CocktailRow is one search result row: the cocktail columns plus the
	// rating aggregates computed in the same grouped query.
	CocktailRow struct {
		entities.Cocktail
		AverageRating *float64 `gorm:"column:average_rating"`
		RatingsCount  int64    `gorm:"column:ratings_count"`
	}

	// CompositionRow is one hydration row of the batched ingredient join.
	CompositionRow struct {
		CocktailID     uint   `gorm:"column:cocktail_id"`
		IngredientID   uint   `gorm:"column:ingredient_id"`
		IngredientName string `gorm:"column:ingredient_name"`
		Amount         int    `gorm:"column:amount"`
		Unit           string `gorm:"column:unit"`
	}

	TagRow struct {
		CocktailID uint   `gorm:"column:cocktail_id"`
		TagID      uint   `gorm:"column:tag_id"`
		TagName    string `gorm:"column:tag_name"`
	}
)

func NewCocktailRepository(db *gorm.DB) CocktailRepository {
	return &cocktailRepository{db: db}
}

// searchQuery builds the filtered and aggregated catalog query. All filter
// dimensions are ANDed; the rating aggregate is a LEFT JOIN so zero-rated
// cocktails survive, and the minimum-average threshold lives in HAVING with
// COALESCE so those same cocktails compare as 0 against it.
func (r *cocktailRepository) searchQuery(ctx context.Context, req domain.CocktailSearchRequest) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&entities.Cocktail{}).
		Select("cocktails.*, ROUND(AVG(ratings.rating_value)::numeric, 2) AS average_rating, COUNT(ratings.id) AS ratings_count").
		Joins("LEFT JOIN ratings ON ratings.cocktail_id = cocktails.id")

	if req.RequestingUserID != nil {
		q = q.Where("cocktails.is_public = ? OR cocktails.user_id = ?", true, *req.RequestingUserID)
	} else {
		q = q.Where("cocktails.is_public = ?", true)
	}

	if name := req.Name; name != "" {
		q = q.Where("cocktails.name ILIKE ?", "%"+name+"%")
	}

	// ALL-of membership: group the link table restricted to the requested
	// ids and demand the distinct match count equals the request size. A
	// cocktail with extra ingredients beyond the requested set still matches.
	if len(req.IngredientIDs) > 0 {
		sub := r.db.Table("cocktail_ingredients").
			Select("cocktail_id").
			Where("ingredient_id IN ?", req.IngredientIDs).
			Group("cocktail_id").
			Having("COUNT(DISTINCT ingredient_id) = ?", len(req.IngredientIDs))
		q = q.Where("cocktails.id IN (?)", sub)
	}

	if len(req.TagIDs) > 0 {
		sub := r.db.Table("cocktail_tags").
			Select("cocktail_id").
			Where("tag_id IN ?", req.TagIDs).
			Group("cocktail_id").
			Having("COUNT(DISTINCT tag_id) = ?", len(req.TagIDs))
		q = q.Where("cocktails.id IN (?)", sub)
	}

	q = q.Group("cocktails.id")

	if req.MinAvgRating != nil {
		q = q.Having("COALESCE(AVG(ratings.rating_value), 0) >= ?", *req.MinAvgRating)
	}

	return q
}

func (r *cocktailRepository) SearchCocktails(ctx context.Context, req domain.CocktailSearchRequest, offset, limit int) ([]CocktailRow, int64, error) {
	// The total must come from the same filtered+aggregated query that
	// produces the page window, or page counts drift from the rows.
	var total int64
	if err := r.db.WithContext(ctx).
		Table("(?) AS matched", r.searchQuery(ctx, req)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []CocktailRow
	if err := r.searchQuery(ctx, req).
		Order("cocktails.created_at DESC, cocktails.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *cocktailRepository) GetCocktailRow(ctx context.Context, id uint) (*CocktailRow, error) {
	var row CocktailRow
	err := r.db.WithContext(ctx).
		Model(&entities.Cocktail{}).
		Select("cocktails.*, ROUND(AVG(ratings.rating_value)::numeric, 2) AS average_rating, COUNT(ratings.id) AS ratings_count").
		Joins("LEFT JOIN ratings ON ratings.cocktail_id = cocktails.id").
		Where("cocktails.id = ?", id).
		Group("cocktails.id").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *cocktailRepository) GetCocktailByID(ctx context.Context, id uint) (*entities.Cocktail, error) {
	var cocktail entities.Cocktail
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cocktail).Error; err != nil {
		return nil, err
	}
	return &cocktail, nil
}

func (r *cocktailRepository) FindDuplicateCandidateIDs(ctx context.Context, name string, isPublic bool, ownerID uint, excludeID uint) ([]uint, error) {
	q := r.db.WithContext(ctx).
		Model(&entities.Cocktail{}).
		Where("name = ?", name)

	if isPublic {
		q = q.Where("is_public = ?", true)
	} else {
		q = q.Where("is_public = ? AND user_id = ?", false, ownerID)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var ids []uint
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *cocktailRepository) GetCompositionLinks(ctx context.Context, cocktailID uint) ([]entities.CocktailIngredient, error) {
	var links []entities.CocktailIngredient
	if err := r.db.WithContext(ctx).
		Where("cocktail_id = ?", cocktailID).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *cocktailRepository) ListCompositionRows(ctx context.Context, cocktailIDs []uint) ([]CompositionRow, error) {
	if len(cocktailIDs) == 0 {
		return nil, nil
	}
	var rows []CompositionRow
	err := r.db.WithContext(ctx).
		Table("cocktail_ingredients").
		Select("cocktail_ingredients.cocktail_id, cocktail_ingredients.ingredient_id, ingredients.name AS ingredient_name, cocktail_ingredients.amount, cocktail_ingredients.unit").
		Joins("JOIN ingredients ON ingredients.id = cocktail_ingredients.ingredient_id").
		Where("cocktail_ingredients.cocktail_id IN ?", cocktailIDs).
		Order("cocktail_ingredients.cocktail_id, cocktail_ingredients.ingredient_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *cocktailRepository) ListTagRows(ctx context.Context, cocktailIDs []uint) ([]TagRow, error) {
	if len(cocktailIDs) == 0 {
		return nil, nil
	}
	var rows []TagRow
	err := r.db.WithContext(ctx).
		Table("cocktail_tags").
		Select("cocktail_tags.cocktail_id, cocktail_tags.tag_id, tags.name AS tag_name").
		Joins("JOIN tags ON tags.id = cocktail_tags.tag_id").
		Where("cocktail_tags.cocktail_id IN ?", cocktailIDs).
		Order("cocktail_tags.cocktail_id, cocktail_tags.tag_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateCocktail persists the cocktail row, its composition links and its tag
// links as one transaction: either everything commits or nothing does.
func (r *cocktailRepository) CreateCocktail(ctx context.Context, cocktail *entities.Cocktail, links []entities.CocktailIngredient, tags []entities.CocktailTag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cocktail).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].CocktailID = cocktail.ID
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			for i := range tags {
				tags[i].CocktailID = cocktail.ID
			}
			if err := tx.Create(&tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateCocktail saves the row and, when requested, replaces the link sets
// wholesale (delete-all-then-reinsert) in the same transaction.
func (r *cocktailRepository) UpdateCocktail(ctx context.Context, cocktail *entities.Cocktail, links []entities.CocktailIngredient, replaceLinks bool, tags []entities.CocktailTag, replaceTags bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(cocktail).Error; err != nil {
			return err
		}
		if replaceLinks {
			if err := tx.Where("cocktail_id = ?", cocktail.ID).Delete(&entities.CocktailIngredient{}).Error; err != nil {
				return err
			}
			if len(links) > 0 {
				for i := range links {
					links[i].CocktailID = cocktail.ID
				}
				if err := tx.Create(&links).Error; err != nil {
					return err
				}
			}
		}
		if replaceTags {
			if err := tx.Where("cocktail_id = ?", cocktail.ID).Delete(&entities.CocktailTag{}).Error; err != nil {
				return err
			}
			if len(tags) > 0 {
				for i := range tags {
					tags[i].CocktailID = cocktail.ID
				}
				if err := tx.Create(&tags).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DeleteCocktail removes the cocktail and everything hanging off it in one
// transaction. The explicit deletes keep the cascade deterministic even on a
// store migrated without FK constraints.
func (r *cocktailRepository) DeleteCocktail(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cocktail_id = ?", id).Delete(&entities.CocktailIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cocktail_id = ?", id).Delete(&entities.CocktailTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cocktail_id = ?", id).Delete(&entities.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cocktail_id = ?", id).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Cocktail{}, id).Error
	})
}

func (r *cocktailRepository) UpdateCocktailImage(ctx context.Context, id uint, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Cocktail{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}
