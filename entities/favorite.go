package entities

import (
	"time"
)

type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_favorites_user_cocktail" json:"user_id"`
	CocktailID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_cocktail" json:"cocktail_id"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`

	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	Cocktail *Cocktail `gorm:"foreignKey:CocktailID;constraint:OnDelete:CASCADE" json:"-"`
}
