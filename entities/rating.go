package entities

type Rating struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RatingValue int    `gorm:"not null;check:rating_value >= 1 AND rating_value <= 5" json:"rating_value"`
	Comment     string `gorm:"type:text" json:"comment,omitempty"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_ratings_user_cocktail" json:"user_id"`
	CocktailID  uint   `gorm:"not null;uniqueIndex:idx_ratings_user_cocktail" json:"cocktail_id"`

	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	Cocktail *Cocktail `gorm:"foreignKey:CocktailID;constraint:OnDelete:CASCADE" json:"-"`

	Timestamp
}
