package entities

type Cocktail struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:200;index;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	Instructions string `gorm:"type:text;not null" json:"instructions"`
	ImageURL     string `json:"image_url,omitempty"`
	IsPublic     bool   `gorm:"default:true" json:"is_public"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`

	// DedupeKey is a hash of (name, visibility scope, canonical composition).
	// The unique index is the commit-time backstop for concurrent creates that
	// both pass the proactive duplicate check.
	DedupeKey string `gorm:"size:64;uniqueIndex;not null" json:"-"`

	User        *User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Ingredients []CocktailIngredient `gorm:"foreignKey:CocktailID" json:"-"`
	Tags        []CocktailTag        `gorm:"foreignKey:CocktailID" json:"-"`

	Timestamp
}

// CocktailIngredient is the composition link table. The composite key means a
// cocktail references a given ingredient at most once.
type CocktailIngredient struct {
	CocktailID   uint   `gorm:"primaryKey" json:"cocktail_id"`
	IngredientID uint   `gorm:"primaryKey" json:"ingredient_id"`
	Amount       int    `gorm:"not null" json:"amount"`
	Unit         string `gorm:"size:16;not null" json:"unit"`

	Cocktail   *Cocktail   `gorm:"foreignKey:CocktailID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT" json:"-"`
}

type CocktailTag struct {
	CocktailID uint `gorm:"primaryKey" json:"cocktail_id"`
	TagID      uint `gorm:"primaryKey" json:"tag_id"`

	Cocktail *Cocktail `gorm:"foreignKey:CocktailID;constraint:OnDelete:CASCADE" json:"-"`
	Tag      *Tag      `gorm:"foreignKey:TagID;constraint:OnDelete:RESTRICT" json:"-"`
}
