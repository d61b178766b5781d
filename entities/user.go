package entities

type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email          string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"not null" json:"-"`
	Bio            string `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`

	Timestamp
}
