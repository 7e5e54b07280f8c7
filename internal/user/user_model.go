package user

import (
	"time"

	"gorm.io/gorm"
)

// User is a marketplace member. Visibility in browse results requires
// IsPublic and not IsBanned.
type User struct {
	gorm.Model
	Name            string `json:"name" gorm:"not null"`
	Email           string `json:"email" gorm:"uniqueIndex;not null"`
	Password        string `json:"-"`
	Location        string `json:"location,omitempty"`
	Availability    string `json:"availability,omitempty"`
	ProfilePhotoURL string `json:"profile_photo_url,omitempty"`
	IsPublic        bool   `json:"is_public" gorm:"default:true"`
	IsAdmin         bool   `json:"is_admin" gorm:"default:false"`
	IsBanned        bool   `json:"is_banned" gorm:"default:false"`
}

type RefreshToken struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"default:false"`
}
