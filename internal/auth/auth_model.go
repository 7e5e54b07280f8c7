package auth

import (
	"time"

	"github.com/skillswap/api/internal/user"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"John Doe"`
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	Location string `json:"location,omitempty" example:"Berlin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=NewPassword"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Location        *string `json:"location,omitempty" binding:"omitempty,max=200"`
	Availability    *string `json:"availability,omitempty" binding:"omitempty,max=200"`
	ProfilePhotoURL *string `json:"profile_photo_url,omitempty" binding:"omitempty,url,max=500"`
	IsPublic        *bool   `json:"is_public,omitempty"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Location        string    `json:"location,omitempty"`
	Availability    string    `json:"availability,omitempty"`
	ProfilePhotoURL string    `json:"profile_photo_url,omitempty"`
	IsPublic        bool      `json:"is_public"`
	IsAdmin         bool      `json:"is_admin"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FilterUserRecord(u *user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Location:        u.Location,
		Availability:    u.Availability,
		ProfilePhotoURL: u.ProfilePhotoURL,
		IsPublic:        u.IsPublic,
		IsAdmin:         u.IsAdmin,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
