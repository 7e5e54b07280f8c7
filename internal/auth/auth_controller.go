package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillswap/api/config"
	"github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/internal/user"
	"github.com/skillswap/api/pkg/responses"
	"github.com/skillswap/api/pkg/token"
	"github.com/skillswap/api/pkg/utils"
	"github.com/skillswap/api/pkg/validator"
	hashutil "github.com/skillswap/api/utils"
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{repo: repo, config: cfg}
}

func (ac *AuthController) generateAndSaveTokens(userID uint) (string, string, error) {
	accessToken, err := token.GenerateJWT(userID, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := utils.GenerateRefreshToken(userID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    userID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// Register godoc
// @Summary Register a new user
// @Description Create a new account with name, email and password. New accounts are public by default.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if _, err := ac.repo.GetUserByEmail(req.Email); !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.Conflict(c, "User with this email already exists")
		return
	}

	hashed, err := hashutil.HashPassword(req.Password)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to hash password", nil)
		return
	}

	u := user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Location: req.Location,
		IsPublic: true,
	}
	if err := ac.repo.CreateUser(&u); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(u.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(&u),
	})
}

// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Failure 403 {object} responses.ErrorResponse "Account banned"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.Unauthorized(c, "Invalid email or password")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to look up user", err.Error())
		return
	}

	if !hashutil.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}
	if u.IsBanned {
		responses.Forbidden(c, "Account is banned")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(u.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(u),
	})
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	userID, err := utils.VerifyRefreshToken(req.RefreshToken, ac.config.JWT.RefreshTokenSecret)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	// The token must also exist server-side and not be revoked.
	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil || stored.UserID != userID {
		responses.Unauthorized(c, "Refresh token is invalid or revoked")
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.Unauthorized(c, "User no longer exists")
		return
	}
	if u.IsBanned {
		responses.Forbidden(c, "Account is banned")
		return
	}

	// Rotate: revoke the old token, issue a fresh pair.
	if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to rotate refresh token", err.Error())
		return
	}
	accessToken, refreshToken, err := ac.generateAndSaveTokens(u.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(u),
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the supplied refresh token, or every session for the user.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Logout options"
// @Success 200 {object} responses.SuccessResponse
// @Router /auth/logout [post]
// @Security BearerAuth
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if req.InvalidateAllSessions {
		err = ac.repo.InvalidateAllRefreshTokensForUser(userID)
	} else if req.RefreshToken != "" {
		err = ac.repo.InvalidateRefreshToken(req.RefreshToken)
	}
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to log out", err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

// GetProfile godoc
// @Summary Get the current user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=UserResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/me [get]
// @Security BearerAuth
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", FilterUserRecord(u))
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} responses.SuccessResponse{data=UserResponse}
// @Failure 400 {object} responses.ErrorResponse
// @Router /auth/me [put]
// @Security BearerAuth
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Availability != nil {
		u.Availability = *req.Availability
	}
	if req.ProfilePhotoURL != nil {
		u.ProfilePhotoURL = *req.ProfilePhotoURL
	}
	if req.IsPublic != nil {
		u.IsPublic = *req.IsPublic
	}

	if err := ac.repo.UpdateUser(u); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update profile", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", FilterUserRecord(u))
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Description Verifies the old password, then replaces it and revokes all sessions.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Password change details"
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} responses.ErrorResponse "Old password is wrong"
// @Router /auth/change-password [post]
// @Security BearerAuth
func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	if !hashutil.CheckPassword(u.Password, req.OldPassword) {
		responses.Unauthorized(c, "Old password is incorrect")
		return
	}

	hashed, err := hashutil.HashPassword(req.NewPassword)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to hash password", nil)
		return
	}
	u.Password = hashed

	if err := ac.repo.UpdateUser(u); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to change password", err.Error())
		return
	}
	if err := ac.repo.InvalidateAllRefreshTokensForUser(userID); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to revoke sessions", err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Password changed successfully", nil)
}
