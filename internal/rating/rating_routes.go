package rating

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillswap/api/config"
	mw "github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/internal/swap"
)

func RegisterRatingRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	ratingRepo := NewRatingRepository(db)
	swapRepo := swap.NewSwapRepository(db)
	ratingController := NewRatingController(ratingRepo, swapRepo)

	// Ratings received by a user are public, like the profile they hang off.
	router.GET("/users/:user_id/ratings", ratingController.GetUserRatings)

	authenticated := router.Group("/swaps/:swap_id/ratings")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.POST("", ratingController.CreateRating)
	}
}
