package swap

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillswap/api/config"
	mw "github.com/skillswap/api/internal/middleware"
)

func RegisterSwapRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	swapRepo := NewSwapRepository(db)
	swapController := NewSwapController(swapRepo)

	swaps := router.Group("/swaps")
	swaps.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		swaps.POST("", swapController.CreateSwap)
		swaps.GET("/received", swapController.GetReceived)
		swaps.GET("/sent", swapController.GetSent)
		swaps.GET("/completed", swapController.GetCompleted)

		swaps.PATCH("/:swap_id/accept", swapController.Accept)
		swaps.PATCH("/:swap_id/reject", swapController.Reject)
		swaps.PATCH("/:swap_id/cancel", swapController.Cancel)
		swaps.PATCH("/:swap_id/complete", swapController.Complete)
	}
}
