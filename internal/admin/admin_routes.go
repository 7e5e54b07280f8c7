package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillswap/api/config"
	mw "github.com/skillswap/api/internal/middleware"
	"github.com/skillswap/api/pkg/rmiddleware"
)

func RegisterAdminRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	adminRepo := NewAdminRepository(db)
	adminController := NewAdminController(adminRepo)

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		// Any signed-in user can file a report or read broadcasts.
		authenticated.POST("/reports", adminController.CreateReport)
		authenticated.GET("/messages", adminController.GetMessages)

		adminOnly := authenticated.Group("/admin")
		adminOnly.Use(rmiddleware.AdminMiddleware(db))
		{
			adminOnly.GET("/stats", adminController.GetStats)

			adminOnly.GET("/skills/pending", adminController.GetPendingSkills)
			adminOnly.PATCH("/skills/:entry_id/approve", adminController.ApproveSkill)
			adminOnly.PATCH("/skills/:entry_id/flag", adminController.FlagSkill)
			adminOnly.DELETE("/skills/:entry_id", adminController.RejectSkill)

			adminOnly.GET("/reports", adminController.GetReportedUsers)
			adminOnly.GET("/reports/export", adminController.ExportReport)
			adminOnly.PATCH("/users/:user_id/ban", adminController.BanUser)
			adminOnly.PATCH("/users/:user_id/unban", adminController.UnbanUser)

			adminOnly.POST("/messages", adminController.BroadcastMessage)
		}
	}
}
