package skill

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillswap/api/config"
	mw "github.com/skillswap/api/internal/middleware"
)

func RegisterSkillRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	skillRepo := NewSkillRepository(db)
	skillController := NewSkillController(skillRepo)

	// Skill definitions are public so pickers can populate before login.
	router.GET("/skills", skillController.GetAllSkills)

	authenticated := router.Group("/users/me/skills")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		offered := authenticated.Group("/offered")
		{
			offered.GET("", skillController.GetMySkillsOffered)
			offered.POST("", skillController.AddSkillOffered)
			offered.PUT("/:entry_id", skillController.UpdateSkillOffered)
			offered.DELETE("/:entry_id", skillController.DeleteSkillOffered)
		}

		wanted := authenticated.Group("/wanted")
		{
			wanted.GET("", skillController.GetMySkillsWanted)
			wanted.POST("", skillController.AddSkillWanted)
			wanted.PUT("/:entry_id", skillController.UpdateSkillWanted)
			wanted.DELETE("/:entry_id", skillController.DeleteSkillWanted)
		}
	}
}
