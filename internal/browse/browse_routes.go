package browse

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterBrowseRoutes(router *gin.RouterGroup, db *gorm.DB) {
	browseRepo := NewBrowseRepository(db)
	browseController := NewBrowseController(browseRepo)

	router.GET("/users", browseController.BrowseUsers)
	router.GET("/users/:user_id", browseController.GetProfile)
}
