package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/skillswap/api/config"
	"github.com/skillswap/api/internal/admin"
	"github.com/skillswap/api/internal/auth"
	"github.com/skillswap/api/internal/browse"
	"github.com/skillswap/api/internal/observability"
	"github.com/skillswap/api/internal/rating"
	"github.com/skillswap/api/internal/skill"
	"github.com/skillswap/api/internal/swap"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{appConfig.App.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	r.Use(observability.HTTPMetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		auth.RegisterAuthRoutes(api, db, appConfig)
		browse.RegisterBrowseRoutes(api, db)
		skill.RegisterSkillRoutes(api, db, appConfig)
		swap.RegisterSwapRoutes(api, db, appConfig)
		rating.RegisterRatingRoutes(api, db, appConfig)
		admin.RegisterAdminRoutes(api, db, appConfig)
	}

	return r
}
