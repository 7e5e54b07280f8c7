package main

import (
	"log"

	"github.com/skillswap/api/config"
	_ "github.com/skillswap/api/docs"
	"github.com/skillswap/api/internal/admin"
	"github.com/skillswap/api/internal/rating"
	"github.com/skillswap/api/internal/skill"
	"github.com/skillswap/api/internal/swap"
	"github.com/skillswap/api/internal/user"
	"github.com/skillswap/api/routes"
)

// @title           SkillSwap API
// @version         1.0
// @description     REST API for the SkillSwap platform: users list skills they offer and want, browse each other, and exchange skills through swap requests with ratings.

// @contact.name   SkillSwap Team

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT access token.
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()
	db := config.DB

	err := db.AutoMigrate(
		&user.User{},
		&user.RefreshToken{},
		&skill.Skill{},
		&skill.UserSkillOffered{},
		&skill.UserSkillWanted{},
		&swap.SwapRequest{},
		&rating.Rating{},
		&admin.Report{},
		&admin.PlatformMessage{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	r := routes.SetupRoutes(db, cfg)

	log.Printf("Starting server on port %s", cfg.App.Port)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
