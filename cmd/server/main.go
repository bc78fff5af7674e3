package main

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/ProgramTrackBack/internal/authz"
	"github.com/saeid-a/ProgramTrackBack/internal/config"
	"github.com/saeid-a/ProgramTrackBack/internal/database"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
	"github.com/saeid-a/ProgramTrackBack/internal/repository"
	"github.com/saeid-a/ProgramTrackBack/internal/routes"
	"github.com/saeid-a/ProgramTrackBack/pkg/utils"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	// 3. Seed the super admin. The role is never self-registerable, so without
	// a seed no admin mutation could ever be authorized.
	if err := seedSuperAdmin(cfg); err != nil {
		log.Fatalf("Failed to seed super admin: %v", err)
	}

	// 4. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, database.DB); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// 5. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func seedSuperAdmin(cfg *config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(database.DB)

	_, err := userRepo.GetByEmail(ctx, cfg.SeedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := utils.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.SeedAdminEmail,
		DisplayName:  "Super Admin",
		PasswordHash: hash,
		Role:         authz.RoleSuperAdmin,
	}
	if err := userRepo.CreateUser(ctx, admin); err != nil {
		return err
	}

	log.Printf("Seeded super admin %s", cfg.SeedAdminEmail)
	return nil
}
