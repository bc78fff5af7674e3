package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/ProgramTrackBack/internal/audit"
	"github.com/saeid-a/ProgramTrackBack/internal/config"
	"github.com/saeid-a/ProgramTrackBack/internal/handlers"
	"github.com/saeid-a/ProgramTrackBack/internal/middleware"
	"github.com/saeid-a/ProgramTrackBack/internal/repository"
	"github.com/saeid-a/ProgramTrackBack/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	programRepo := repository.NewProgramRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	recorder := audit.NewRecorder(auditRepo)
	go recorder.Run()

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	catalogService := services.NewCatalogService(db, programRepo, workoutRepo, assignmentRepo)
	programHandler := handlers.NewProgramHandler(catalogService)
	assignmentService := services.NewAssignmentService(db, userRepo, programRepo, assignmentRepo)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	progressService := services.NewProgressService(db)
	progressHandler := handlers.NewProgressHandler(progressService)
	feedbackService := services.NewFeedbackService(assignmentRepo, feedbackRepo)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	adminService := services.NewAdminService(userRepo, auditRepo, recorder)
	adminHandler := handlers.NewAdminHandler(adminService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	programs := authProtected.Group("/programs")
	programs.Post("", programHandler.CreateProgram)
	programs.Get("", programHandler.ListPrograms)
	programs.Get("/:id", programHandler.GetProgram)
	programs.Post("/:id/workouts", programHandler.CreateWorkout)

	assignments := authProtected.Group("/assignments")
	assignments.Post("", assignmentHandler.Assign)
	assignments.Get("", assignmentHandler.ListAssignments)

	authProtected.Post("/progress/:workoutID/done", progressHandler.MarkDone)
	authProtected.Post("/feedback", feedbackHandler.Submit)

	admin := authProtected.Group("/admin")
	admin.Put("/users/:id/role", adminHandler.ChangeRole)
	admin.Put("/users/:id/password", adminHandler.ResetPassword)
	admin.Put("/users/:id/active", adminHandler.SetActive)
	admin.Get("/audit", adminHandler.ListAudit)

	return registerDocsRoutes(app, cfg)
}
