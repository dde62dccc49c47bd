package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/Verm1lion/SwarmOPS/internal/board"
	"github.com/Verm1lion/SwarmOPS/internal/config"
	"github.com/Verm1lion/SwarmOPS/internal/constants"
	"github.com/Verm1lion/SwarmOPS/internal/database"
	"github.com/Verm1lion/SwarmOPS/internal/handlers"
	"github.com/Verm1lion/SwarmOPS/internal/middleware"
	"github.com/Verm1lion/SwarmOPS/internal/repository"
	"github.com/Verm1lion/SwarmOPS/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Session middleware: a signed cookie carries either the admin user id
	// or the guest's project scope
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Board manager: one reconciler per project board
	boards := board.NewManager(taskRepo, taskRepo)
	defer boards.Shutdown()

	// Services
	activityService := services.NewActivityService(activityRepo)
	authService := services.NewAuthService(userRepo, projectRepo, cfg)
	projectService := services.NewProjectService(projectRepo, boards, activityService)
	taskService := services.NewTaskService(taskRepo, boards, activityService)
	commentService := services.NewCommentService(commentRepo, taskRepo, activityService)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo)
	uploadService := services.NewUploadService(cfg.UploadDir, cfg.UploadBaseURL)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	boardHandler := handlers.NewBoardHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService, taskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	activityHandler := handlers.NewActivityHandler(activityService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Uploaded attachments are served straight from disk
	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/join", authHandler.Join)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.Me)
		}

		// Dashboard (protected)
		api.GET("/dashboard", middleware.RequireAuth(), dashboardHandler.GetDashboard)

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(), projectHandler.DeleteProject)
			projects.POST("/:id/regenerate-code", middleware.RequireProjectAccess(), projectHandler.RegenerateAccessCode)

			projects.GET("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.ListTasks)
			projects.POST("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.CreateTask)
			projects.GET("/:id/board", middleware.RequireProjectAccess(), boardHandler.GetBoard)
			projects.POST("/:id/board/move", middleware.RequireProjectAccess(), boardHandler.MoveTask)
			projects.GET("/:id/activity", middleware.RequireProjectAccess(), activityHandler.ListActivity)
			projects.POST("/:id/uploads", middleware.RequireProjectAccess(), uploadHandler.Upload)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
			tasks.POST("/:id/comments", middleware.RequireTaskAccess(), commentHandler.CreateComment)
			tasks.GET("/:id/comments", middleware.RequireTaskAccess(), commentHandler.ListComments)
			tasks.DELETE("/:id/comments/:comment_id", middleware.RequireTaskAccess(), commentHandler.DeleteComment)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
