package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/task-tracker-api/internal/config"
	"github.com/taskhub/task-tracker-api/internal/database"
	apierrors "github.com/taskhub/task-tracker-api/internal/errors"
	"github.com/taskhub/task-tracker-api/internal/handlers"
	"github.com/taskhub/task-tracker-api/internal/middleware"
	"github.com/taskhub/task-tracker-api/internal/repository"
	"github.com/taskhub/task-tracker-api/internal/services"
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

	// Wire repositories, services and handlers
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)
	aggregationService := services.NewAggregationService(taskRepo)

	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, aggregationService)

	// Initialize Gin router
	r := gin.Default()

	// Liveness endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
	})

	// Health check endpoint (verifies the store is reachable)
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := database.GetDB().DB()
		if err != nil || sqlDB.Ping() != nil {
			apierrors.ServiceUnavailable(c, "Database unreachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	// User routes
	users := r.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	// Task routes
	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/users", taskHandler.ListTasksWithUsers)
		tasks.PUT("/:id", middleware.RequireTask(), taskHandler.UpdateTask)
		tasks.DELETE("/:id", middleware.RequireTask(), taskHandler.DeleteTask)
		tasks.POST("/:id/users/:user_id", middleware.RequireTask(), taskHandler.AssignUser)
		tasks.DELETE("/:id/users/:user_id", middleware.RequireTask(), taskHandler.UnassignUser)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
