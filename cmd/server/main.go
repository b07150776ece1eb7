package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/TatyanaDev/task-management-api/docs"
	"github.com/TatyanaDev/task-management-api/internal/config"
	"github.com/TatyanaDev/task-management-api/internal/database"
	"github.com/TatyanaDev/task-management-api/internal/events"
	"github.com/TatyanaDev/task-management-api/internal/handlers"
	"github.com/TatyanaDev/task-management-api/internal/logger"
	"github.com/TatyanaDev/task-management-api/internal/middleware"
	"github.com/TatyanaDev/task-management-api/internal/repository"
	"github.com/TatyanaDev/task-management-api/internal/services"
)

//	@title			Task Management API
//	@version		1.0
//	@description	Task and category management with JWT authentication and real-time task update broadcasts.
//	@BasePath		/api
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(cfg.LogLevel)

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	categoryRepo := repository.NewCategoryRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	categoryService := services.NewCategoryService(categoryRepo)
	taskService := services.NewTaskService(taskRepo)

	var weatherService *services.WeatherService
	if cfg.WeatherAPIKey != "" {
		weatherService = services.NewWeatherService(cfg.WeatherURL, cfg.WeatherAPIKey, cfg.WeatherCityID)
	}

	broker := events.NewBroker()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	taskHandler := handlers.NewTaskHandler(taskService, weatherService, broker)
	eventsHandler := handlers.NewEventsHandler(broker)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Management API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		categories := api.Group("/categories")
		categories.Use(middleware.RequireAuth(authService))
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:id", middleware.RequireCategoryAccess(), categoryHandler.GetCategory)
			categories.PUT("/:id", middleware.RequireCategoryAccess(), categoryHandler.UpdateCategory)
			categories.DELETE("/:id", middleware.RequireCategoryAccess(), categoryHandler.DeleteCategory)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(authService))
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/category/:categoryId", taskHandler.ListTasksByCategory)
			tasks.GET("/priority/:priority", taskHandler.ListTasksByPriority)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
		}

		api.GET("/events", eventsHandler.Stream)
	}

	log.Infof("server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
