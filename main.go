package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-school/backend/internal/config"
	"project-school/backend/internal/database"
	"project-school/backend/internal/handlers"
	"project-school/backend/internal/middleware"
	"project-school/backend/internal/monitoring"
	"project-school/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Application holds all application dependencies and state
type Application struct {
	Config *config.Config
	Store  database.Store
	Router *gin.Engine
	Server *http.Server

	// Services
	ProjectService    services.ProjectService
	TaskService       services.TaskService
	GoalService       services.GoalService
	AgentService      services.AgentService
	ChatService       services.ChatService
	NoticeService     services.NoticeService
	ResourceService   services.ResourceService
	PreferenceService services.PreferenceService
	QuizService       services.QuizService
	AssignmentService services.AssignmentService
}

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	app.setupRoutes()
	app.startServer()
}

func initializeApplication(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	log.Println("🚀 Initializing Project School Backend...")
	log.Printf("📋 Environment: %s", cfg.Server.Environment)

	store, err := database.Connect(&database.MongoConfig{
		URL:            cfg.Database.URL,
		Database:       cfg.Database.Name,
		MaxPoolSize:    uint64(cfg.Database.MaxPoolSize),
		MinPoolSize:    uint64(cfg.Database.MinPoolSize),
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.Store = store
	log.Printf("✅ Connected to MongoDB: %s", cfg.Database.Name)

	// Index creation is best effort; the store stays usable without them.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store.EnsureIndexes(ctx)

	monitoring.RegisterHealthCheck("database", app.Store.Ping)

	// Initialize Services
	app.ProjectService = services.NewProjectService()
	app.TaskService = services.NewTaskService()
	app.GoalService = services.NewGoalService()
	app.AgentService = services.NewAgentService()
	app.ChatService = services.NewChatService()
	app.NoticeService = services.NewNoticeService()
	app.ResourceService = services.NewResourceService()
	app.PreferenceService = services.NewPreferenceService()
	app.QuizService = services.NewQuizService()
	app.AssignmentService = services.NewAssignmentService()

	log.Println("✅ All services initialized")

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	// Global middleware stack (order matters!)
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RecoveryWithLog())
	r.Use(middleware.SecureHeader())

	// CORS is wide open; the API fronts browser clients on other origins.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Unified Project + AI Agent API"})
	})

	// Health and monitoring endpoints
	r.GET("/health", monitoring.HealthHandler())
	r.GET("/ready", monitoring.ReadinessHandler())
	r.GET("/live", monitoring.LivenessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	// Project routes
	projectHandler := handlers.NewProjectHandler(app.Store, app.ProjectService)
	projectRoutes := r.Group("/project")
	{
		projectRoutes.POST("", projectHandler.CreateProject)
		projectRoutes.GET("", projectHandler.GetProjects)
		projectRoutes.GET("/:project_id", projectHandler.GetProjectByID)
	}

	// Task routes, including per-user assignments
	taskHandler := handlers.NewTaskHandler(app.Store, app.TaskService)
	assignmentHandler := handlers.NewAssignmentHandler(app.Store, app.AssignmentService)
	taskRoutes := r.Group("/project-tasks")
	{
		taskRoutes.POST("", taskHandler.CreateTask)
		taskRoutes.GET("", taskHandler.GetTasks)

		userTasks := taskRoutes.Group("/user-tasks")
		{
			userTasks.POST("", assignmentHandler.LinkTask)
			userTasks.GET("/:user_id", assignmentHandler.GetUserTasks)
			userTasks.DELETE("/:user_id/:task_id", assignmentHandler.UnlinkTask)
			userTasks.PUT("/:user_id/:task_id/complete", assignmentHandler.CompleteTask)
			userTasks.PUT("/:user_id/:task_id/incomplete", assignmentHandler.IncompleteTask)
			userTasks.PUT("/:user_id/:task_id/active", assignmentHandler.ActivateTask)
			userTasks.POST("/:user_id/:task_id/comments", assignmentHandler.AddComment)
		}

		taskRoutes.DELETE("/delete-assigned-tasks/:user_id", assignmentHandler.ClearTasks)
	}

	// Goal routes
	goalHandler := handlers.NewGoalHandler(app.Store, app.GoalService)
	r.POST("/goals", goalHandler.CreateGoal)
	r.GET("/goals", goalHandler.GetGoals)

	// AI agent routes
	agentHandler := handlers.NewAgentHandler(app.Store, app.AgentService)
	r.POST("/ai-agent", agentHandler.CreateAgent)
	r.GET("/ai-agent", agentHandler.GetAgents)

	// Chat routes
	chatHandler := handlers.NewChatHandler(app.Store, app.ChatService)
	r.POST("/chat", chatHandler.PostMessage)
	r.GET("/chat/:user_id", chatHandler.GetHistory)

	// Notice routes
	noticeHandler := handlers.NewNoticeHandler(app.Store, app.NoticeService)
	noticeRoutes := r.Group("/notices")
	{
		noticeRoutes.GET("", noticeHandler.GetNotices)
		noticeRoutes.POST("", noticeHandler.CreateNotice)
		noticeRoutes.DELETE("/:notice_id", noticeHandler.DeleteNotice)
	}

	// Resource routes
	resourceHandler := handlers.NewResourceHandler(app.Store, app.ResourceService)
	resourceRoutes := r.Group("/resources")
	{
		resourceRoutes.GET("", resourceHandler.GetResources)
		resourceRoutes.POST("", resourceHandler.CreateResource)
		resourceRoutes.GET("/:resource_id", resourceHandler.GetResourceByID)
		resourceRoutes.PUT("/:resource_id", resourceHandler.UpdateResource)
		resourceRoutes.DELETE("/:resource_id", resourceHandler.DeleteResource)
	}

	// Preference routes
	preferenceHandler := handlers.NewPreferenceHandler(app.Store, app.PreferenceService)
	preferenceRoutes := r.Group("/preferences")
	{
		preferenceRoutes.POST("/manage-preferences", preferenceHandler.ManagePreferences)
		preferenceRoutes.POST("/get-preferences", preferenceHandler.GetPreferences)
	}

	// Quiz routes
	quizHandler := handlers.NewQuizHandler(app.Store, app.QuizService)
	quizRoutes := r.Group("/quizzes")
	{
		quizRoutes.POST("", quizHandler.UpsertQuiz)
		quizRoutes.GET("/task/:task_id", quizHandler.GetQuizByTask)
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}

		app.cleanup()
		log.Println("✅ Server stopped gracefully")
	}()

	log.Printf("🚀 Server starting on %s", addr)
	log.Printf("📊 Metrics available at http://%s/metrics", addr)
	log.Printf("💚 Health check at http://%s/health", addr)

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

func (app *Application) cleanup() {
	log.Println("🧹 Cleaning up resources...")

	if app.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Store.Close(ctx); err != nil {
			log.Printf("⚠️  Error closing database: %v", err)
		}
	}

	log.Println("✅ Cleanup complete")
}
