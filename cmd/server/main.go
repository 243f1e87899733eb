package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/hrworks/employee-voice-api/internal/config"
	"github.com/hrworks/employee-voice-api/internal/database"
	"github.com/hrworks/employee-voice-api/internal/handlers"
	"github.com/hrworks/employee-voice-api/internal/middleware"
	"github.com/hrworks/employee-voice-api/internal/repository"
	"github.com/hrworks/employee-voice-api/internal/services"
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
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("voice_session", store))

	// Initialize repositories
	db := database.GetDB()
	formRepo := repository.NewFormRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	tagRepo := repository.NewTagRepository(db)
	remarkRepo := repository.NewRemarkRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	// Initialize services
	authService := services.NewAuthService(employeeRepo)
	formService := services.NewFormService(formRepo, responseRepo, remarkRepo, employeeRepo)
	responseService := services.NewResponseService(formRepo, responseRepo, employeeRepo)
	tagService := services.NewTagService(tagRepo, formRepo, remarkRepo, employeeRepo)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	formHandler := handlers.NewFormHandler(formService, aiService)
	responseHandler := handlers.NewResponseHandler(responseService, formService)
	tagHandler := handlers.NewTagHandler(tagService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Employee Voice API is running",
		})
	})

	// Public share-code routes. Reading a published form needs no session;
	// submitting a response does.
	public := r.Group("/public")
	{
		public.GET("/forms/:code", formHandler.GetPublicForm)
		public.POST("/forms/:code/responses", middleware.RequireAuth(), responseHandler.SubmitPublicResponse)
	}

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentEmployee)
			auth.POST("/register", middleware.RequireAuth(), authHandler.Register)
		}

		// Form routes (protected)
		forms := api.Group("/forms")
		forms.Use(middleware.RequireAuth())
		{
			forms.POST("", formHandler.CreateForm)
			forms.GET("", formHandler.ListForms)
			forms.POST("/generate", formHandler.GenerateFields)

			forms.GET("/:id", middleware.RequireFormAccess(), formHandler.GetForm)
			forms.DELETE("/:id", middleware.RequireFormAccess(), formHandler.DeleteForm)
			forms.GET("/:id/fields", middleware.RequireFormAccess(), formHandler.GetFields)
			forms.POST("/:id/approve", middleware.RequireFormAccess(), formHandler.ApproveForm)
			forms.POST("/:id/reject", middleware.RequireFormAccess(), formHandler.RejectForm)
			forms.POST("/:id/complete", middleware.RequireFormAccess(), formHandler.CompleteForm)
			forms.GET("/:id/remarks", middleware.RequireFormAccess(), formHandler.ListRemarks)

			forms.POST("/:id/responses", middleware.RequireFormAccess(), responseHandler.SubmitResponse)
			forms.GET("/:id/responses", middleware.RequireFormAccess(), responseHandler.ListResponses)
			forms.GET("/:id/responses/:employee_id", middleware.RequireFormAccess(), responseHandler.GetEmployeeResponse)
			forms.GET("/:id/analytics", middleware.RequireFormAccess(), responseHandler.Analytics)
			forms.GET("/:id/questions", middleware.RequireFormAccess(), responseHandler.QuestionDetails)

			forms.POST("/:id/questions/:question_id/tags", middleware.RequireFormAccess(), tagHandler.TagEmployees)
			forms.GET("/:id/questions/:question_id/tags", middleware.RequireFormAccess(), tagHandler.ListTags)
			forms.DELETE("/:id/questions/:question_id/tags/:employee_id", middleware.RequireFormAccess(), tagHandler.UntagEmployee)
			forms.POST("/:id/questions/:question_id/tags/approve", middleware.RequireFormAccess(), tagHandler.ApproveTags)
			forms.POST("/:id/questions/:question_id/tags/reject", middleware.RequireFormAccess(), tagHandler.RejectTags)
			forms.GET("/:id/questions/:question_id/timeline", middleware.RequireFormAccess(), tagHandler.Timeline)

			// Responsible persons answer on their own tags, so no
			// management check here.
			forms.POST("/:id/questions/:question_id/remarks", tagHandler.SubmitResponsibleRemark)
		}

		// Employee routes (protected)
		employees := api.Group("/employees")
		employees.Use(middleware.RequireAuth())
		{
			employees.GET("/search", responseHandler.SearchEmployees)
		}

		// Current-employee routes (protected)
		me := api.Group("/me")
		me.Use(middleware.RequireAuth())
		{
			me.GET("/tags", tagHandler.ListAssignedTags)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth())
		{
			dashboard.GET("/quick-stats", formHandler.QuickStats)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
