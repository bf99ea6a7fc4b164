package handler

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/middleware"
)

// Handlers - набор обработчиков, из которых собираются маршруты
type Handlers struct {
	Auth     *AuthHandler
	Quiz     *QuizHandler
	Category *CategoryHandler
	Question *QuestionHandler
	Choice   *ChoiceHandler
	Result   *ResultHandler
	Profile  *ProfileHandler
	Health   *HealthHandler
}

// RouterConfig содержит middleware и параметры роутера
type RouterConfig struct {
	Auth           *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	AuthRateLimit  middleware.RateLimitConfig
	APIRateLimit   middleware.RateLimitConfig
	AllowedOrigins []string
	TrustedProxies []string
}

// NewRouter собирает gin.Engine со всеми маршрутами /api
func NewRouter(h Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	requireAuth := cfg.Auth.RequireAuth()
	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}
	apiLimit := cfg.APIRateLimit
	if apiLimit.MaxRequests == 0 {
		apiLimit = middleware.APIRateLimitConfig(0)
	}

	api := router.Group("/api")
	{
		if h.Health != nil {
			api.GET("/health", h.Health.Health)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", limiter.Limit(cfg.AuthRateLimit), h.Auth.Register)
			authGroup.POST("/login", limiter.Limit(cfg.AuthRateLimit), h.Auth.Login)
			authGroup.POST("/logout", requireAuth, h.Auth.Logout)
		}

		authed := api.Group("", limiter.LimitByIP(apiLimit), requireAuth)

		quizzes := authed.Group("/quizzes")
		{
			quizzes.GET("", h.Quiz.ListQuizzes)
			quizzes.POST("", h.Quiz.CreateQuiz)
			quizzes.GET("/difficulties", h.Quiz.Difficulties)

			quizWithID := quizzes.Group("/:id", middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", h.Quiz.GetQuiz)
				quizWithID.PUT("", h.Quiz.ReplaceQuiz)
				quizWithID.PATCH("", h.Quiz.PatchQuiz)
				quizWithID.DELETE("", h.Quiz.DeleteQuiz)
				quizWithID.POST("/submit_result", h.Result.SubmitResult)
			}
		}

		categories := authed.Group("/categories")
		{
			categories.GET("", h.Category.ListCategories)
			categories.POST("", h.Category.CreateCategory)

			categoryWithID := categories.Group("/:id", middleware.ExtractUintParam("id", "categoryID"))
			{
				categoryWithID.GET("", h.Category.GetCategory)
				categoryWithID.PUT("", h.Category.ReplaceCategory)
				categoryWithID.PATCH("", h.Category.PatchCategory)
				categoryWithID.DELETE("", h.Category.DeleteCategory)
			}
		}

		questions := authed.Group("/questions")
		{
			questions.GET("", h.Question.ListQuestions)
			questions.POST("", h.Question.CreateQuestion)

			questionWithID := questions.Group("/:id", middleware.ExtractUintParam("id", "questionID"))
			{
				questionWithID.GET("", h.Question.GetQuestion)
				questionWithID.PUT("", h.Question.UpdateQuestion)
				questionWithID.PATCH("", h.Question.UpdateQuestion)
				questionWithID.DELETE("", h.Question.DeleteQuestion)
			}
		}

		choices := authed.Group("/choices")
		{
			choices.GET("", h.Choice.ListChoices)
			choices.POST("", h.Choice.CreateChoice)

			choiceWithID := choices.Group("/:id", middleware.ExtractUintParam("id", "choiceID"))
			{
				choiceWithID.GET("", h.Choice.GetChoice)
				choiceWithID.PUT("", h.Choice.UpdateChoice)
				choiceWithID.PATCH("", h.Choice.UpdateChoice)
				choiceWithID.DELETE("", h.Choice.DeleteChoice)
			}
		}

		results := authed.Group("/results")
		{
			results.GET("", h.Result.ListResults)
			results.GET("/export", h.Result.ExportResults)
			results.GET("/:id", middleware.ExtractUintParam("id", "resultID"), h.Result.GetResult)
		}

		profile := authed.Group("/profile")
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PUT("", h.Profile.UpdateProfile)
			profile.PATCH("", h.Profile.UpdateProfile)
		}
	}

	return router
}
