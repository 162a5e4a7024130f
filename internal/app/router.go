package app

import (
	"reading_learning_backend/docs"
	"reading_learning_backend/internal/config"
	"reading_learning_backend/internal/middleware"
	"reading_learning_backend/internal/model"
	"reading_learning_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/profile", c.auth.GetProfile)

		authGroup.GET("/content", c.content.ListContent)
		authGroup.GET("/content/:id", c.content.GetContent)

		authGroup.POST("/submissions/submit-quiz", c.submission.SubmitQuiz)
		authGroup.GET("/submissions/student/:studentId", c.submission.GetStudentSubmissions)
	}

	// 3. 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.admin.ListUsers)
		admin.DELETE("/users/:userId", c.admin.DeleteUser)
		admin.PUT("/users/:userId/attempts", c.admin.SetMaxAttempts)

		admin.GET("/content", c.admin.ListContent)
		admin.POST("/content", c.admin.CreateContent)
		admin.PUT("/content/:id", c.admin.UpdateContent)
		admin.DELETE("/content/:id", c.admin.DeleteContent)

		admin.GET("/submissions", c.admin.ListSubmissions)
		admin.PUT("/submissions/:id/review", c.admin.ReviewSubmission)
		admin.PUT("/submissions/:id/answers/:index", c.admin.OverrideAnswerFlag)
	}
}
