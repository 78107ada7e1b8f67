package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ecampus/backend/internal/app/controllers"
	"github.com/ecampus/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	groupController *controllers.GroupController,
	topicController *controllers.TopicController,
	commentController *controllers.CommentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.PATCH("/me", userController.UpdateProfile)
			users.PUT("/me/photo", userController.UpdateProfilePhoto)
		}

		groups := authenticated.Group("/groups")
		{
			groups.GET("", groupController.List)
			groups.POST("", groupController.Create)
			groups.GET("/join", groupController.Join)
			groups.GET("/:groupId", groupController.Get)
			groups.PATCH("/:groupId", groupController.Update)
			groups.DELETE("/:groupId", groupController.Delete)
		}

		topics := authenticated.Group("/topics")
		{
			topics.GET("", topicController.List)
			topics.POST("", topicController.Create)
			topics.GET("/:topicId", topicController.Get)
			topics.PATCH("/:topicId", topicController.Update)
			topics.DELETE("/:topicId", topicController.Delete)
			topics.POST("/:topicId/activities", topicController.Vote)
		}

		comments := authenticated.Group("/comments")
		{
			comments.GET("", commentController.List)
			comments.POST("", commentController.Create)
			comments.GET("/:commentId", commentController.Get)
			comments.PATCH("/:commentId", commentController.Update)
			comments.DELETE("/:commentId", commentController.Delete)
			comments.POST("/:commentId/activities", commentController.Vote)
		}
	}
}
