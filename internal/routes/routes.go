package routes

import (
	"github.com/gin-gonic/gin"

	"instaclone/internal/handlers"
	"instaclone/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	postHandler *handlers.PostHandler,
	commentHandler *handlers.CommentHandler,
) *gin.Engine {

	// ---- users: registration state machine + sessions
	users := r.Group("/users")
	{
		users.POST("/signup", userHandler.SignUp)
		users.POST("/login", authHandler.Login)
		users.POST("/login/refresh", authHandler.RefreshToken)
		users.POST("/forgot-password", authHandler.ForgotPassword)
		users.PUT("/reset-password", authHandler.ResetPassword)

		authed := users.Group("", middleware.AuthMiddleware())
		{
			authed.POST("/verify", userHandler.VerifyCode)
			authed.POST("/new-verify", userHandler.NewVerifyCode)
			authed.PUT("/change-info", userHandler.ChangeInfo)
			authed.PUT("/change-photo", userHandler.ChangePhoto)
			authed.POST("/logout", authHandler.Logout)
		}
	}

	// ---- posts: reads are public (anonymous sees me_liked=false),
	// mutations need a token
	posts := r.Group("/posts")
	{
		posts.GET("/", middleware.OptionalAuthMiddleware(), postHandler.List)
		posts.GET("/:id", middleware.OptionalAuthMiddleware(), postHandler.Get)

		authed := posts.Group("", middleware.AuthMiddleware())
		{
			authed.POST("/", postHandler.Create)
			authed.PUT("/:id", postHandler.Update)
			authed.DELETE("/:id", postHandler.Delete)
			authed.POST("/:id/like-toggle", postHandler.LikeToggle)
		}
	}

	// ---- comments (own group: gin cannot mix /posts/comments with /posts/:id)
	comments := r.Group("/comments")
	{
		comments.GET("/", middleware.OptionalAuthMiddleware(), commentHandler.List)
		comments.GET("/:id", middleware.OptionalAuthMiddleware(), commentHandler.Get)

		authed := comments.Group("", middleware.AuthMiddleware())
		{
			authed.POST("/", commentHandler.Create)
			authed.PUT("/:id", commentHandler.Update)
			authed.DELETE("/:id", commentHandler.Delete)
			authed.POST("/:id/like-toggle", commentHandler.LikeToggle)
		}
	}

	return r
}
