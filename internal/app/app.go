package app

import (
	"fmt"
	"log"

	"instaclone/internal/config"
	"instaclone/internal/db"
	"instaclone/internal/handlers"
	"instaclone/internal/middleware"
	"instaclone/internal/repositories"
	"instaclone/internal/routes"
	"instaclone/internal/services"
	"instaclone/internal/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "instaclone/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey(cfg.Auth.JWTSecret)

	// === DB ===
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("DB close failed: %v", err)
		}
	}()
	if err := db.Migrate(conn); err != nil {
		log.Fatal("DB migration failed: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(conn)
	confirmationRepo := repositories.NewConfirmationRepository(conn)
	passwordResetRepo := repositories.NewPasswordResetRepository(conn)
	postRepo := repositories.NewPostRepository(conn)
	commentRepo := repositories.NewCommentRepository(conn)
	likeRepo := repositories.NewLikeRepository(conn)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	smsClient := utils.NewSMSClient(cfg.SMS.APIKey, cfg.SMS.SenderID, cfg.SMS.DryRun)
	alertService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.AlertChatID)

	// background code delivery worker; the request path only enqueues
	dispatcher := services.NewCodeDispatcher(emailService, smsClient, alertService)
	go dispatcher.Run()

	authService := services.NewAuthService(userRepo)
	verificationService := services.NewVerificationService(confirmationRepo, userRepo, dispatcher)
	userService := services.NewUserService(userRepo, verificationService, authService)
	passwordResetService := services.NewPasswordResetService(userRepo, passwordResetRepo, emailService, smsClient, authService)
	postService := services.NewPostService(postRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	likeService := services.NewLikeService(likeRepo, postRepo, commentRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, passwordResetService)
	userHandler := handlers.NewUserHandler(userService, verificationService, authService, cfg.Files.RootDir)
	postHandler := handlers.NewPostHandler(postService, likeService, cfg.Files.RootDir)
	commentHandler := handlers.NewCommentHandler(commentService, likeService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// uploaded media
	router.Static("/media", cfg.Files.RootDir)

	routes.SetupRoutes(router, authHandler, userHandler, postHandler, commentHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server start failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
