package main

import (
	"net/http"

	"socialnet/backend/internal/auth"
	"socialnet/backend/internal/config"
	"socialnet/backend/internal/database"
	"socialnet/backend/internal/handler"
	"socialnet/backend/internal/hub"
	"socialnet/backend/internal/logging"
	"socialnet/backend/internal/relations"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func init() {
	config.LoadConfig()
}

func main() {
	logging.Setup(config.AppConfig.LogLevel)

	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Process-wide realtime state, constructed at service start and torn
	// down with the process. Presence is rebuilt from zero on restart.
	chatHub := hub.NewHub()
	registry := hub.NewRegistry()
	router := hub.NewRouter(chatHub, registry)

	relationSvc := relations.NewService(relations.NewGormStore(database.DB))
	relationHandler := handler.NewRelationHandler(relationSvc)
	chatHandler := handler.NewChatHandler(chatHub, registry, router)

	r := gin.Default()

	// Health check endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Chat websocket (token is passed as a query parameter during the
	// upgrade handshake)
	r.GET("/ws/chat", chatHandler.Serve)

	// API v1 routes
	apiV1 := r.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.ListUsers)
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/me/friends", relationHandler.GetFriends)
			userRoutes.GET("/me/requests", relationHandler.GetPendingRequests)
			userRoutes.GET("/:id", handler.GetUserByID)

			// Friendship routes
			userRoutes.POST("/:id/request", relationHandler.SendRequest)
			userRoutes.POST("/:id/accept", relationHandler.AcceptRequest)
			userRoutes.POST("/:id/decline", relationHandler.DeclineRequest)
		}

		// Post routes (protected)
		postRoutes := apiV1.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", handler.CreatePost)
			postRoutes.GET("/feed", handler.GetFeed)
			postRoutes.GET("/:id", handler.GetPostByID)
			postRoutes.POST("/:id/comments", handler.AddComment)
			postRoutes.POST("/:id/like", handler.LikePost)
		}
	}

	logrus.WithField("addr", config.AppConfig.ListenAddr).Info("Server starting")
	logrus.Fatal(r.Run(config.AppConfig.ListenAddr))
}
