package main

import (
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"elevator-game/internal/config"
	"elevator-game/internal/handlers"
	"elevator-game/internal/logger"
	"elevator-game/internal/middleware"
	"elevator-game/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level := slog.LevelDebug
	if cfg.Env == "production" {
		level = slog.LevelInfo
	}
	logger.Init(&logger.Options{Level: level})

	var store services.WalletStore
	if cfg.RedisAddr != "" {
		redisStore, err := services.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = redisStore
		logger.L().Info("using redis wallet store", "addr", cfg.RedisAddr)
	} else {
		store = services.NewMemoryStore(cfg.InitialBalance)
		logger.L().Info("using in-memory wallet store")
	}
	defer store.Close()

	jwtService := services.NewJWTService(cfg)
	gameService := services.NewGameService(store, cfg)

	wsHandler := handlers.NewWebSocketHandler(logger.L())
	gameService.SetBroadcaster(wsHandler)

	sessionHandler := handlers.NewSessionHandler(jwtService)
	gameHandler := handlers.NewGameHandler(gameService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/session", sessionHandler.CreateSession)
	router.POST("/verify", gameHandler.Verify)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("/authenticate", gameHandler.Authenticate)
		protected.POST("/play", gameHandler.Play)
		protected.POST("/rotate-server-seed", gameHandler.RotateServerSeed)
		protected.GET("/history", gameHandler.GetHistory)

		protected.GET("/ws", wsHandler.HandleWebSocket)
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.L().Info("server starting", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
