package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kozhomberdieveldar/dodo-pizza/config"
	"github.com/kozhomberdieveldar/dodo-pizza/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := config.InitLogger(cfg); err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer config.Log.Sync()

	if err := config.InitDB(cfg); err != nil {
		config.Log.Fatal("Failed to init database", zap.Error(err))
	}
	config.Log.Info("database connected and migrated", zap.String("path", cfg.DBPath))

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// Front end is served from a different origin
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Dodo Pizza API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r)

	config.Log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		config.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
