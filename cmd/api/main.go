package main

import (
	"context"
	"log"

	"github.com/decent-cloud/backend/internal/config"
	"github.com/decent-cloud/backend/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	server.InitializeServices(context.Background(), cfg)

	r := gin.Default()
	server.InitializeRoutes(r, cfg)

	log.Printf("api server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
