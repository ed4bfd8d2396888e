package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unirideapp/uniride-api/internal/cache"
	"github.com/unirideapp/uniride-api/internal/config"
	dbpkg "github.com/unirideapp/uniride-api/internal/db"
	"github.com/unirideapp/uniride-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	redis := cache.New(cfg.RedisURL)
	defer redis.Close()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, redis, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
