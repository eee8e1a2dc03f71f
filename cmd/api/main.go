package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/propview/viewing-scheduler/internal/config"
	dbpkg "github.com/propview/viewing-scheduler/internal/db"
	"github.com/propview/viewing-scheduler/internal/logging"
	"github.com/propview/viewing-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db := dbpkg.NewDB(cfg)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
