// Package server is the HTTP boundary: routing, request logging, static
// assets, and status-code mapping around the core services.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second

	feedRoute = "/feed.xml"
	addRoute  = "/add"
)

// New builds the HTTP server around the given handler. assetsDir is served
// under /assets for the feed icon.
func New(addr, assetsDir string, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.POST(addRoute, handler.AddLink)
	router.GET(feedRoute, handler.Feed)
	router.Static("/assets", assetsDir)

	return &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
