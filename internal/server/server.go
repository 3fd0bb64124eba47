package server

import (
	"context"
	"fmt"
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/filmoteca/movie-catalog/internal/config"
	"github.com/filmoteca/movie-catalog/internal/middlewares"
)

// Server is the catalog's HTTP front. It assembles the gin engine with the
// middleware stack (request id, logging, metrics, panic recovery) and owns
// the listener lifecycle.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the server. registerHandlerFn receives the root router;
// the API surface is registered unprefixed.
func NewServer(cfg *config.Configuration, registerHandlerFn func(gin.IRouter)) *Server {
	if cfg.Server.Mode == config.ServerModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middlewares.RequestID(),
		middlewares.Logger(),
		middlewares.Metrics(),
		ginzap.RecoveryWithZap(zap.L().Named("http"), true),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerHandlerFn(router)

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler: router,
		},
	}
}

// Start blocks serving requests until the listener fails or Stop is called.
func (s *Server) Start() error {
	zap.S().Named("server").Infow("listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop performs a graceful shutdown, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
