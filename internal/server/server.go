// Package server assembles the gin engine, middleware chain and routes,
// and owns the HTTP listener lifecycle.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/swaadapp/swaad/backend/config"
	"github.com/swaadapp/swaad/backend/internal/api"
	"github.com/swaadapp/swaad/backend/internal/catalog"
	"github.com/swaadapp/swaad/backend/internal/middleware"
	"github.com/swaadapp/swaad/backend/internal/service"
)

// Server represents the HTTP server.
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New wires middleware and routes into a server ready to Start.
// redisClient and vision may be nil; rate limiting then passes all
// requests through and image uploads report extraction as unavailable.
func New(cfg *config.Config, cat *catalog.Catalog, redisClient *redis.Client, vision *service.VisionService, log *zap.Logger) *Server {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	router.Use(requestid.New())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.ErrorHandler())

	origins, allowAll := cfg.CORS.AllowedOrigins()
	router.Use(middleware.CORS(origins, allowAll))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    cfg.RateLimit.Window,
			Limit:     cfg.RateLimit.Requests,
			KeyPrefix: "rate_limit:api",
		})
		router.Use(limiter.Middleware())
	}

	api.RegisterRoutes(router, cat, vision, log)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.Server.Addr(),
			Handler: router,
		},
		log: log,
	}
}

// Router exposes the underlying engine, mostly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves HTTP and blocks until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting new requests and drains in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
