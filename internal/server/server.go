package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/annapurna-ai/backend/config"
	"github.com/annapurna-ai/backend/internal/api"
	"github.com/annapurna-ai/backend/internal/middleware"
	"github.com/annapurna-ai/backend/internal/router"
	"github.com/annapurna-ai/backend/internal/service"
)

// Services bundles the service layer the server exposes over HTTP.
type Services struct {
	Auth       service.IAuthService
	Estimation service.IEstimationService
	Meals      service.IMealService
	Recipes    service.IRecipeService
	Profile    service.IProfileService
	Photos     service.IPhotoService
	Catalog    api.ModelCatalog
}

// Server represents the HTTP server
type Server struct {
	http *http.Server
	db   *gorm.DB
}

// New creates a new server instance wired to the given services. redisClient
// may be nil; AI rate limiting is then disabled.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, svcs Services) *Server {
	h := router.Handlers{
		Auth:        api.NewAuthHandler(svcs.Auth),
		Meals:       api.NewMealHandler(svcs.Meals, svcs.Estimation, svcs.Profile, svcs.Photos),
		Recipes:     api.NewRecipeHandler(svcs.Recipes, svcs.Meals, svcs.Estimation, svcs.Profile),
		Suggestions: api.NewSuggestionHandler(svcs.Estimation, svcs.Profile),
		Models:      api.NewModelHandler(svcs.Catalog),
		Dashboard:   api.NewDashboardHandler(svcs.Meals, svcs.Profile),
	}

	var aiLimiter *middleware.RateLimiter
	if redisClient != nil {
		aiLimiter = middleware.NewAIRateLimiter(redisClient)
	}

	engine := router.SetupRouter(h, svcs.Auth, aiLimiter)

	return &Server{
		http: &http.Server{
			Addr:    ":" + cfg.ServerPort,
			Handler: engine,
		},
		db: db,
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	log.Printf("[Server] listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
