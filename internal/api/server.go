package api

import (
	"context"
	"net/http"

	"mise/internal/assistant"
	"mise/internal/auth"
	"mise/internal/providers"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// IntentResolver maps a free-text message to a resolution. The production
// implementation calls the model oracle; tests swap in a deterministic fake.
type IntentResolver interface {
	Resolve(ctx context.Context, message string, images []providers.Image) (*assistant.Resolution, error)
}

// Server represents the main API handler for the storefront and staff portal
type Server struct {
	Router     *gin.Engine
	DB         *gorm.DB
	Resolver   IntentResolver
	Dispatcher *assistant.Dispatcher
	Signer     *assistant.Signer
	Hub        *Hub

	jwtSecret string
}

// Config carries the server's wiring options
type Config struct {
	JWTSecret  string
	SigningKey string // enables signed proposals when non-empty
}

// NewServer creates the API server and configures its routes
func NewServer(db *gorm.DB, resolver IntentResolver, cfg Config) *Server {
	router := gin.Default()

	s := &Server{
		Router:     router,
		DB:         db,
		Resolver:   resolver,
		Dispatcher: assistant.NewDispatcher(db),
		Signer:     assistant.NewSigner(cfg.SigningKey),
		Hub:        NewHub(),
		jwtSecret:  cfg.JWTSecret,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Mise API is running"})
	})

	// Public storefront reads
	s.Router.GET("/api/recipes", s.ListRecipes)
	s.Router.GET("/api/recipes/:slug", s.GetRecipe)
	s.Router.GET("/api/shop", s.ListProducts)
	s.Router.GET("/api/shop/:slug", s.GetProduct)

	// Authenticated surface
	authed := s.Router.Group("/", auth.Middleware(s.jwtSecret))
	{
		authed.POST("/api/ai/assistant", s.HandleAssistant)
		authed.GET("/ws/actions", s.HandleActionFeed)
	}
}
