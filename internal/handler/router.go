package handler

import (
	"net/http"
	"strings"

	"realestate-agent/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// BuildInfo is reported by /health and /version
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// Handlers groups everything the router mounts
type Handlers struct {
	Chat       *ChatHandler
	Properties *PropertyHandler
	Embeddings *EmbeddingHandler
	Auth       *AuthHandler
	Tokens     TokenParser
}

// NewRouter builds the gin engine with CORS, logging and all API routes
func NewRouter(h Handlers, server config.ServerConfig, info BuildInfo) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = server.AllowedOrigins
	if len(server.AllowedOrigins) == 0 || containsWildcard(server.AllowedOrigins) {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	if len(server.AllowedMethods) > 0 {
		corsConfig.AllowMethods = server.AllowedMethods
	}
	if len(server.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = server.AllowedHeaders
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "realestate-agent",
			"version":    info.Version,
			"build_time": info.BuildTime,
			"git_commit": info.GitCommit,
		})
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    info.Version,
			"build_time": info.BuildTime,
			"git_commit": info.GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/chat", OptionalAuth(h.Tokens), h.Chat.Chat)
		apiV1.GET("/conversations/:session_id", h.Chat.Conversations)
		apiV1.POST("/sessions/:session_id/reset", h.Chat.Reset)
		apiV1.GET("/chat-sessions", RequireAuth(h.Tokens), h.Chat.Sessions)

		apiV1.POST("/properties", h.Properties.Create)
		apiV1.GET("/properties", h.Properties.List)
		apiV1.GET("/properties/:id", h.Properties.Get)
		apiV1.POST("/properties/embeddings/batch", h.Embeddings.BatchUpdate)

		apiV1.POST("/auth/signup", h.Auth.Signup)
		apiV1.POST("/auth/login", h.Auth.Login)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "hint": "The chat UI is served separately"})
	})

	return router
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
