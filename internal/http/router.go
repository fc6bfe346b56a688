package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nurpe/dealflow/internal/http/middleware"
)

// NewRouter assembles the gin engine. authMiddleware may be nil, in which
// case the API is open (development and test setups).
func NewRouter(h *Handler, authMiddleware gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(h.log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
	}))

	router.GET("/health", h.Health)

	api := router.Group("/")
	if authMiddleware != nil {
		api.Use(authMiddleware)
	}
	h.Register(api)

	return router
}
