package v1

import (
	"net/http"

	"contact-relay/config"
	"contact-relay/internal/delivery/http/middleware"
	"contact-relay/internal/delivery/relay"
	"contact-relay/internal/delivery/response"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Relay  *relay.Handler
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config != nil && deps.Config.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RequestLogger())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		c.Data(http.StatusOK, response.ContentTypeJSON, response.OK())
	})

	// Public routes
	public := v1.Group("")
	public.Use(middleware.SecurityHeadersMiddleware())
	NewContactHandler(public, deps.Relay)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
