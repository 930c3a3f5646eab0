package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/stwalsh4118/portfolio/internal/logger"
	"github.com/stwalsh4118/portfolio/internal/middleware"
)

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Logger      *logger.Logger
	CORSOrigins []string
	Health      *HealthHandler
	Properties  *PropertyHandler
	Forms       *FormHandler
	Places      *PlacesHandler
}

var registerFieldNames sync.Once

// fieldName reports binding failures under the query or JSON name the client sent.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// NewRouter builds the gin engine with the middleware chain and every API route.
func NewRouter(cfg RouterConfig) *gin.Engine {
	registerFieldNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(fieldName)
		}
	})

	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Logger, "/health", "/health/ready"))
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/health", cfg.Health.Health)
	router.GET("/health/ready", cfg.Health.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", cfg.Health.Info)

		properties := v1.Group("/properties")
		{
			properties.GET("", cfg.Properties.List)
			properties.POST("", cfg.Properties.Create)
			properties.POST("/view", cfg.Properties.View)
			properties.GET("/summary", cfg.Properties.Summary)
			properties.GET("/:id", cfg.Properties.Get)
			properties.DELETE("/:id", cfg.Properties.Delete)
			properties.GET("/:id/nearby", cfg.Properties.Nearby)
			properties.GET("/:id/documents", cfg.Properties.Documents)
			properties.POST("/:id/documents", cfg.Properties.UploadDocument)
			properties.PATCH("/:id/documents/:documentId", cfg.Properties.UpdateDocument)
			properties.DELETE("/:id/documents/:documentId", cfg.Properties.DeleteDocument)
			properties.GET("/:id/insurance", cfg.Properties.Insurance)
			properties.PUT("/:id/insurance", cfg.Properties.UpdateInsurance)
			properties.POST("/:id/roof-assessments", cfg.Properties.RequestRoofAssessment)
		}

		v1.POST("/forms/:form/events", cfg.Forms.Event)

		places := v1.Group("/places")
		{
			places.GET("/autocomplete", cfg.Places.Autocomplete)
			places.GET("/photo", cfg.Places.Photo)
			places.GET("/photos/:reference", cfg.Places.PhotoContent)
			places.GET("/:placeId", cfg.Places.Details)
		}
	}

	return router
}
