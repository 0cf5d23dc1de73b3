package api

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/optionform/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler).
//   - Rate limits the page and Swagger only. Submissions and result reads are
//     never rejected, so every submit reaches the pricing API.
//   - Adds request timeout handling (10 seconds). Submissions outlive it.
//   - Loads the embedded page template.
//   - Mounts the page, submit endpoint, result API, metrics and Swagger docs.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with the submission handler injected.
//   - metricsHandler (http.Handler): Prometheus exposition; nil disables /metrics.
func NewRouter(handler *Handler, metricsHandler http.Handler) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Templates ────────────────────────────────
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	// ─── Rate limit (page and docs only) ──────────
	limiter := middleware.RateLimiter()

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", limiter, ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── Metrics ──────────────────────────────────
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// ─── Page ─────────────────────────────────────
	router.GET("/", limiter, handler.Page)
	router.POST("/submit", handler.Submit)

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/result", handler.Result)
	}

	return router
}
