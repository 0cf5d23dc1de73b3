package app

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/optionform/config"
	"github.com/guttosm/optionform/internal/api"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the submission stack with NewServices().
//   - Creates the HTTP handler layer on top of the submission handler and result element.
//   - Configures the Gin router with the page, submit and API routes plus /metrics.
//   - Registers health and readiness checks (Postgres only when the journal is on).
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	svc, err := NewServices(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Initialize HTTP handler layer
	handler := api.NewHandler(svc.Submitter, svc.Result)

	// Setup Gin router with routes
	router := api.NewRouter(handler, svc.Metrics.Handler())

	// Register health and readiness checks
	checks := map[string]func() error{}
	if svc.DB != nil {
		checks["postgres"] = svc.DB.Ping
	}
	api.NewHealthHandler(checks).Register(router)

	return router, svc.Close, nil
}
