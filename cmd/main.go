package main

//
//  @title           optionform API
//  @version         1.0
//  @description     Option pricing form frontend: forwards submissions to the pricing API and displays the result.
//  @termsOfService  https://github.com/guttosm/optionform
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/optionform
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        pricing
//  @tag.description Pricing form submission and result display
//
//  @tag.name        health
//  @tag.description Liveness and readiness checks

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/optionform/config"
	_ "github.com/guttosm/optionform/docs" // swagger docs
	"github.com/guttosm/optionform/internal/app"
	"github.com/guttosm/optionform/internal/batch"
	"github.com/guttosm/optionform/internal/domain/models"
	"github.com/guttosm/optionform/internal/form"
	"github.com/guttosm/optionform/internal/logger"
	"github.com/guttosm/optionform/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runSubmit performs one submission and prints the displayed text.
// A failed exchange has already been reported by the diagnostic channel.
func runSubmit(ctx context.Context, submitter batch.Submitter, fields form.Fields, w io.Writer) error {
	sub := submitter.Submit(ctx, fields)
	out, err := sub.Wait(ctx)
	if err != nil {
		return err
	}
	if out.Err != nil {
		return fmt.Errorf("submission %s failed: %w", sub.ID, out.Err)
	}
	_, err = fmt.Fprintln(w, out.Text)
	return err
}

// runFailures prints the most recent journaled failures, newest first.
func runFailures(ctx context.Context, repo storage.FailureRepository, limit int, w io.Writer) error {
	failures, err := repo.RecentFailures(ctx, limit)
	if err != nil {
		return err
	}
	for _, f := range failures {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.OccurredAt.Format(time.RFC3339), f.Kind, f.Method, f.SubmissionID, f.Message); err != nil {
			return err
		}
	}
	return nil
}

// main is the entry point of the optionform application.
//
// Modes (selected via --mode flag):
//   - api:      Starts the web frontend (form page, submit endpoint, result API).
//   - submit:   Sends one pricing request built from flags and prints the result.
//   - batch:    Submits every row of a CSV file and prints a summary.
//   - failures: Lists recent failed submissions from the diagnostic journal.
//
// Flags:
//   - --mode: Execution mode. Default: "api".
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
//   - --method, --type, --stock-price, --strike-price, --volatility, --rate, --time: submit mode fields.
//   - --file, --parallel: batch mode input and concurrency.
//   - --limit: failures mode row count.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api, submit, batch or failures")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	method := flag.String("method", "blackscholes", "Pricing method (submit mode)")
	optType := flag.String("type", "call", "Option type (submit mode)")
	stockPrice := flag.String("stock-price", "", "Stock price (submit mode)")
	strikePrice := flag.String("strike-price", "", "Strike price (submit mode)")
	volatility := flag.String("volatility", "", "Volatility (submit mode)")
	rate := flag.String("rate", "", "Risk-free rate (submit mode)")
	expiry := flag.String("time", "", "Time to expiration in years (submit mode)")
	file := flag.String("file", "./data/batch.csv", "CSV file (batch mode)")
	parallel := flag.Int("parallel", 0, "Concurrent submissions (0=auto up to CPU, max 16)")
	limit := flag.Int("limit", 20, "Number of failures to list (failures mode)")
	flag.Parse()

	switch *mode {
	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(context.Background(), server, cleanup)

	case "submit":
		svc, err := app.NewServices(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		fields := form.Fields{
			models.FieldMethod:       *method,
			models.FieldType:         *optType,
			models.FieldStockPrice:   *stockPrice,
			models.FieldStrikePrice:  *strikePrice,
			models.FieldVolatility:   *volatility,
			models.FieldRiskFreeRate: *rate,
			models.FieldTime:         *expiry,
		}
		err = runSubmit(ctx, svc.Submitter, fields, os.Stdout)
		svc.Close()
		if err != nil {
			logger.L().Error().Err(err).Msg("submit failed")
			os.Exit(1)
		}

	case "batch":
		logger.L().Info().Str("file", *file).Msg("running batch")
		svc, err := app.NewServices(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		sum, err := batch.ProcessFile(ctx, *file, svc.Submitter, *parallel)
		svc.Close()
		if err != nil {
			logger.L().Error().Err(err).Msg("batch failed")
			os.Exit(1)
		}
		fmt.Printf("rows=%d succeeded=%d failed=%d\n", sum.Rows, sum.Succeeded, sum.Failed)

	case "failures":
		// Direct DB connection, regardless of DIAGNOSTICS_JOURNAL
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}

		err = runFailures(ctx, storage.NewFailureRepository(db), *limit, os.Stdout)
		_ = db.Close()
		if err != nil {
			logger.L().Error().Err(err).Msg("listing failures failed")
			os.Exit(1)
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
