package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/optionform/config"
	"github.com/guttosm/optionform/internal/diagnostics"
	"github.com/guttosm/optionform/internal/display"
	"github.com/guttosm/optionform/internal/form"
	"github.com/guttosm/optionform/internal/metrics"
	"github.com/guttosm/optionform/internal/pricing"
	"github.com/guttosm/optionform/internal/storage"
)

// Services is the submission stack shared by the web frontend and the CLI modes.
type Services struct {
	Result    *display.ResultElement
	Submitter *form.Handler
	Metrics   *metrics.Recorder

	// Failures and DB are nil when the diagnostic journal is disabled.
	Failures storage.FailureRepository
	DB       *sql.DB
}

// NewServices builds the pricing client, result element, diagnostic channel
// and submission handler from cfg. Postgres is only opened when the journal
// is enabled.
func NewServices(cfg config.Config) (*Services, error) {
	ordering, err := form.ParseOrdering(cfg.Pricing.Ordering)
	if err != nil {
		return nil, err
	}

	s := &Services{
		Result:  display.NewResultElement(),
		Metrics: metrics.New(),
	}

	var diag diagnostics.Channel = diagnostics.LogChannel{}
	if cfg.Diagnostics.Journal {
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		s.DB = db
		s.Failures = storage.NewFailureRepository(db)
		diag = diagnostics.Multi{diag, diagnostics.NewJournalChannel(s.Failures)}
	}

	client := pricing.NewClient(cfg.Pricing.BaseURL, pricing.WithTimeout(cfg.Pricing.Timeout))
	s.Submitter = form.NewHandler(client, s.Result, diag,
		form.WithOrdering(ordering),
		form.WithMetrics(s.Metrics),
	)
	return s, nil
}

// Close releases the database handle, if any.
func (s *Services) Close() {
	if s.DB != nil {
		_ = s.DB.Close()
	}
}
