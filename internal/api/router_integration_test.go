//go:build integration
// +build integration

package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/optionform/config"
	"github.com/guttosm/optionform/internal/app"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "optionform",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=optionform sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "optionform")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func openAndMigrate(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func submit(t *testing.T, router http.Handler, method string) {
	t.Helper()
	body := url.Values{"method": {method}, "type": {"call"}, "stockPrice": {"100"}, "strikePrice": {"95"}, "volatility": {"0.2"}, "riskFreeRate": {"0.05"}, "time": {"1"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("submit status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestAPI_E2E_SubmitAndJournal(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()
	db := openAndMigrate(t, dsn)
	defer db.Close()

	// Pricing API: blackscholes answers, anything else returns a non-JSON body
	pricingAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/blackscholes" {
			_, _ = w.Write([]byte(`{"price": 7.5}`))
			return
		}
		http.Error(w, "no such method", http.StatusNotFound)
	}))
	defer pricingAPI.Close()

	// Point application config to containerized DB
	old := config.AppConfig
	defer func() { config.AppConfig = old }()
	p, _ := nat.ParsePort(port.Port())
	config.AppConfig = config.Config{
		Pricing:     config.PricingConfig{BaseURL: pricingAPI.URL + "/api/"},
		Diagnostics: config.DiagnosticsConfig{Journal: true},
		Postgres: config.PostgresConfig{
			Host:     host,
			Port:     p,
			User:     "postgres",
			Password: "postgres",
			DBName:   "optionform",
			SSLMode:  "disable",
		},
	}

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}

	submit(t, router, "blackscholes")
	submit(t, router, "heston")

	deadline := time.Now().Add(10 * time.Second)
	var (
		body struct {
			Text    string `json:"text"`
			Visible bool   `json:"visible"`
		}
		journaled int
	)
	for time.Now().Before(deadline) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/result", nil))
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if err := db.QueryRow(`SELECT COUNT(*) FROM submission_failures WHERE method = 'heston' AND kind = 'decode'`).Scan(&journaled); err != nil {
			t.Fatalf("count: %v", err)
		}
		if body.Visible && journaled == 1 {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}

	if !body.Visible || body.Text != "Calculated Option Price: $7.5" {
		t.Fatalf("unexpected result: %+v", body)
	}
	if journaled != 1 {
		t.Fatalf("expected one journaled decode failure, got %d", journaled)
	}
}
