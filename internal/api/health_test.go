package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := func() error { return nil }
	bad := func() error { return assertErr{} }

	cases := []struct {
		name        string
		checks      map[string]func() error
		path        string
		want        int
		wantFailing []string
	}{
		{name: "healthz ok", checks: map[string]func() error{"postgres": bad}, path: "/healthz", want: 200},
		{name: "readyz without checks", checks: nil, path: "/readyz", want: 200},
		{name: "readyz ok", checks: map[string]func() error{"postgres": ok}, path: "/readyz", want: 200},
		{
			name:        "readyz degraded",
			checks:      map[string]func() error{"postgres": bad, "cache": ok, "broker": bad},
			path:        "/readyz",
			want:        503,
			wantFailing: []string{"broker", "postgres"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler(tc.checks).Register(r)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("want %d got %d", tc.want, w.Code)
			}
			if tc.wantFailing != nil {
				var body struct {
					Failing []string `json:"failing"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(body.Failing) != len(tc.wantFailing) || body.Failing[0] != tc.wantFailing[0] || body.Failing[1] != tc.wantFailing[1] {
					t.Fatalf("failing=%v, want %v", body.Failing, tc.wantFailing)
				}
			}
		})
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "err" }
