package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_Finished(t *testing.T) {
	r := New()
	r.Started()
	r.Started()
	r.Finished("binomial", OutcomeDisplayed, 10*time.Millisecond)

	if got := testutil.ToFloat64(r.inFlight); got != 1 {
		t.Fatalf("in flight=%v, want 1", got)
	}
	if got := testutil.ToFloat64(r.submissions.WithLabelValues("binomial", OutcomeDisplayed)); got != 1 {
		t.Fatalf("displayed=%v, want 1", got)
	}
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	// Two recorders must not panic on duplicate registration.
	a, b := New(), New()
	if a.Registry() == b.Registry() {
		t.Fatalf("expected distinct registries")
	}
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.Started()
	r.Finished("montecarlo", OutcomeFailed, time.Millisecond)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `optionform_submissions_total{method="montecarlo",outcome="failed"} 1`) {
		t.Fatalf("metric not exposed:\n%s", w.Body.String())
	}
}
