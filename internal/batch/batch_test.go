package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guttosm/optionform/internal/diagnostics"
	"github.com/guttosm/optionform/internal/display"
	"github.com/guttosm/optionform/internal/domain/models"
	"github.com/guttosm/optionform/internal/form"
	"github.com/guttosm/optionform/internal/pricing"
)

// fakePricer prices "fail" methods as transport errors and everything else at 1.
type fakePricer struct {
	mu       sync.Mutex
	methods  []string
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (p *fakePricer) Endpoint(method string) string { return "http://pricing.test/api/" + method }

func (p *fakePricer) Price(_ context.Context, req models.PricingRequest) (*models.PricingResponse, error) {
	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(p.delay)

	p.mu.Lock()
	p.methods = append(p.methods, req.Method)
	p.mu.Unlock()

	if req.Method == "fail" {
		return nil, fmt.Errorf("%w: connection refused", pricing.ErrTransport)
	}
	return &models.PricingResponse{Price: []byte("1")}, nil
}

type countingChannel struct{ n atomic.Int32 }

func (c *countingChannel) Record(context.Context, models.Failure) { c.n.Add(1) }

var _ diagnostics.Channel = (*countingChannel)(nil)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "batch.csv")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestProcessFile_CountsOutcomes(t *testing.T) {
	pricer := &fakePricer{}
	diag := &countingChannel{}
	result := display.NewResultElement()
	h := form.NewHandler(pricer, result, diag)

	path := writeFile(t, validHeader+
		"blackscholes,call,100,95,0.2,0.05,1\n"+
		"fail,put,100,95,0.2,0.05,1\n"+
		"binomial,put,100,95,0.2,0.05,1\n")

	sum, err := ProcessFile(context.Background(), path, h, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sum != (Summary{Rows: 3, Succeeded: 2, Failed: 1}) {
		t.Fatalf("summary=%+v", sum)
	}
	if diag.n.Load() != 1 {
		t.Fatalf("diagnostic entries=%d want 1", diag.n.Load())
	}
	if st := result.Snapshot(); !st.Visible || st.Text != "Calculated Option Price: $1" || st.Updates != 2 {
		t.Fatalf("result=%+v", st)
	}
}

func TestProcessFile_BoundedParallelism(t *testing.T) {
	pricer := &fakePricer{delay: 20 * time.Millisecond}
	h := form.NewHandler(pricer, display.NewResultElement(), &countingChannel{})

	content := validHeader
	for i := 0; i < 12; i++ {
		content += "blackscholes,call,100,95,0.2,0.05,1\n"
	}
	sum, err := ProcessFile(context.Background(), writeFile(t, content), h, 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sum.Rows != 12 || sum.Succeeded != 12 {
		t.Fatalf("summary=%+v", sum)
	}
	if peak := pricer.peak.Load(); peak > 3 {
		t.Fatalf("peak in-flight=%d exceeds 3", peak)
	}
}

func TestProcessFile_StructuralErrorSubmitsNothing(t *testing.T) {
	pricer := &fakePricer{}
	h := form.NewHandler(pricer, display.NewResultElement(), &countingChannel{})

	path := writeFile(t, validHeader+"blackscholes,call,100,95,0.2,0.05,1\nbroken,row\n")
	if _, err := ProcessFile(context.Background(), path, h, 1); err == nil {
		t.Fatalf("expected error")
	}
	if len(pricer.methods) != 0 {
		t.Fatalf("submitted %v before validating the file", pricer.methods)
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	h := form.NewHandler(&fakePricer{}, display.NewResultElement(), nil)
	if _, err := ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), h, 1); err == nil {
		t.Fatalf("expected error")
	}
}

func TestProcessFile_CancelledContext(t *testing.T) {
	h := form.NewHandler(&fakePricer{delay: 50 * time.Millisecond}, display.NewResultElement(), &countingChannel{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeFile(t, validHeader+"blackscholes,call,1,1,1,1,1\nbinomial,call,1,1,1,1,1\n")
	if _, err := ProcessFile(ctx, path, h, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveParallel(t *testing.T) {
	if got := resolveParallel(100); got != maxParallelLimit {
		t.Fatalf("want %d got %d", maxParallelLimit, got)
	}
	if got := resolveParallel(3); got != 3 {
		t.Fatalf("want 3 got %d", got)
	}
	if got := resolveParallel(0); got < 1 || got > 8 {
		t.Fatalf("default out of range: %d", got)
	}
}
