package form

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/optionform/internal/diagnostics"
	"github.com/guttosm/optionform/internal/domain/models"
	"github.com/guttosm/optionform/internal/logger"
	"github.com/guttosm/optionform/internal/metrics"
	"github.com/guttosm/optionform/internal/pricing"
)

// Pricer performs one pricing exchange.
type Pricer interface {
	Endpoint(method string) string
	Price(ctx context.Context, req models.PricingRequest) (*models.PricingResponse, error)
}

// Display is the result element written on success.
type Display interface {
	SetText(text string)
	Show()
}

// Outcome is the terminal state of one submission: either Response/Text
// (rendered unless Applied is false) or Err (sent to diagnostics).
type Outcome struct {
	SubmissionID string
	Request      models.PricingRequest
	Response     *models.PricingResponse
	Text         string
	Applied      bool
	Err          error
}

// Submission is the handle returned by Submit.
type Submission struct {
	ID  string
	Seq uint64

	done    chan struct{}
	outcome Outcome
}

// Done is closed once the outcome is known and applied.
func (s *Submission) Done() <-chan struct{} { return s.done }

// Wait blocks until the submission resolves or ctx ends. Giving up waiting
// does not cancel the exchange.
func (s *Submission) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-s.done:
		return s.outcome, nil
	case <-ctx.Done():
		return Outcome{SubmissionID: s.ID}, ctx.Err()
	}
}

// Option configures a Handler.
type Option func(*Handler)

// WithOrdering selects how overlapping submissions are rendered.
func WithOrdering(o Ordering) Option {
	return func(h *Handler) { h.ordering = o }
}

// WithMetrics records every submission on m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(h *Handler) { h.metrics = m }
}

// Handler runs one request/response cycle per submission.
type Handler struct {
	pricer   Pricer
	display  Display
	diag     diagnostics.Channel
	metrics  *metrics.Recorder
	ordering Ordering

	seq      atomic.Uint64
	mu       sync.Mutex
	rendered uint64

	now   func() time.Time
	newID func() string
}

// NewHandler wires a Handler. diag may be nil, in which case failures are only logged.
func NewHandler(pricer Pricer, display Display, diag diagnostics.Channel, opts ...Option) *Handler {
	if diag == nil {
		diag = diagnostics.LogChannel{}
	}
	h := &Handler{
		pricer:  pricer,
		display: display,
		diag:    diag,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Ordering reports the configured ordering policy.
func (h *Handler) Ordering() Ordering { return h.ordering }

// Submit reads the fields, builds the request and starts the exchange.
// It returns without waiting for the network. Cancelling ctx afterwards does
// not abort the exchange; submissions are never cancelled.
func (h *Handler) Submit(ctx context.Context, src FieldSource) *Submission {
	req := BuildRequest(src)
	sub := &Submission{
		ID:   h.newID(),
		Seq:  h.seq.Add(1),
		done: make(chan struct{}),
	}

	logger.L().Debug().
		Str("submission_id", sub.ID).
		Uint64("seq", sub.Seq).
		Str("method", req.Method).
		Str("url", h.pricer.Endpoint(req.Method)).
		Msg("submission dispatched")

	if h.metrics != nil {
		h.metrics.Started()
	}
	go h.run(context.WithoutCancel(ctx), sub, req)
	return sub
}

func (h *Handler) run(ctx context.Context, sub *Submission, req models.PricingRequest) {
	defer close(sub.done)
	start := h.now()
	out := Outcome{SubmissionID: sub.ID, Request: req}

	resp, err := h.pricer.Price(ctx, req)
	if err != nil {
		out.Err = err
		sub.outcome = out
		h.report(ctx, sub, req, err)
		h.finish(req.Method, metrics.OutcomeFailed, start)
		return
	}

	out.Response = resp
	out.Text = resp.ResultText()
	out.Applied = h.render(sub.Seq, out.Text)
	sub.outcome = out

	event := logger.L().Info()
	outcome := metrics.OutcomeDisplayed
	if !out.Applied {
		event = logger.L().Warn()
		outcome = metrics.OutcomeDiscarded
	}
	event.
		Str("submission_id", sub.ID).
		Uint64("seq", sub.Seq).
		Str("method", req.Method).
		Int("status", resp.StatusCode).
		Bool("has_price", resp.HasPrice()).
		Bool("applied", out.Applied).
		Msg(out.Text)

	h.finish(req.Method, outcome, start)
}

// render writes text into the display. Under LatestSubmissionWins the
// sequence check and the write happen under one lock.
func (h *Handler) render(seq uint64, text string) bool {
	if h.ordering == LatestSubmissionWins {
		h.mu.Lock()
		defer h.mu.Unlock()
		if seq < h.rendered {
			return false
		}
		h.rendered = seq
	}
	h.display.SetText(text)
	h.display.Show()
	return true
}

func (h *Handler) report(ctx context.Context, sub *Submission, req models.PricingRequest, err error) {
	kind := models.FailureTransport
	if errors.Is(err, pricing.ErrDecode) {
		kind = models.FailureDecode
	}
	h.diag.Record(ctx, models.Failure{
		ID:           uuid.NewString(),
		SubmissionID: sub.ID,
		Method:       req.Method,
		URL:          h.pricer.Endpoint(req.Method),
		Kind:         kind,
		Message:      err.Error(),
		OccurredAt:   h.now().UTC(),
	})
}

func (h *Handler) finish(method, outcome string, start time.Time) {
	if h.metrics != nil {
		h.metrics.Finished(method, outcome, h.now().Sub(start))
	}
}
