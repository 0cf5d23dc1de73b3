package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/guttosm/optionform/internal/domain/models"
)

// DefaultBaseURL is the pricing API root; the method name is appended to it.
const DefaultBaseURL = "http://localhost:8081/api/"

var (
	// ErrTransport marks an exchange that never completed (dial, write, read).
	ErrTransport = errors.New("pricing: transport failure")
	// ErrDecode marks a completed exchange whose body is not usable JSON.
	ErrDecode = errors.New("pricing: decode failure")
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// Client posts pricing requests to the pricing API.
//
// The client does not look at HTTP status codes: any response whose body
// decodes as JSON is a result, 4xx and 5xx included.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a Client rooted at baseURL (DefaultBaseURL when empty).
// A zero timeout (the default) means requests run until the transport gives up.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{baseURL: baseURL}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// WithTimeout bounds every exchange.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client (its Timeout wins over WithTimeout).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Endpoint returns the URL a request for method is posted to.
// The method is appended verbatim, without escaping.
func (c *Client) Endpoint(method string) string {
	return c.baseURL + method
}

// Price sends req to the endpoint selected by req.Method and decodes the reply.
func (c *Client) Price(ctx context.Context, req models.PricingRequest) (*models.PricingResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(req.Method), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	out, err := decodeResponse(raw)
	if err != nil {
		return nil, err
	}
	out.StatusCode = resp.StatusCode
	return out, nil
}

// decodeResponse accepts any JSON document. Objects are searched for "price";
// other non-null values simply carry no price. A null document has nothing to
// read a price from and is treated as undecodable.
func decodeResponse(raw []byte) (*models.PricingResponse, error) {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: invalid JSON body (%d bytes)", ErrDecode, len(raw))
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: null body", ErrDecode)
	}

	var out models.PricingResponse
	if trimmed[0] != '{' {
		return &out, nil
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &out, nil
}
