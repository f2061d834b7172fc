// Package analysis provides the client for the external link-analysis
// collaborator. The collaborator enriches saved links (word count,
// reading time, summary, label) out of band; this client only triggers
// the run and reports success or failure.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/model"
)

// HTTP client timeouts for collaborator calls.
const (
	clientTimeout         = 30 * time.Second
	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 15 * time.Second
)

// Analyzer triggers analysis of a saved link. Only success or failure
// is consumed; the enriched fields arrive through the store.
type Analyzer interface {
	Analyze(ctx context.Context, item *model.LinkItem) error
}

// Client posts persisted links to the analysis service as JSON.
type Client struct {
	httpClient *http.Client
	serviceURL string
	logger     *slog.Logger
}

// NewClient creates an analysis client for the given service URL.
// An empty URL is allowed: Analyze then logs a warning and succeeds
// without calling out, so the service can run unenriched.
func NewClient(serviceURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: clientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   tlsHandshakeTimeout,
				ResponseHeaderTimeout: responseHeaderTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		serviceURL: serviceURL,
		logger:     logger,
	}
}

// Analyze submits the persisted item to the analysis service.
// Any transport failure or non-2xx response is a server fault.
func (c *Client) Analyze(ctx context.Context, item *model.LinkItem) error {
	if c.serviceURL == "" {
		c.logger.Warn("analysis service URL is not set, skipping analysis",
			slog.String("link_id", item.ID),
		)
		return nil
	}

	body, err := json.Marshal(item)
	if err != nil {
		return apperr.ServerError{Op: "analysis marshal", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL, bytes.NewReader(body))
	if err != nil {
		return apperr.ServerError{Op: "analysis request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.ServerError{Op: "analysis call", Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperr.ServerError{
			Op:  "analysis call",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return nil
}
