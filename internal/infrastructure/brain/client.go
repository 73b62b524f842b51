package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nexuscommerce/decision-service/internal/domain/port"
)

// Client calls the remote rule override service over HTTP. The service may
// return an overriding result for a rule, or decline, in which case the
// caller keeps its locally computed result.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client for the override service at baseURL. The timeout
// bounds each request end to end.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// evaluateResponse is the wire envelope returned by the override service.
// A null result means the service declined to override.
type evaluateResponse struct {
	Result json.RawMessage `json:"result"`
}

// Evaluate posts the rule context to the override service. It returns
// port.ErrNoOverride when the service declines (204, or a null result).
func (c *Client) Evaluate(ctx context.Context, req port.OverrideRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal override request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/evaluate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build override request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call override service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, port.ErrNoOverride
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("override service returned status %d", resp.StatusCode)
	}

	var envelope evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode override response: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil, port.ErrNoOverride
	}

	c.logger.Debug("override received",
		slog.String("domain", req.Domain),
		slog.String("rule", req.Rule),
	)

	return envelope.Result, nil
}
