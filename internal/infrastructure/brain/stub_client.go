package brain

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nexuscommerce/decision-service/internal/domain/port"
)

// StubClient implements port.RuleOverrideClient as a stub for development
// and for deployments that run without the override service. It never
// overrides anything.
type StubClient struct {
	logger *slog.Logger
}

// NewStubClient creates a new stub override client.
func NewStubClient(logger *slog.Logger) *StubClient {
	return &StubClient{logger: logger}
}

// Evaluate always declines, so callers keep their locally computed result.
func (c *StubClient) Evaluate(ctx context.Context, req port.OverrideRequest) (json.RawMessage, error) {
	c.logger.Debug("stub override evaluation requested",
		slog.String("domain", req.Domain),
		slog.String("rule", req.Rule),
	)
	return nil, port.ErrNoOverride
}
