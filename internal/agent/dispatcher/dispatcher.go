package dispatcher

import (
	"context"
	"fmt"
	"net/http"

	"business-agent-service/internal/agent"
	"business-agent-service/internal/agent/auth"
	"business-agent-service/pkg/log"
)

// Dispatcher executes configured actions against agent-owned endpoints
// (standard path) or business data sources (integrated path). It never
// retries; every failure comes back as Outcome data.
type Dispatcher struct {
	l          log.Logger
	httpClient *http.Client
	auth       *auth.Registry
}

// New creates a dispatcher backed by the shared outbound HTTP client.
func New(l log.Logger, httpClient *http.Client, authRegistry *auth.Registry) *Dispatcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Dispatcher{
		l:          l,
		httpClient: httpClient,
		auth:       authRegistry,
	}
}

// Execute resolves and runs one action. Permission failures short-circuit
// before any network call. Panics from configuration bugs are converted to
// a generic failure outcome at this boundary.
func (d *Dispatcher) Execute(ctx context.Context, in agent.ExecuteInput) (out agent.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.l.Errorf(ctx, "dispatch panic for action %s: %v", in.ActionID, r)
			out = agent.Failure(fmt.Sprintf("unexpected error: %v", r))
		}
	}()

	action, ok := in.Config.Actions[in.ActionID]
	if !ok {
		return agent.Failure(agent.MsgActionNotFound)
	}

	if !in.User.HasPermissions(action.RequiredPermissions) {
		return agent.Failure(agent.MsgPermissionDenied)
	}

	if action.DataSource != "" && in.Config.Integration != nil {
		return d.executeIntegrated(ctx, in, action)
	}
	return d.executeStandard(ctx, in, action)
}
