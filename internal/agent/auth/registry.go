package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"business-agent-service/internal/model"
	"business-agent-service/pkg/log"
)

const (
	registrySize = 1000
	registryTTL  = 30 * time.Minute
)

// Registry hands out one live Manager per business so OAuth2 token caches
// survive across requests. Idle entries expire; losing one only costs a
// token refresh on the next request.
type Registry struct {
	l          log.Logger
	httpClient *http.Client

	mu       sync.Mutex
	managers *expirable.LRU[string, *Manager]
}

// NewRegistry creates a registry backed by the shared outbound HTTP client.
func NewRegistry(l log.Logger, httpClient *http.Client) *Registry {
	return &Registry{
		l:          l,
		httpClient: httpClient,
		managers:   expirable.NewLRU[string, *Manager](registrySize, nil, registryTTL),
	}
}

// ManagerFor returns the business's credential manager, creating it on
// first use.
func (r *Registry) ManagerFor(businessID string, cfg model.AuthConfig) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.managers.Get(businessID); ok {
		return m
	}

	m := NewManager(r.l, businessID, cfg, r.httpClient)
	r.managers.Add(businessID, m)
	return m
}
