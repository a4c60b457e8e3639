package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"business-agent-service/internal/model"
	"business-agent-service/pkg/log"
)

// Auth types supported by business data sources.
const (
	TypeOAuth2 = "oauth2"
	TypeAPIKey = "api_key"
	TypeJWT    = "jwt"
	TypeBasic  = "basic"
	TypeNone   = "none"
)

const (
	// Tokens this close to expiry are treated as expired and refreshed.
	expiryBuffer = 60 * time.Second
	// Applied when the token endpoint omits expires_in.
	defaultTokenTTL = time.Hour

	defaultAPIKeyHeader = "X-API-Key"
)

// Manager produces ready-to-use authentication headers for one business.
// It owns that business's short-lived OAuth2 tokens. Missing config blocks
// and failed refreshes degrade to an empty header map (logged), never to an
// error; callers must treat an empty map with a non-"none" auth type as an
// authentication failure.
type Manager struct {
	l          log.Logger
	businessID string
	cfg        model.AuthConfig
	httpClient *http.Client

	mu     sync.Mutex
	tokens map[string]cachedToken
	group  singleflight.Group
}

type cachedToken struct {
	accessToken string
	expiresAt   time.Time
}

// NewManager creates the credential manager for one business.
func NewManager(l log.Logger, businessID string, cfg model.AuthConfig, httpClient *http.Client) *Manager {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Manager{
		l:          l,
		businessID: businessID,
		cfg:        cfg,
		httpClient: httpClient,
		tokens:     make(map[string]cachedToken),
	}
}

// AuthHeaders returns the authentication headers for the given auth type.
// Unrecognized auth types (including "none") yield an empty map.
func (m *Manager) AuthHeaders(ctx context.Context, authType string) map[string]string {
	switch authType {
	case TypeOAuth2:
		token := m.oauthToken(ctx)
		if token == "" {
			return map[string]string{}
		}
		return map[string]string{"Authorization": "Bearer " + token}

	case TypeAPIKey:
		if m.cfg.APIKey == nil {
			m.l.Errorf(ctx, "api_key configuration missing for business %s", m.businessID)
			return map[string]string{}
		}
		header := m.cfg.APIKey.HeaderName
		if header == "" {
			header = defaultAPIKeyHeader
		}
		return map[string]string{header: m.cfg.APIKey.Key}

	case TypeJWT:
		if m.cfg.JWT == nil || m.cfg.JWT.Token == "" {
			m.l.Errorf(ctx, "jwt token missing for business %s", m.businessID)
			return map[string]string{}
		}
		return map[string]string{"Authorization": "Bearer " + m.cfg.JWT.Token}

	case TypeBasic:
		if m.cfg.Basic == nil {
			m.l.Errorf(ctx, "basic auth configuration missing for business %s", m.businessID)
			return map[string]string{}
		}
		creds := base64.StdEncoding.EncodeToString([]byte(m.cfg.Basic.Username + ":" + m.cfg.Basic.Password))
		return map[string]string{"Authorization": "Basic " + creds}
	}

	return map[string]string{}
}

// oauthToken returns a valid cached access token, refreshing it when the
// cache is empty or inside the expiry buffer. Concurrent callers during a
// refresh share a single token request.
func (m *Manager) oauthToken(ctx context.Context) string {
	if tok, ok := m.cachedValid(TypeOAuth2); ok {
		return tok
	}

	result, err, _ := m.group.Do(TypeOAuth2, func() (any, error) {
		// Another caller may have finished a refresh while we waited.
		if tok, ok := m.cachedValid(TypeOAuth2); ok {
			return tok, nil
		}
		return m.refreshOAuthToken(ctx)
	})
	if err != nil {
		m.l.Errorf(ctx, "failed to refresh oauth token for business %s: %v", m.businessID, err)
		return ""
	}
	return result.(string)
}

func (m *Manager) cachedValid(authType string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok, ok := m.tokens[authType]
	if !ok {
		return "", false
	}
	if !tok.expiresAt.After(time.Now().Add(expiryBuffer)) {
		return "", false
	}
	return tok.accessToken, true
}

// refreshOAuthToken performs a client-credentials grant against the
// business's token endpoint and caches the result.
func (m *Manager) refreshOAuthToken(ctx context.Context) (string, error) {
	if m.cfg.OAuth2 == nil {
		return "", fmt.Errorf("oauth2 configuration missing for business %s", m.businessID)
	}

	cc := clientcredentials.Config{
		ClientID:     m.cfg.OAuth2.ClientID,
		ClientSecret: m.cfg.OAuth2.ClientSecret,
		TokenURL:     m.cfg.OAuth2.TokenURL,
		Scopes:       m.cfg.OAuth2.Scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tok, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, m.httpClient))
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}

	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(defaultTokenTTL)
	}

	m.mu.Lock()
	m.tokens[TypeOAuth2] = cachedToken{accessToken: tok.AccessToken, expiresAt: expiresAt}
	m.mu.Unlock()

	m.l.Infof(ctx, "oauth token refreshed for business %s", m.businessID)
	return tok.AccessToken, nil
}
