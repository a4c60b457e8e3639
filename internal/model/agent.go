package model

// FAQ is a static question/answer pair returned verbatim on match.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// IntentResponses holds the canned texts rendered after dispatching the
// intent's action.
type IntentResponses struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
}

// Intent is a named pattern that, when matched, triggers an action rather
// than a canned answer.
type Intent struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Keywords    []string        `json:"keywords"`
	Action      string          `json:"action"`
	Responses   IntentResponses `json:"responses"`
}

// Parameter declares one extractable action parameter. Only type "string"
// has an extraction rule; other types resolve to the default or stay absent.
type Parameter struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Required      bool     `json:"required,omitempty"`
	Description   string   `json:"description,omitempty"`
	AllowedValues []string `json:"allowed_values,omitempty"`
	Default       *string  `json:"default,omitempty"`
}

// Action is a unit of work with declared parameters, permissions and an
// execution target: either the agent-owned endpoint (APIEndpoint) or a
// business data source (DataSource + Operation).
type Action struct {
	Name                string            `json:"name"`
	Description         string            `json:"description,omitempty"`
	RequiredPermissions []string          `json:"required_permissions,omitempty"`
	Parameters          []Parameter       `json:"parameters,omitempty"`
	APIEndpoint         string            `json:"api_endpoint,omitempty"`
	Method              string            `json:"method"`
	DataSource          string            `json:"data_source,omitempty"`
	Operation           string            `json:"operation,omitempty"`
	ResponseMapping     map[string]string `json:"response_mapping,omitempty"`
}

// DataSource is a business-owned external API surface. Methods maps an
// operation name to its path template ("{key}" placeholders are substituted
// from the user context at dispatch time).
type DataSource struct {
	Type     string            `json:"type,omitempty"`
	Endpoint string            `json:"endpoint"`
	AuthType string            `json:"auth_type"`
	Methods  map[string]string `json:"methods"`
	Headers  map[string]string `json:"headers,omitempty"`
}

// OAuth2Config configures the client-credentials grant against the
// business's token endpoint.
type OAuth2Config struct {
	TokenURL     string   `json:"token_url"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes,omitempty"`
	GrantType    string   `json:"grant_type,omitempty"`
}

// APIKeyConfig is a static API key sent in a configurable header.
type APIKeyConfig struct {
	Key        string `json:"key"`
	HeaderName string `json:"header_name,omitempty"`
}

// JWTConfig carries a pre-issued bearer token.
type JWTConfig struct {
	Token string `json:"token"`
}

// BasicConfig is HTTP Basic credentials.
type BasicConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthConfig holds at most one configuration block per auth type for one
// business.
type AuthConfig struct {
	OAuth2 *OAuth2Config `json:"oauth2,omitempty"`
	APIKey *APIKeyConfig `json:"api_key,omitempty"`
	JWT    *JWTConfig    `json:"jwt,omitempty"`
	Basic  *BasicConfig  `json:"basic,omitempty"`
}

// IntegrationConfig wires a business's data sources, auth material and
// field-name rename tables (data source name -> internal field -> external
// field).
type IntegrationConfig struct {
	DataSources   map[string]DataSource        `json:"data_sources"`
	Auth          AuthConfig                   `json:"auth"`
	FieldMappings map[string]map[string]string `json:"field_mappings,omitempty"`
}

// AgentConfig is the immutable-per-request snapshot of one agent. The
// engine never persists or mutates it.
type AgentConfig struct {
	Name            string             `json:"name,omitempty"`
	Description     string             `json:"description,omitempty"`
	Intents         []Intent           `json:"intents"`
	Actions         map[string]Action  `json:"actions"`
	DefaultResponse string             `json:"default_response"`
	Integration     *IntegrationConfig `json:"integration_config,omitempty"`
}

// BusinessProfile groups everything the engine needs for one business:
// the agent config plus the FAQ list.
type BusinessProfile struct {
	ID    string      `json:"id"`
	Name  string      `json:"name,omitempty"`
	FAQs  []FAQ       `json:"faqs,omitempty"`
	Agent AgentConfig `json:"agent"`
}
