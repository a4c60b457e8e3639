package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfigInvalid marks a config that fails load-time validation.
var ErrConfigInvalid = errors.New("config invalid")

var validMethods = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "PATCH": {}, "DELETE": {},
}

var validAuthTypes = map[string]struct{}{
	"oauth2": {}, "api_key": {}, "jwt": {}, "basic": {}, "none": {},
}

// Validate checks a business profile once at load time. Intent→action
// references are deliberately NOT checked here: an intent pointing at a
// missing action surfaces as a NotFound dispatch outcome at execution time.
func (p BusinessProfile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: business id is required", ErrConfigInvalid)
	}
	return p.Agent.Validate()
}

// Validate checks structural soundness of an agent config.
func (c AgentConfig) Validate() error {
	if c.DefaultResponse == "" {
		return fmt.Errorf("%w: default_response is required", ErrConfigInvalid)
	}

	for i, intent := range c.Intents {
		if intent.Name == "" {
			return fmt.Errorf("%w: intent[%d] has no name", ErrConfigInvalid, i)
		}
		if len(intent.Keywords) == 0 {
			return fmt.Errorf("%w: intent %q has no keywords", ErrConfigInvalid, intent.Name)
		}
		if intent.Action == "" {
			return fmt.Errorf("%w: intent %q has no action", ErrConfigInvalid, intent.Name)
		}
	}

	for id, action := range c.Actions {
		// Dispatch upper-cases the method, so case must not fail the load.
		if _, ok := validMethods[strings.ToUpper(action.Method)]; !ok {
			return fmt.Errorf("%w: action %q has unsupported method %q", ErrConfigInvalid, id, action.Method)
		}
		if action.DataSource == "" && action.APIEndpoint == "" {
			return fmt.Errorf("%w: action %q has neither api_endpoint nor data_source", ErrConfigInvalid, id)
		}
	}

	if c.Integration != nil {
		for name, ds := range c.Integration.DataSources {
			if ds.Endpoint == "" {
				return fmt.Errorf("%w: data source %q has no endpoint", ErrConfigInvalid, name)
			}
			if _, ok := validAuthTypes[ds.AuthType]; !ok {
				return fmt.Errorf("%w: data source %q has unsupported auth_type %q", ErrConfigInvalid, name, ds.AuthType)
			}
			if len(ds.Methods) == 0 {
				return fmt.Errorf("%w: data source %q declares no operations", ErrConfigInvalid, name)
			}
		}
	}

	return nil
}
