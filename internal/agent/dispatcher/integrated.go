package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"business-agent-service/internal/agent"
	"business-agent-service/internal/agent/auth"
	"business-agent-service/internal/model"
)

// The operation assumed when an integrated action declares none.
const defaultOperation = "update"

// executeIntegrated runs an action against a business data source: path
// template resolution, credential headers, field-name translation and
// response normalization.
func (d *Dispatcher) executeIntegrated(ctx context.Context, in agent.ExecuteInput, action model.Action) agent.Outcome {
	integration := in.Config.Integration

	ds, ok := integration.DataSources[action.DataSource]
	if !ok {
		return agent.Failure(agent.MsgDataSourceMissing)
	}

	operation := action.Operation
	if operation == "" {
		operation = defaultOperation
	}
	template, ok := ds.Methods[operation]
	if !ok {
		return agent.Failure(agent.MsgOperationUnsupported)
	}

	endpoint := ds.Endpoint + template
	for key, value := range in.User.PathValues() {
		endpoint = strings.ReplaceAll(endpoint, "{"+key+"}", value)
	}

	manager := d.auth.ManagerFor(in.BusinessID, integration.Auth)
	authHeaders := manager.AuthHeaders(ctx, ds.AuthType)
	if len(authHeaders) == 0 && ds.AuthType != auth.TypeNone {
		return agent.Failure(agent.MsgAuthHeadersUnavailable)
	}

	// Later entries win on key collision: data-source headers override auth
	// headers override the content type.
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range authHeaders {
		headers[k] = v
	}
	for k, v := range ds.Headers {
		headers[k] = v
	}

	payload := mapFields(in.Params, integration.FieldMappings[action.DataSource])

	req, err := buildRequest(ctx, strings.ToUpper(action.Method), endpoint, payload)
	if err != nil {
		return agent.Failure(fmt.Sprintf("Failed to execute action: %v", err))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.l.Errorf(ctx, "error executing integrated action %s: %v", action.Name, err)
		return agent.Failure(fmt.Sprintf("Failed to execute action: %v", err))
	}
	defer resp.Body.Close()

	return d.normalizeResponse(ctx, action, resp)
}

// buildRequest shapes the outbound request per verb: GET carries the
// payload as query parameters, DELETE carries nothing, the rest carry a
// JSON body.
func buildRequest(ctx context.Context, method, endpoint string, payload map[string]string) (*http.Request, error) {
	switch method {
	case http.MethodGet:
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		for k, v := range payload {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil

	case http.MethodDelete:
		return http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)

	case http.MethodPost, http.MethodPut, http.MethodPatch:
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	}

	return nil, fmt.Errorf("unsupported HTTP method: %s", method)
}

// mapFields renames parameters to the business's field vocabulary.
// Unmapped keys pass through unchanged.
func mapFields(params map[string]string, mapping map[string]string) map[string]string {
	if len(mapping) == 0 {
		return params
	}

	mapped := make(map[string]string, len(params))
	for name, value := range params {
		if external, ok := mapping[name]; ok {
			mapped[external] = value
		} else {
			mapped[name] = value
		}
	}
	return mapped
}

// normalizeResponse turns the upstream response into an Outcome: 2xx bodies
// are decoded and optionally projected through the action's response
// mapping; errors extract a message from the body's "error" field, the raw
// text, or a generic status line, in that order.
func (d *Dispatcher) normalizeResponse(ctx context.Context, action model.Action, resp *http.Response) agent.Outcome {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return agent.Failure(fmt.Sprintf("Failed to execute action: %v", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		data := map[string]any{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &data); err != nil {
				return agent.Failure(fmt.Sprintf("Failed to execute action: %v", err))
			}
		}
		if len(action.ResponseMapping) > 0 {
			return agent.Outcome{Success: true, Data: mapResponse(data, action.ResponseMapping)}
		}
		return agent.Outcome{Success: true, Data: data}
	}

	message := fmt.Sprintf("API request failed with status %d", resp.StatusCode)

	var errBody map[string]any
	if json.Unmarshal(raw, &errBody) == nil {
		if msg, ok := errBody["error"].(string); ok && msg != "" {
			message = msg
		}
	} else if len(raw) > 0 {
		message = string(raw)
	}

	d.l.Errorf(ctx, "integrated action %s failed: %s", action.Name, message)
	return agent.Failure(message)
}

// mapResponse projects the response body into the declared output fields,
// walking dot-separated paths into nested objects. A missing segment yields
// nil for that field without failing the response.
func mapResponse(data map[string]any, mapping map[string]string) map[string]any {
	result := make(map[string]any, len(mapping))
	for outField, path := range mapping {
		result[outField] = lookupPath(data, path)
	}
	return result
}

func lookupPath(data map[string]any, path string) any {
	var value any = data
	for _, part := range strings.Split(path, ".") {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		if value, ok = obj[part]; !ok {
			return nil
		}
	}
	return value
}
