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
	"business-agent-service/internal/model"
)

// executeStandard issues one request of the action's method to the
// agent-owned endpoint with a JSON body carrying the parameters and the
// caller context.
func (d *Dispatcher) executeStandard(ctx context.Context, in agent.ExecuteInput, action model.Action) agent.Outcome {
	payload := map[string]any{
		"parameters":   in.Params,
		"user_context": in.User,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return agent.Failure(fmt.Sprintf("Error: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(action.Method), action.APIEndpoint, bytes.NewReader(body))
	if err != nil {
		return agent.Failure(fmt.Sprintf("Error: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.l.Errorf(ctx, "error executing action %s: %v", action.Name, err)
		return agent.Failure(fmt.Sprintf("Error: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return agent.Failure(fmt.Sprintf("Error: %v", err))
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		var data any
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &data); err != nil {
				return agent.Failure(fmt.Sprintf("Error: %v", err))
			}
		}
		return agent.Outcome{Success: true, Message: "Action executed successfully", Data: data}
	default:
		d.l.Errorf(ctx, "error executing action %s: status %d: %s", action.Name, resp.StatusCode, raw)
		return agent.Failure("Error: " + string(raw))
	}
}
