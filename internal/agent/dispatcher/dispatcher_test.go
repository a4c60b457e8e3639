package dispatcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"business-agent-service/internal/agent"
	"business-agent-service/internal/agent/auth"
	"business-agent-service/internal/model"
	"business-agent-service/pkg/log"
)

func newTestDispatcher() *Dispatcher {
	client := &http.Client{}
	return New(log.NewNop(), client, auth.NewRegistry(log.NewNop(), client))
}

func standardConfig(endpoint string) model.AgentConfig {
	return model.AgentConfig{
		Actions: map[string]model.Action{
			"cancel_order": {
				Name:        "cancel_order",
				Method:      "POST",
				APIEndpoint: endpoint,
			},
		},
	}
}

func TestExecuteActionNotFound(t *testing.T) {
	d := newTestDispatcher()

	out := d.Execute(context.Background(), agent.ExecuteInput{
		Config:   model.AgentConfig{Actions: map[string]model.Action{}},
		ActionID: "nope",
	})
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Message != agent.MsgActionNotFound {
		t.Errorf("message = %q, want %q", out.Message, agent.MsgActionNotFound)
	}
}

func TestExecutePermissionDenied(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	cfg := standardConfig(srv.URL)
	action := cfg.Actions["cancel_order"]
	action.RequiredPermissions = []string{"orders:write"}
	cfg.Actions["cancel_order"] = action

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{
		Config:   cfg,
		ActionID: "cancel_order",
		User:     model.UserContext{UserID: "u1", Permissions: []string{"orders:read"}},
	})
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Message != agent.MsgPermissionDenied {
		t.Errorf("message = %q, want %q", out.Message, agent.MsgPermissionDenied)
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Errorf("server received %d requests, want 0", n)
	}
}

func TestExecuteStandardSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		params, _ := body["parameters"].(map[string]any)
		if params["order_id"] != "12345" {
			t.Errorf("parameters = %v", body["parameters"])
		}
		userCtx, _ := body["user_context"].(map[string]any)
		if userCtx["user_id"] != "u1" {
			t.Errorf("user_context = %v", body["user_context"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{
		Config:   standardConfig(srv.URL),
		ActionID: "cancel_order",
		Params:   map[string]string{"order_id": "12345"},
		User:     model.UserContext{UserID: "u1"},
	})
	if !out.Success {
		t.Fatalf("outcome = %+v, want success", out)
	}
	if out.Message != "Action executed successfully" {
		t.Errorf("message = %q", out.Message)
	}
	data, ok := out.Data.(map[string]any)
	if !ok || data["ok"] != true {
		t.Errorf("data = %v", out.Data)
	}
}

func TestExecuteStandardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{
		Config:   standardConfig(srv.URL),
		ActionID: "cancel_order",
	})
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Message != "Error: boom" {
		t.Errorf("message = %q, want %q", out.Message, "Error: boom")
	}
}

func integratedConfig(endpoint string) model.AgentConfig {
	return model.AgentConfig{
		Actions: map[string]model.Action{
			"order_status": {
				Name:       "order_status",
				Method:     "GET",
				DataSource: "orders",
				Operation:  "status",
				ResponseMapping: map[string]string{
					"status":  "order.status",
					"missing": "order.nope",
				},
			},
		},
		Integration: &model.IntegrationConfig{
			DataSources: map[string]model.DataSource{
				"orders": {
					Endpoint: endpoint,
					AuthType: auth.TypeNone,
					Methods:  map[string]string{"status": "/orders/{user_id}/status"},
					Headers:  map[string]string{"X-Tenant": "t1"},
				},
			},
			FieldMappings: map[string]map[string]string{
				"orders": {"order_id": "order_ref"},
			},
		},
	}
}

func TestExecuteIntegratedGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/u42/status" {
			t.Errorf("path = %q, want /orders/u42/status", r.URL.Path)
		}
		if got := r.URL.Query().Get("order_ref"); got != "9" {
			t.Errorf("order_ref = %q, want 9", got)
		}
		if got := r.Header.Get("X-Tenant"); got != "t1" {
			t.Errorf("X-Tenant = %q, want t1", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order":{"status":"shipped","carrier":"acme"}}`))
	}))
	defer srv.Close()

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{
		BusinessID: "biz-1",
		Config:     integratedConfig(srv.URL),
		ActionID:   "order_status",
		Params:     map[string]string{"order_id": "9"},
		User:       model.UserContext{UserID: "u42"},
	})
	if !out.Success {
		t.Fatalf("outcome = %+v, want success", out)
	}

	data, ok := out.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %v", out.Data)
	}
	if data["status"] != "shipped" {
		t.Errorf("status = %v, want shipped", data["status"])
	}
	if v, present := data["missing"]; !present || v != nil {
		t.Errorf("missing = %v (present=%v), want nil and present", v, present)
	}
	if _, present := data["carrier"]; present {
		t.Errorf("unmapped field leaked into the projected response: %v", data)
	}
}

func TestExecuteIntegratedDataSourceMissing(t *testing.T) {
	cfg := integratedConfig("http://unused")
	action := cfg.Actions["order_status"]
	action.DataSource = "unknown"
	cfg.Actions["order_status"] = action

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{Config: cfg, ActionID: "order_status"})
	if out.Success || out.Message != agent.MsgDataSourceMissing {
		t.Errorf("outcome = %+v, want %q", out, agent.MsgDataSourceMissing)
	}
}

func TestExecuteIntegratedOperationUnsupported(t *testing.T) {
	cfg := integratedConfig("http://unused")
	action := cfg.Actions["order_status"]
	action.Operation = "delete_everything"
	cfg.Actions["order_status"] = action

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{Config: cfg, ActionID: "order_status"})
	if out.Success || out.Message != agent.MsgOperationUnsupported {
		t.Errorf("outcome = %+v, want %q", out, agent.MsgOperationUnsupported)
	}
}

func TestExecuteIntegratedAuthUnavailable(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	// The data source demands an API key but the business never configured
	// one: the dispatch must fail before any outbound request.
	cfg := integratedConfig(srv.URL)
	ds := cfg.Integration.DataSources["orders"]
	ds.AuthType = auth.TypeAPIKey
	cfg.Integration.DataSources["orders"] = ds

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{Config: cfg, ActionID: "order_status"})
	if out.Success || out.Message != agent.MsgAuthHeadersUnavailable {
		t.Errorf("outcome = %+v, want %q", out, agent.MsgAuthHeadersUnavailable)
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Errorf("server received %d requests, want 0", n)
	}
}

func TestExecuteIntegratedAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Key"); got != "sekret" {
			t.Errorf("X-API-Key = %q, want sekret", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := integratedConfig(srv.URL)
	ds := cfg.Integration.DataSources["orders"]
	ds.AuthType = auth.TypeAPIKey
	cfg.Integration.DataSources["orders"] = ds
	cfg.Integration.Auth = model.AuthConfig{APIKey: &model.APIKeyConfig{Key: "sekret"}}

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{
		BusinessID: "biz-2",
		Config:     cfg,
		ActionID:   "order_status",
		User:       model.UserContext{UserID: "u42"},
	})
	if !out.Success {
		t.Fatalf("outcome = %+v, want success", out)
	}
}

func TestExecuteIntegratedErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusBadRequest, `{"error":"order already shipped"}`, "order already shipped"},
		{"raw text body", http.StatusBadGateway, "upstream exploded", "upstream exploded"},
		{"empty body", http.StatusNotFound, "", "API request failed with status 404"},
		{"json without error field", http.StatusConflict, `{"detail":"nope"}`, "API request failed with status 409"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			d := newTestDispatcher()
			out := d.Execute(context.Background(), agent.ExecuteInput{
				Config:   integratedConfig(srv.URL),
				ActionID: "order_status",
				User:     model.UserContext{UserID: "u42"},
			})
			if out.Success {
				t.Fatal("expected failure")
			}
			if out.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", out.Message, tt.wantMsg)
			}
		})
	}
}

func TestExecuteIntegratedPostBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["order_ref"] != "9" {
			t.Errorf("body = %v, want field-mapped order_ref=9", body)
		}
		if _, present := body["order_id"]; present {
			t.Errorf("internal field name leaked: %v", body)
		}
		if body["note"] != "urgent" {
			t.Errorf("body = %v, want unmapped note forwarded unchanged", body)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := integratedConfig(srv.URL)
	action := cfg.Actions["order_status"]
	action.Method = "POST"
	action.ResponseMapping = nil
	cfg.Actions["order_status"] = action

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{
		Config:   cfg,
		ActionID: "order_status",
		Params:   map[string]string{"order_id": "9", "note": "urgent"},
		User:     model.UserContext{UserID: "u42"},
	})
	if !out.Success {
		t.Fatalf("outcome = %+v, want success", out)
	}
}

func TestExecuteIntegratedDefaultOperation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/update" {
			t.Errorf("path = %q, want /orders/update", r.URL.Path)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := integratedConfig(srv.URL)
	action := cfg.Actions["order_status"]
	action.Method = "POST"
	action.Operation = ""
	action.ResponseMapping = nil
	cfg.Actions["order_status"] = action
	ds := cfg.Integration.DataSources["orders"]
	ds.Methods = map[string]string{"update": "/orders/update"}
	cfg.Integration.DataSources["orders"] = ds

	d := newTestDispatcher()
	out := d.Execute(context.Background(), agent.ExecuteInput{
		Config:   cfg,
		ActionID: "order_status",
		User:     model.UserContext{UserID: "u42"},
	})
	if !out.Success {
		t.Fatalf("outcome = %+v, want success", out)
	}
}
