package http

import (
	"strings"

	"github.com/google/uuid"

	"business-agent-service/internal/agent"
	"business-agent-service/internal/model"
)

// --- Request DTOs ---

type chatReq struct {
	Text        string          `json:"text" binding:"required"`
	UserContext *userContextReq `json:"user_context,omitempty"`
}

type userContextReq struct {
	UserID      string            `json:"user_id"`
	Permissions []string          `json:"permissions"`
	SessionID   string            `json:"session_id"`
	Metadata    map[string]string `json:"metadata"`
}

func (r chatReq) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return agent.ErrEmptyQuestion
	}
	return nil
}

// userContext resolves the caller context, defaulting to an anonymous one
// with a generated session when none was supplied.
func (r chatReq) userContext() model.UserContext {
	if r.UserContext == nil {
		return model.UserContext{
			UserID:      "anonymous",
			Permissions: []string{},
			SessionID:   "session_" + uuid.NewString(),
			Metadata:    map[string]string{"source": "api"},
		}
	}

	uc := model.UserContext{
		UserID:      r.UserContext.UserID,
		Permissions: r.UserContext.Permissions,
		SessionID:   r.UserContext.SessionID,
		Metadata:    r.UserContext.Metadata,
	}
	if uc.SessionID == "" {
		uc.SessionID = "session_" + uuid.NewString()
	}
	return uc
}

// The response body is the envelope itself; it already carries its wire
// shape (see agent.Envelope).
