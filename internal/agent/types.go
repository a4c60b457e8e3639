package agent

import (
	"business-agent-service/internal/model"
)

// Envelope types.
const (
	EnvelopeAnswer = "answer"
	EnvelopeAction = "action"

	SourceFAQ = "faq"
)

// ProcessQuestionInput carries one question together with the business's
// resolved configuration snapshot.
type ProcessQuestionInput struct {
	BusinessID string
	Config     model.AgentConfig
	FAQs       []model.FAQ
	Question   string
	User       model.UserContext
}

// Envelope is the uniform response shape returned to the caller.
type Envelope struct {
	Type       string            `json:"type"`
	Answer     string            `json:"answer"`
	Source     string            `json:"source,omitempty"`
	Action     string            `json:"action,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
	Result     *Outcome          `json:"result,omitempty"`
	Confidence float64           `json:"confidence"`
}

// ExecuteInput identifies one action dispatch.
type ExecuteInput struct {
	BusinessID string
	Config     model.AgentConfig
	ActionID   string
	Params     map[string]string
	User       model.UserContext
}

// Outcome is the normalized result of an action dispatch. Data carries the
// decoded (and, for integrated actions, response-mapped) body on success.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Failure builds a failed Outcome with the given message.
func Failure(message string) Outcome {
	return Outcome{Success: false, Message: message}
}
