package agent

import "errors"

// Domain-specific errors for the agent package.
var (
	ErrEmptyQuestion = errors.New("question text is empty")
)

// Dispatch failure messages. These travel inside Outcome.Message, never as
// Go errors; the orchestrator renders the intent's failure response text
// regardless of which one occurred.
const (
	MsgActionNotFound         = "Action not found"
	MsgPermissionDenied       = "Permission denied"
	MsgDataSourceMissing      = "Data source not configured"
	MsgOperationUnsupported   = "Operation not supported"
	MsgAuthHeadersUnavailable = "Failed to get authentication headers"
)
