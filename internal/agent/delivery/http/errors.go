package http

import (
	"errors"

	"business-agent-service/internal/agent"
)

// mapError translates use-case errors into messages safe to render to the
// caller.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, agent.ErrEmptyQuestion):
		return err
	default:
		return errors.New("failed to process question")
	}
}
