package usecase

import (
	"business-agent-service/internal/agent"
	"business-agent-service/pkg/log"
	"business-agent-service/pkg/textnorm"
)

type implUseCase struct {
	l          log.Logger
	matcher    *matcher
	dispatcher agent.Dispatcher
}

// New creates a new agent UseCase instance.
func New(l log.Logger, norm *textnorm.Normalizer, dispatcher agent.Dispatcher) *implUseCase {
	return &implUseCase{
		l:          l,
		matcher:    newMatcher(norm),
		dispatcher: dispatcher,
	}
}
