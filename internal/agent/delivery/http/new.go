package http

import (
	"github.com/gin-gonic/gin"

	"business-agent-service/internal/agent"
	"business-agent-service/internal/agent/repository"
	"business-agent-service/pkg/log"
)

// Handler is the public interface for the agent HTTP delivery layer.
type Handler interface {
	Chat(c *gin.Context)
}

type handler struct {
	l    log.Logger
	uc   agent.UseCase
	repo repository.Repository
}

// New creates a new HTTP handler for the agent domain.
func New(l log.Logger, uc agent.UseCase, repo repository.Repository) *handler {
	return &handler{
		l:    l,
		uc:   uc,
		repo: repo,
	}
}
