package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"business-agent-service/internal/agent"
	"business-agent-service/internal/agent/repository"
	"business-agent-service/pkg/response"
)

// Chat godoc
// @Summary     Ask a business's agent a question
// @Description Matches the question against the business's FAQs and intents and either answers directly or performs the matched action.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       business_id path string  true "Business ID"
// @Param       body        body chatReq true "Question and optional user context"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Business not found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/{business_id} [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.repo.GetBusiness(ctx, c.Param("business_id"))
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			response.NotFound(c, "business not found")
			return
		}
		h.l.Errorf(ctx, "repo.GetBusiness: %v", err)
		response.InternalError(c)
		return
	}

	out, err := h.uc.ProcessQuestion(ctx, agent.ProcessQuestionInput{
		BusinessID: profile.ID,
		Config:     profile.Agent,
		FAQs:       profile.FAQs,
		Question:   req.Text,
		User:       req.userContext(),
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.ProcessQuestion: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, out)
}
