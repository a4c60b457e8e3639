package usecase

import (
	"context"
	"strings"

	"business-agent-service/internal/agent"
)

// ProcessQuestion resolves the question to a FAQ answer or an action
// dispatch and wraps the result in a response envelope. Dispatch failures
// are data: the intent's configured failure text is returned, never an
// error.
func (uc *implUseCase) ProcessQuestion(ctx context.Context, input agent.ProcessQuestionInput) (agent.Envelope, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return agent.Envelope{}, agent.ErrEmptyQuestion
	}

	uc.l.Infof(ctx, "ProcessQuestion: business=%s user=%s question=%q",
		input.BusinessID, input.User.UserID, question)

	matched, confidence := uc.matcher.detectIntent(question, input.FAQs, input.Config.Intents)
	if matched == nil {
		return agent.Envelope{
			Type:   agent.EnvelopeAnswer,
			Answer: input.Config.DefaultResponse,
		}, nil
	}

	if matched.faq != nil {
		return agent.Envelope{
			Type:       agent.EnvelopeAnswer,
			Answer:     matched.faq.Answer,
			Source:     agent.SourceFAQ,
			Confidence: confidence,
		}, nil
	}

	intent := matched.intent
	actionID := intent.Action

	// The dispatcher reports a missing action as a NotFound outcome; the
	// extractor just gets nothing to extract in that case.
	params := map[string]string{}
	if action, ok := input.Config.Actions[actionID]; ok {
		params = extractParameters(question, action)
	}

	outcome := uc.dispatcher.Execute(ctx, agent.ExecuteInput{
		BusinessID: input.BusinessID,
		Config:     input.Config,
		ActionID:   actionID,
		Params:     params,
		User:       input.User,
	})

	answer := intent.Responses.Success
	if !outcome.Success {
		answer = intent.Responses.Failure
		uc.l.Warnf(ctx, "action %s failed for business %s: %s", actionID, input.BusinessID, outcome.Message)
	}

	return agent.Envelope{
		Type:       agent.EnvelopeAction,
		Answer:     answer,
		Action:     actionID,
		Params:     params,
		Result:     &outcome,
		Confidence: confidence,
	}, nil
}
