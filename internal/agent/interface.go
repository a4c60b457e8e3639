package agent

import (
	"context"
)

// UseCase is the business logic interface for the agent domain: one
// operation, free text in, response envelope out.
type UseCase interface {
	// ProcessQuestion matches the question against the business's FAQs and
	// intents and either answers directly or extracts parameters and
	// dispatches the matched intent's action.
	ProcessQuestion(ctx context.Context, input ProcessQuestionInput) (Envelope, error)
}

// Dispatcher executes a configured action on behalf of the caller. All
// failures are returned inside the Outcome, never as errors.
type Dispatcher interface {
	Execute(ctx context.Context, input ExecuteInput) Outcome
}
