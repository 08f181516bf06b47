package evaluation

import (
	"context"
	"strings"

	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
)

// Evaluator scores one transcript against the fixed rubric via the injected
// judge. It is stateless and safe for concurrent use; it never retries.
// Callers that want retry or timeout semantics wrap the call themselves.
type Evaluator struct {
	judge Judge
}

func New(judge Judge) *Evaluator {
	return &Evaluator{judge: judge}
}

// Model reports the judge model identifier, recorded on stored scorecards.
func (e *Evaluator) Model() string {
	return e.judge.Model()
}

// Evaluate sends the transcript to the judge and returns the validated
// scorecard. Transport failures surface as provider errors, malformed judge
// output as validation errors with field diagnostics.
func (e *Evaluator) Evaluate(ctx context.Context, transcript string) (*Scorecard, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, apperrors.PreconditionFailed("transcript is empty")
	}

	raw, err := e.judge.Complete(ctx, rubricSystemPrompt, transcript)
	if err != nil {
		return nil, apperrors.Provider("judge request failed", err)
	}

	return parseScorecard(raw)
}
