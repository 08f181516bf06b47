package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJudge struct {
	response string
	err      error
	prompts  []string
}

func (s *stubJudge) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubJudge) Model() string { return "stub-model" }

func TestEvaluateEmptyTranscript(t *testing.T) {
	ev := New(&stubJudge{response: validSafeScorecard})

	_, err := ev.Evaluate(context.Background(), "   \n\t ")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))
}

func TestEvaluateReturnsScorecard(t *testing.T) {
	judge := &stubJudge{response: validSafeScorecard}
	ev := New(judge)

	card, err := ev.Evaluate(context.Background(), "Fellow: welcome everyone...")
	require.NoError(t, err)
	assert.Equal(t, FlagSafe, card.RiskFlag)
	require.Len(t, judge.prompts, 1)
	assert.Equal(t, "Fellow: welcome everyone...", judge.prompts[0])
}

func TestEvaluateProviderFailure(t *testing.T) {
	ev := New(&stubJudge{err: errors.New("connection reset")})

	_, err := ev.Evaluate(context.Background(), "some transcript")
	require.Error(t, err)
	assert.True(t, apperrors.IsProvider(err))
}

func TestEvaluateMalformedJudgeOutput(t *testing.T) {
	ev := New(&stubJudge{response: `{"summary": "incomplete`})

	_, err := ev.Evaluate(context.Background(), "some transcript")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestEvaluatorModel(t *testing.T) {
	ev := New(&stubJudge{})
	assert.Equal(t, "stub-model", ev.Model())
}
