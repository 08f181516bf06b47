package evaluation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSafeScorecard = `{
  "summary": "The Fellow walked the group through the brain-as-muscle analogy and collected two personal examples.",
  "content_coverage": {"score": 3, "rating": "Complete", "justification": "All core concepts covered with examples."},
  "facilitation_quality": {"score": 2, "rating": "Adequate", "justification": "Stuck closely to the script."},
  "protocol_safety": {"score": 3, "rating": "Adherent", "justification": "Stayed within lay-provider boundaries."},
  "risk_flag": "SAFE",
  "risk_quote": null
}`

func riskScorecard(quote string) string {
	return fmt.Sprintf(`{
  "summary": "Session covered the material but one student disclosed distress.",
  "content_coverage": {"score": 2, "rating": "Partial", "justification": ""},
  "facilitation_quality": {"score": 2, "rating": "Adequate", "justification": ""},
  "protocol_safety": {"score": 1, "rating": "Violation", "justification": "Fellow gave direct advice."},
  "risk_flag": "RISK",
  "risk_quote": %q
}`, quote)
}

func TestParseScorecardValid(t *testing.T) {
	card, err := parseScorecard(validSafeScorecard)
	require.NoError(t, err)
	assert.Equal(t, FlagSafe, card.RiskFlag)
	assert.Nil(t, card.RiskQuote)
	assert.Equal(t, 3, card.ContentCoverage.Score)
	assert.Equal(t, "Complete", card.ContentCoverage.Rating)
	assert.Equal(t, 2, card.FacilitationQuality.Score)
}

func TestParseScorecardFencedJSON(t *testing.T) {
	fenced := "```json\n" + validSafeScorecard + "\n```"
	card, err := parseScorecard(fenced)
	require.NoError(t, err)
	assert.Equal(t, FlagSafe, card.RiskFlag)
}

func TestParseScorecardWithSurroundingProse(t *testing.T) {
	wrapped := "Here is the evaluation you asked for:\n" + validSafeScorecard + "\nLet me know if you need anything else."
	card, err := parseScorecard(wrapped)
	require.NoError(t, err)
	assert.Equal(t, FlagSafe, card.RiskFlag)
}

func TestParseScorecardRisk(t *testing.T) {
	card, err := parseScorecard(riskScorecard("I've been thinking about ending it"))
	require.NoError(t, err)
	assert.Equal(t, FlagRisk, card.RiskFlag)
	require.NotNil(t, card.RiskQuote)
	assert.Equal(t, "I've been thinking about ending it", *card.RiskQuote)
}

func TestParseScorecardNotJSON(t *testing.T) {
	_, err := parseScorecard("I could not evaluate this transcript, sorry.")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestParseScorecardScoreOutOfRange(t *testing.T) {
	bad := strings.Replace(validSafeScorecard, `"score": 3, "rating": "Complete"`, `"score": 5, "rating": "Complete"`, 1)
	_, err := parseScorecard(bad)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	fields := apperrors.FieldsOf(err)
	require.NotEmpty(t, fields)
	found := false
	for _, f := range fields {
		if strings.Contains(f.Field, "content_coverage") && strings.Contains(f.Field, "score") {
			found = true
		}
	}
	assert.True(t, found, "expected a diagnostic pointing at content_coverage score, got %v", fields)
}

func TestParseScorecardRatingOutsideLabelSet(t *testing.T) {
	// Each dimension has its own label set; "Excellent" belongs to
	// facilitation_quality only.
	bad := strings.Replace(validSafeScorecard, `"rating": "Complete"`, `"rating": "Excellent"`, 1)
	_, err := parseScorecard(bad)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	found := false
	for _, f := range apperrors.FieldsOf(err) {
		if strings.Contains(f.Field, "content_coverage") && strings.Contains(f.Field, "rating") {
			found = true
		}
	}
	assert.True(t, found, "expected a diagnostic pointing at content_coverage rating, got %v", apperrors.FieldsOf(err))
}

func TestParseScorecardUnknownRatingLabel(t *testing.T) {
	bad := strings.Replace(validSafeScorecard, `"rating": "Adherent"`, `"rating": "Totally Fine"`, 1)
	_, err := parseScorecard(bad)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestParseScorecardMissingDimension(t *testing.T) {
	var m = strings.Replace(validSafeScorecard,
		`"protocol_safety": {"score": 3, "rating": "Adherent", "justification": "Stayed within lay-provider boundaries."},`,
		"", 1)
	_, err := parseScorecard(m)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestParseScorecardRiskWithoutQuote(t *testing.T) {
	bad := strings.Replace(validSafeScorecard, `"risk_flag": "SAFE"`, `"risk_flag": "RISK"`, 1)
	_, err := parseScorecard(bad)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestParseScorecardRiskWithBlankQuote(t *testing.T) {
	_, err := parseScorecard(riskScorecard("   "))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	fields := apperrors.FieldsOf(err)
	require.NotEmpty(t, fields)
	assert.Contains(t, fields[0].Field, "risk_quote")
}

func TestParseScorecardSafeWithQuote(t *testing.T) {
	bad := strings.Replace(validSafeScorecard, `"risk_quote": null`, `"risk_quote": "something worrying"`, 1)
	_, err := parseScorecard(bad)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestParseScorecardUnknownFlag(t *testing.T) {
	bad := strings.Replace(validSafeScorecard, `"risk_flag": "SAFE"`, `"risk_flag": "UNKNOWN"`, 1)
	_, err := parseScorecard(bad)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
