package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// scorecardSchemaJSON is the contract the judge's raw response must satisfy.
// Each dimension's rating is pinned to its rubric label set. The quote/flag
// coupling is enforced both here and in validateInvariants so a schema-valid
// but empty quote still fails.
const scorecardSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["summary", "content_coverage", "facilitation_quality", "protocol_safety", "risk_flag", "risk_quote"],
  "properties": {
    "summary": {"type": "string", "minLength": 1},
    "content_coverage": {"$ref": "#/$defs/contentCoverage"},
    "facilitation_quality": {"$ref": "#/$defs/facilitationQuality"},
    "protocol_safety": {"$ref": "#/$defs/protocolSafety"},
    "risk_flag": {"enum": ["SAFE", "RISK"]},
    "risk_quote": {"type": ["string", "null"]}
  },
  "allOf": [
    {
      "if": {"properties": {"risk_flag": {"const": "RISK"}}},
      "then": {"properties": {"risk_quote": {"type": "string", "minLength": 1}}}
    },
    {
      "if": {"properties": {"risk_flag": {"const": "SAFE"}}},
      "then": {"properties": {"risk_quote": {"type": "null"}}}
    }
  ],
  "$defs": {
    "contentCoverage": {
      "type": "object",
      "required": ["score", "rating", "justification"],
      "properties": {
        "score": {"enum": [1, 2, 3]},
        "rating": {"enum": ["Missed", "Partial", "Complete"]},
        "justification": {"type": "string"}
      }
    },
    "facilitationQuality": {
      "type": "object",
      "required": ["score", "rating", "justification"],
      "properties": {
        "score": {"enum": [1, 2, 3]},
        "rating": {"enum": ["Poor", "Adequate", "Excellent"]},
        "justification": {"type": "string"}
      }
    },
    "protocolSafety": {
      "type": "object",
      "required": ["score", "rating", "justification"],
      "properties": {
        "score": {"enum": [1, 2, 3]},
        "rating": {"enum": ["Violation", "Minor Drift", "Adherent"]},
        "justification": {"type": "string"}
      }
    }
  }
}`

var (
	scorecardSchema *jsonschema.Schema
	schemaPrinter   = message.NewPrinter(language.English)
)

func init() {
	var doc any
	if err := json.Unmarshal([]byte(scorecardSchemaJSON), &doc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded scorecard schema: %v", err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("scorecard.schema.json", doc); err != nil {
		panic(fmt.Sprintf("failed to add scorecard schema resource: %v", err))
	}

	sch, err := compiler.Compile("scorecard.schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile scorecard schema: %v", err))
	}
	scorecardSchema = sch
}

// parseScorecard validates the judge's raw text against the scorecard schema
// and decodes it. Schema violations come back as a validation error carrying
// field-level diagnostics; the raw response is never coerced or defaulted.
func parseScorecard(raw string) (*Scorecard, error) {
	payload := extractJSONPayload(raw)

	var value any
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return nil, apperrors.Validation("judge response is not valid JSON",
			apperrors.FieldError{Field: "/", Reason: err.Error()})
	}

	if err := scorecardSchema.Validate(value); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, apperrors.Validation("judge response failed scorecard schema validation", collectFieldErrors(ve)...)
		}
		return nil, apperrors.Validation("judge response failed scorecard schema validation",
			apperrors.FieldError{Field: "/", Reason: err.Error()})
	}

	var card Scorecard
	if err := json.Unmarshal([]byte(payload), &card); err != nil {
		return nil, apperrors.Validation("judge response does not decode into a scorecard",
			apperrors.FieldError{Field: "/", Reason: err.Error()})
	}

	if err := validateInvariants(&card); err != nil {
		return nil, err
	}
	return &card, nil
}

// validateInvariants enforces the quote/flag coupling beyond what the JSON
// schema can express: a RISK quote must be non-empty after trimming.
func validateInvariants(card *Scorecard) error {
	switch card.RiskFlag {
	case FlagRisk:
		if card.RiskQuote == nil || strings.TrimSpace(*card.RiskQuote) == "" {
			return apperrors.Validation("scorecard flagged RISK without a verbatim quote",
				apperrors.FieldError{Field: "/risk_quote", Reason: "required non-empty when risk_flag is RISK"})
		}
	case FlagSafe:
		if card.RiskQuote != nil {
			return apperrors.Validation("scorecard marked SAFE but carries a risk quote",
				apperrors.FieldError{Field: "/risk_quote", Reason: "must be null when risk_flag is SAFE"})
		}
	default:
		return apperrors.Validation("scorecard has an unknown risk flag",
			apperrors.FieldError{Field: "/risk_flag", Reason: fmt.Sprintf("unknown value %q", card.RiskFlag)})
	}
	return nil
}

func collectFieldErrors(ve *jsonschema.ValidationError) []apperrors.FieldError {
	if len(ve.Causes) == 0 {
		return []apperrors.FieldError{{
			Field:  "/" + strings.Join(ve.InstanceLocation, "/"),
			Reason: ve.ErrorKind.LocalizedString(schemaPrinter),
		}}
	}
	var out []apperrors.FieldError
	for _, cause := range ve.Causes {
		out = append(out, collectFieldErrors(cause)...)
	}
	return out
}

// extractJSONPayload strips markdown code fences and surrounding prose some
// judges wrap around their JSON output.
func extractJSONPayload(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if json.Valid([]byte(cleaned)) {
		return cleaned
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return cleaned
}
