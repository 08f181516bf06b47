package evaluation

// Dimension is one scored rubric dimension of a scorecard.
type Dimension struct {
	Score         int    `json:"score"`
	Rating        string `json:"rating"`
	Justification string `json:"justification"`
}

// Scorecard is the schema-validated structured output of one transcript
// evaluation. RiskQuote is nil exactly when RiskFlag is "SAFE".
type Scorecard struct {
	Summary             string    `json:"summary"`
	ContentCoverage     Dimension `json:"content_coverage"`
	FacilitationQuality Dimension `json:"facilitation_quality"`
	ProtocolSafety      Dimension `json:"protocol_safety"`
	RiskFlag            string    `json:"risk_flag"`
	RiskQuote           *string   `json:"risk_quote"`
}

const (
	FlagSafe = "SAFE"
	FlagRisk = "RISK"
)
