package models

import "time"

// RiskFlag is the judge's risk verdict for a session.
type RiskFlag string

const (
	RiskSafe RiskFlag = "SAFE"
	RiskRisk RiskFlag = "RISK"
)

// AnalysisModel is the persisted scorecard for one session. At most one row
// exists per session; re-evaluation overwrites the row in place.
type AnalysisModel struct {
	Base
	SessionID string `json:"session_id" gorm:"uniqueIndex;not null"`

	Summary string `json:"summary" gorm:"type:text;not null"`

	ContentCoverageScore         int    `json:"content_coverage_score"         gorm:"not null"`
	ContentCoverageJustification string `json:"content_coverage_justification" gorm:"type:text"`

	FacilitationScore         int    `json:"facilitation_score"         gorm:"not null"`
	FacilitationJustification string `json:"facilitation_justification" gorm:"type:text"`

	ProtocolSafetyScore         int    `json:"protocol_safety_score"         gorm:"not null"`
	ProtocolSafetyJustification string `json:"protocol_safety_justification" gorm:"type:text"`

	RiskFlag    RiskFlag  `json:"risk_flag"    gorm:"type:varchar(8);not null"`
	RiskQuote   *string   `json:"risk_quote"   gorm:"type:text"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at" gorm:"not null"`
}

func (AnalysisModel) TableName() string { return "analyses" }
