package models

import "time"

// ReviewDecision is the supervisor's verdict on the automated analysis.
type ReviewDecision string

const (
	ReviewValidated ReviewDecision = "VALIDATED"
	ReviewRejected  ReviewDecision = "REJECTED"
)

// ReviewModel records a supervisor's decision on a session's scorecard.
// Write-once: the unique index on session_id rejects a second review.
type ReviewModel struct {
	Base
	SessionID      string         `json:"session_id"      gorm:"uniqueIndex;not null"`
	SupervisorID   string         `json:"supervisor_id"   gorm:"index;not null"`
	Decision       ReviewDecision `json:"decision"        gorm:"type:varchar(16);not null"`
	OverrideStatus *RiskFlag      `json:"override_status" gorm:"type:varchar(8)"`
	Note           string         `json:"note"            gorm:"type:text"`
	ReviewedAt     time.Time      `json:"reviewed_at"     gorm:"not null"`
}

func (ReviewModel) TableName() string { return "reviews" }
