package models

import "time"

// SessionStatus is the coarse stored status column kept in sync for fast
// listing queries. It is denormalized only; clients must derive the
// authoritative display status from the analysis and review rows.
type SessionStatus string

const (
	SessionPending   SessionStatus = "PENDING"
	SessionProcessed SessionStatus = "PROCESSED"
	SessionFlagged   SessionStatus = "FLAGGED"
	SessionSafe      SessionStatus = "SAFE"
)

// SessionModel is one recorded group counseling session.
type SessionModel struct {
	Base
	GroupID      string        `json:"group_id"      gorm:"index;not null"`
	FellowID     string        `json:"fellow_id"     gorm:"index;not null"`
	SupervisorID string        `json:"supervisor_id" gorm:"index;not null"`
	ScheduledAt  time.Time     `json:"scheduled_at"  gorm:"index"`
	Status       SessionStatus `json:"status"        gorm:"type:varchar(16);default:'PENDING';index"`

	Group      *GroupModel      `json:"group,omitempty"      gorm:"foreignKey:GroupID"`
	Fellow     *FellowModel     `json:"fellow,omitempty"     gorm:"foreignKey:FellowID"`
	Transcript *TranscriptModel `json:"transcript,omitempty" gorm:"foreignKey:SessionID"`
	Analysis   *AnalysisModel   `json:"analysis,omitempty"   gorm:"foreignKey:SessionID"`
	Review     *ReviewModel     `json:"review,omitempty"     gorm:"foreignKey:SessionID"`
}

func (SessionModel) TableName() string { return "sessions" }

// TranscriptModel is the immutable raw text of one session recording.
type TranscriptModel struct {
	Base
	SessionID string `json:"session_id" gorm:"uniqueIndex;not null"`
	RawText   string `json:"raw_text"   gorm:"type:longtext;not null"`
}

func (TranscriptModel) TableName() string { return "transcripts" }
