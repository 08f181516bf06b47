package sessions

import (
	"time"

	"github.com/shamiri-institute/supervisor-core/internal/models"
	"github.com/shamiri-institute/supervisor-core/internal/modules/review"
)

type sessionResponse struct {
	ID            string               `json:"id"`
	ScheduledAt   time.Time            `json:"scheduled_at"`
	Fellow        *models.FellowModel  `json:"fellow,omitempty"`
	Group         *models.GroupModel   `json:"group,omitempty"`
	DisplayStatus review.DisplayStatus `json:"display_status"`
	RiskFlag      *models.RiskFlag     `json:"risk_flag,omitempty"`
	Reviewed      bool                 `json:"reviewed"`
}

type sessionDetailResponse struct {
	sessionResponse
	Transcript *models.TranscriptModel `json:"transcript,omitempty"`
	Analysis   *models.AnalysisModel   `json:"analysis,omitempty"`
	Review     *models.ReviewModel     `json:"review,omitempty"`
}

// statsResponse holds the dashboard summary counters.
type statsResponse struct {
	Total            int64 `json:"total"`
	MissingAnalysis  int64 `json:"missing_analysis"`
	FlaggedForReview int64 `json:"flagged_for_review"`
	Processed        int64 `json:"processed"`
	Safe             int64 `json:"safe"`
	Risk             int64 `json:"risk"`
}

func toResponse(s *models.SessionModel) sessionResponse {
	r := sessionResponse{
		ID:            s.ID,
		ScheduledAt:   s.ScheduledAt,
		Fellow:        s.Fellow,
		Group:         s.Group,
		DisplayStatus: review.Derive(s.Analysis, s.Review),
		Reviewed:      s.Review != nil,
	}
	if s.Analysis != nil {
		flag := s.Analysis.RiskFlag
		r.RiskFlag = &flag
	}
	return r
}

func toDetailResponse(s *models.SessionModel) sessionDetailResponse {
	return sessionDetailResponse{
		sessionResponse: toResponse(s),
		Transcript:      s.Transcript,
		Analysis:        s.Analysis,
		Review:          s.Review,
	}
}
