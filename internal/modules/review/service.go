package review

import (
	"errors"
	"strings"
	"time"

	"github.com/shamiri-institute/supervisor-core/internal/models"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
	"gorm.io/gorm"
)

const minRejectionNoteLength = 10

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// SubmitReviewDTO carries a supervisor's decision on a session's scorecard.
type SubmitReviewDTO struct {
	Decision       models.ReviewDecision `json:"decision"`
	OverrideStatus *models.RiskFlag      `json:"override_status"`
	Note           string                `json:"note"`
}

// Submit records a supervisor's decision. Reviews are write-once per
// session: a second submission is rejected with a conflict, never merged.
func (s *Service) Submit(sessionID, supervisorID string, dto SubmitReviewDTO) (*models.ReviewModel, error) {
	if err := validateSubmission(dto); err != nil {
		return nil, err
	}

	var session models.SessionModel
	if err := s.db.Preload("Analysis").Preload("Review").
		First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("session not found")
		}
		return nil, apperrors.Storage("load session", err)
	}

	if session.Review != nil {
		return nil, apperrors.Conflict("session already reviewed")
	}
	if session.Analysis == nil {
		return nil, apperrors.PreconditionFailed("session has no analysis to review")
	}

	rev := models.ReviewModel{
		SessionID:      sessionID,
		SupervisorID:   supervisorID,
		Decision:       dto.Decision,
		OverrideStatus: dto.OverrideStatus,
		Note:           strings.TrimSpace(dto.Note),
		ReviewedAt:     time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rev).Error; err != nil {
			return err
		}

		// Keep the coarse listing column in sync with the supervisor's label.
		if dto.Decision == models.ReviewRejected && dto.OverrideStatus != nil {
			status := models.SessionFlagged
			if *dto.OverrideStatus == models.RiskSafe {
				status = models.SessionSafe
			}
			if err := tx.Model(&models.SessionModel{}).
				Where("id = ?", sessionID).
				Update("status", status).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The unique index on session_id is the last line of defense against
		// two concurrent submissions racing past the existence check.
		if isDuplicateKeyError(err) {
			return nil, apperrors.Conflict("session already reviewed")
		}
		return nil, apperrors.Storage("record review", err)
	}

	return &rev, nil
}

func validateSubmission(dto SubmitReviewDTO) error {
	switch dto.Decision {
	case models.ReviewValidated, models.ReviewRejected:
	default:
		return apperrors.Validation("invalid review submission",
			apperrors.FieldError{Field: "decision", Reason: "must be VALIDATED or REJECTED"})
	}

	if dto.OverrideStatus != nil {
		switch *dto.OverrideStatus {
		case models.RiskSafe, models.RiskRisk:
		default:
			return apperrors.Validation("invalid review submission",
				apperrors.FieldError{Field: "override_status", Reason: "must be SAFE or RISK"})
		}
	}

	if dto.Decision == models.ReviewRejected {
		var fields []apperrors.FieldError
		if dto.OverrideStatus == nil {
			fields = append(fields, apperrors.FieldError{
				Field: "override_status", Reason: "required when rejecting",
			})
		}
		if len(strings.TrimSpace(dto.Note)) < minRejectionNoteLength {
			fields = append(fields, apperrors.FieldError{
				Field: "note", Reason: "a note of at least 10 characters is required when rejecting",
			})
		}
		if len(fields) > 0 {
			return apperrors.Validation("invalid review submission", fields...)
		}
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
