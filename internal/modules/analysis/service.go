package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shamiri-institute/supervisor-core/internal/models"
	"github.com/shamiri-institute/supervisor-core/internal/modules/evaluation"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db        *gorm.DB
	evaluator *evaluation.Evaluator
}

func NewService(db *gorm.DB, evaluator *evaluation.Evaluator) *Service {
	return &Service{db: db, evaluator: evaluator}
}

// Get returns the stored scorecard for a session, or nil if none exists.
func (s *Service) Get(sessionID string) (*models.AnalysisModel, error) {
	var row models.AnalysisModel
	if err := s.db.Where("session_id = ?", sessionID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage("load analysis", err)
	}
	return &row, nil
}

// Run evaluates the session's transcript and persists the scorecard. An
// existing scorecard is returned untouched unless force is set, in which
// case it is overwritten in place. The judge is only called after all
// preconditions hold, so a failed run leaves no partial state behind.
func (s *Service) Run(ctx context.Context, sessionID string, force bool) (*models.AnalysisModel, error) {
	var session models.SessionModel
	if err := s.db.Preload("Transcript").Preload("Analysis").
		First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("session not found")
		}
		return nil, apperrors.Storage("load session", err)
	}

	if session.Analysis != nil && !force {
		return session.Analysis, nil
	}

	if session.Transcript == nil || strings.TrimSpace(session.Transcript.RawText) == "" {
		return nil, apperrors.PreconditionFailed("session has no transcript")
	}

	card, err := s.evaluator.Evaluate(ctx, session.Transcript.RawText)
	if err != nil {
		return nil, err
	}

	return s.Record(sessionID, card, s.evaluator.Model())
}

// Record upserts the scorecard for a session as a single atomic
// create-or-replace keyed on session identity. The coarse session status
// transition is applied only when the row is first created — a later
// overwrite must not clobber a review-derived status.
func (s *Service) Record(sessionID string, card *evaluation.Scorecard, model string) (*models.AnalysisModel, error) {
	var stored models.AnalysisModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.AnalysisModel{}).
			Where("session_id = ?", sessionID).
			Count(&existing).Error; err != nil {
			return err
		}

		row := models.AnalysisModel{
			SessionID:                    sessionID,
			Summary:                      card.Summary,
			ContentCoverageScore:         card.ContentCoverage.Score,
			ContentCoverageJustification: card.ContentCoverage.Justification,
			FacilitationScore:            card.FacilitationQuality.Score,
			FacilitationJustification:    card.FacilitationQuality.Justification,
			ProtocolSafetyScore:          card.ProtocolSafety.Score,
			ProtocolSafetyJustification:  card.ProtocolSafety.Justification,
			RiskFlag:                     models.RiskFlag(card.RiskFlag),
			RiskQuote:                    card.RiskQuote,
			Model:                        model,
			GeneratedAt:                  time.Now(),
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"summary",
				"content_coverage_score", "content_coverage_justification",
				"facilitation_score", "facilitation_justification",
				"protocol_safety_score", "protocol_safety_justification",
				"risk_flag", "risk_quote", "model", "generated_at",
				"updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		if existing == 0 {
			status := models.SessionProcessed
			if row.RiskFlag == models.RiskRisk {
				status = models.SessionFlagged
			}
			if err := tx.Model(&models.SessionModel{}).
				Where("id = ?", sessionID).
				Update("status", status).Error; err != nil {
				return err
			}
		}

		return tx.Where("session_id = ?", sessionID).First(&stored).Error
	})
	if err != nil {
		return nil, apperrors.Storage("record analysis", err)
	}

	return &stored, nil
}
