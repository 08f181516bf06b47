package review

import "github.com/shamiri-institute/supervisor-core/internal/models"

// DisplayStatus is the single authoritative status shown to users. It is
// always derived from the analysis and review rows; the stored session
// status column is a denormalized convenience only.
type DisplayStatus string

const (
	StatusMissingAnalysis  DisplayStatus = "MISSING_ANALYSIS"
	StatusFlaggedForReview DisplayStatus = "FLAGGED_FOR_REVIEW"
	StatusProcessed        DisplayStatus = "PROCESSED"
	StatusSafe             DisplayStatus = "SAFE"
	StatusRisk             DisplayStatus = "RISK"
)

// Derive reconciles the AI verdict with the supervisor's decision:
//
//  1. No analysis → MISSING_ANALYSIS.
//  2. Analysis but no review → FLAGGED_FOR_REVIEW when the AI flagged RISK,
//     PROCESSED otherwise (AI-cleared, pending an optional spot check).
//  3. Review present → the supervisor's decision is final. VALIDATED echoes
//     the AI verdict; REJECTED inverts it. The stored override_status records
//     the supervisor's chosen label but does not drive the displayed status.
//
// Derive is pure and total; the list and detail views both call it so the
// two can never disagree.
func Derive(analysis *models.AnalysisModel, rev *models.ReviewModel) DisplayStatus {
	if analysis == nil {
		return StatusMissingAnalysis
	}

	aiSaidRisk := analysis.RiskFlag == models.RiskRisk

	if rev == nil {
		if aiSaidRisk {
			return StatusFlaggedForReview
		}
		return StatusProcessed
	}

	switch rev.Decision {
	case models.ReviewValidated:
		if aiSaidRisk {
			return StatusRisk
		}
		return StatusSafe
	case models.ReviewRejected:
		if aiSaidRisk {
			return StatusSafe
		}
		return StatusRisk
	default:
		if aiSaidRisk {
			return StatusFlaggedForReview
		}
		return StatusProcessed
	}
}
