package review

import (
	"testing"
	"time"

	"github.com/shamiri-institute/supervisor-core/internal/models"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
	"github.com/shamiri-institute/supervisor-core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSession(t *testing.T, db *gorm.DB, withAnalysis bool, flag models.RiskFlag) *models.SessionModel {
	t.Helper()
	sess := models.SessionModel{
		GroupID:      "group-1",
		FellowID:     "fellow-1",
		SupervisorID: "supervisor-1",
		ScheduledAt:  time.Now(),
		Status:       models.SessionPending,
	}
	require.NoError(t, db.Create(&sess).Error)
	if withAnalysis {
		a := models.AnalysisModel{
			SessionID:            sess.ID,
			Summary:              "covered the core concept",
			ContentCoverageScore: 2, FacilitationScore: 2, ProtocolSafetyScore: 3,
			RiskFlag:    flag,
			GeneratedAt: time.Now(),
		}
		if flag == models.RiskRisk {
			quote := "I don't want to be here anymore"
			a.RiskQuote = &quote
		}
		require.NoError(t, db.Create(&a).Error)
	}
	return &sess
}

func TestSubmitValidated(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)
	sess := seedSession(t, db, true, models.RiskRisk)

	rev, err := svc.Submit(sess.ID, "supervisor-1", SubmitReviewDTO{
		Decision: models.ReviewValidated,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewValidated, rev.Decision)
	assert.Equal(t, "supervisor-1", rev.SupervisorID)
	assert.NotEmpty(t, rev.ID)

	var stored models.ReviewModel
	require.NoError(t, db.First(&stored, "session_id = ?", sess.ID).Error)
	assert.Equal(t, models.ReviewValidated, stored.Decision)
}

func TestSubmitRejectedRequiresOverrideAndNote(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)
	sess := seedSession(t, db, true, models.RiskRisk)

	_, err := svc.Submit(sess.ID, "supervisor-1", SubmitReviewDTO{
		Decision: models.ReviewRejected,
		Note:     "too short",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	fields := apperrors.FieldsOf(err)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.Contains(t, names, "override_status")
	assert.Contains(t, names, "note")
}

func TestSubmitRejectedTrimsNoteBeforeLengthCheck(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)
	sess := seedSession(t, db, true, models.RiskSafe)
	override := models.RiskRisk

	_, err := svc.Submit(sess.ID, "supervisor-1", SubmitReviewDTO{
		Decision:       models.ReviewRejected,
		OverrideStatus: &override,
		Note:           "   short    ",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSubmitRejectedUpdatesSessionStatus(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)
	sess := seedSession(t, db, true, models.RiskRisk)
	override := models.RiskSafe

	_, err := svc.Submit(sess.ID, "supervisor-1", SubmitReviewDTO{
		Decision:       models.ReviewRejected,
		OverrideStatus: &override,
		Note:           "student was quoting a song lyric, not expressing intent",
	})
	require.NoError(t, err)

	var stored models.SessionModel
	require.NoError(t, db.First(&stored, "id = ?", sess.ID).Error)
	assert.Equal(t, models.SessionSafe, stored.Status)
}

func TestSubmitInvalidDecision(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)
	sess := seedSession(t, db, true, models.RiskSafe)

	_, err := svc.Submit(sess.ID, "supervisor-1", SubmitReviewDTO{Decision: "MAYBE"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	fields := apperrors.FieldsOf(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "decision", fields[0].Field)
}

func TestSubmitSecondReviewConflicts(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)
	sess := seedSession(t, db, true, models.RiskRisk)

	_, err := svc.Submit(sess.ID, "supervisor-1", SubmitReviewDTO{Decision: models.ReviewValidated})
	require.NoError(t, err)

	_, err = svc.Submit(sess.ID, "supervisor-2", SubmitReviewDTO{Decision: models.ReviewRejected,
		OverrideStatus: ptrFlag(models.RiskSafe),
		Note:           "disagree with the flagged verdict entirely",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	var count int64
	require.NoError(t, db.Model(&models.ReviewModel{}).Where("session_id = ?", sess.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitWithoutAnalysis(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)
	sess := seedSession(t, db, false, models.RiskSafe)

	_, err := svc.Submit(sess.ID, "supervisor-1", SubmitReviewDTO{Decision: models.ReviewValidated})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))
}

func TestSubmitUnknownSession(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)

	_, err := svc.Submit("no-such-id", "supervisor-1", SubmitReviewDTO{Decision: models.ReviewValidated})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func ptrFlag(f models.RiskFlag) *models.RiskFlag { return &f }
