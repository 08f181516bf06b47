package sessions

import (
	"testing"
	"time"

	"github.com/shamiri-institute/supervisor-core/internal/models"
	"github.com/shamiri-institute/supervisor-core/internal/modules/review"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/pagination"
	"github.com/shamiri-institute/supervisor-core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type seedOpts struct {
	fellowID    string
	groupID     string
	scheduledAt time.Time
	flag        *models.RiskFlag
	decision    *models.ReviewDecision
}

func seed(t *testing.T, db *gorm.DB, o seedOpts) *models.SessionModel {
	t.Helper()
	if o.fellowID == "" {
		o.fellowID = "fellow-1"
	}
	if o.groupID == "" {
		o.groupID = "group-1"
	}
	if o.scheduledAt.IsZero() {
		o.scheduledAt = time.Now()
	}
	sess := models.SessionModel{
		GroupID:      o.groupID,
		FellowID:     o.fellowID,
		SupervisorID: "supervisor-1",
		ScheduledAt:  o.scheduledAt,
		Status:       models.SessionPending,
	}
	require.NoError(t, db.Create(&sess).Error)

	if o.flag != nil {
		a := models.AnalysisModel{
			SessionID:            sess.ID,
			Summary:              "summary",
			ContentCoverageScore: 2, FacilitationScore: 2, ProtocolSafetyScore: 2,
			RiskFlag:    *o.flag,
			GeneratedAt: time.Now(),
		}
		if *o.flag == models.RiskRisk {
			quote := "a worrying statement"
			a.RiskQuote = &quote
		}
		require.NoError(t, db.Create(&a).Error)
	}
	if o.decision != nil {
		require.NoError(t, db.Create(&models.ReviewModel{
			SessionID:    sess.ID,
			SupervisorID: "supervisor-1",
			Decision:     *o.decision,
			ReviewedAt:   time.Now(),
		}).Error)
	}
	return &sess
}

func flagOf(f models.RiskFlag) *models.RiskFlag { return &f }

func decisionOf(d models.ReviewDecision) *models.ReviewDecision { return &d }

func TestListNewestFirstWithDerivedStatus(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)

	older := seed(t, db, seedOpts{scheduledAt: time.Now().Add(-48 * time.Hour), flag: flagOf(models.RiskSafe)})
	newer := seed(t, db, seedOpts{scheduledAt: time.Now(), flag: flagOf(models.RiskRisk)})

	items, pag, err := svc.List(pagination.Query{Page: 1, Size: 20}, ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 2, pag.Total)

	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, older.ID, items[1].ID)

	assert.Equal(t, review.StatusFlaggedForReview, review.Derive(items[0].Analysis, items[0].Review))
	assert.Equal(t, review.StatusProcessed, review.Derive(items[1].Analysis, items[1].Review))
}

func TestListFilterByFellow(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)

	mine := seed(t, db, seedOpts{fellowID: "fellow-a"})
	seed(t, db, seedOpts{fellowID: "fellow-b"})

	items, _, err := svc.List(pagination.Query{Page: 1, Size: 20}, ListFilter{FellowID: "fellow-a"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, mine.ID, items[0].ID)
}

func TestListPagination(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)

	for i := 0; i < 5; i++ {
		seed(t, db, seedOpts{scheduledAt: time.Now().Add(time.Duration(-i) * time.Hour)})
	}

	items, pag, err := svc.List(pagination.Query{Page: 2, Size: 2}, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 5, pag.Total)
	assert.Equal(t, 3, pag.TotalPage)
	assert.True(t, pag.HasNextPage)
}

func TestGetPreloadsEverything(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)

	sess := seed(t, db, seedOpts{flag: flagOf(models.RiskRisk), decision: decisionOf(models.ReviewValidated)})
	require.NoError(t, db.Create(&models.TranscriptModel{SessionID: sess.ID, RawText: "Fellow: hello"}).Error)

	got, err := svc.Get(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Transcript)
	require.NotNil(t, got.Analysis)
	require.NotNil(t, got.Review)
	assert.Equal(t, review.StatusRisk, review.Derive(got.Analysis, got.Review))
}

func TestGetUnknownSession(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)

	_, err := svc.Get("no-such-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStatsCountsByDerivedStatus(t *testing.T) {
	db := testutil.DB(t)
	svc := NewService(db)

	seed(t, db, seedOpts{})                                                                          // missing analysis
	seed(t, db, seedOpts{flag: flagOf(models.RiskSafe)})                                             // processed
	seed(t, db, seedOpts{flag: flagOf(models.RiskRisk)})                                             // flagged
	seed(t, db, seedOpts{flag: flagOf(models.RiskRisk), decision: decisionOf(models.ReviewValidated)}) // risk
	seed(t, db, seedOpts{flag: flagOf(models.RiskRisk), decision: decisionOf(models.ReviewRejected)})  // safe

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 5, stats.Total)
	assert.EqualValues(t, 1, stats.MissingAnalysis)
	assert.EqualValues(t, 1, stats.Processed)
	assert.EqualValues(t, 1, stats.FlaggedForReview)
	assert.EqualValues(t, 1, stats.Risk)
	assert.EqualValues(t, 1, stats.Safe)
}
