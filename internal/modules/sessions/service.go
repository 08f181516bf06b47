package sessions

import (
	"errors"

	"github.com/shamiri-institute/supervisor-core/internal/models"
	"github.com/shamiri-institute/supervisor-core/internal/modules/review"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/pagination"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// ListFilter narrows the session listing.
type ListFilter struct {
	FellowID string
	GroupID  string
}

// List returns sessions newest-first with analysis and review preloaded so
// the display status can be derived per row.
func (s *Service) List(q pagination.Query, filter ListFilter) ([]models.SessionModel, response.Pagination, error) {
	tx := s.db.Model(&models.SessionModel{}).
		Preload("Fellow").Preload("Group").
		Preload("Analysis").Preload("Review").
		Order("scheduled_at DESC")
	if filter.FellowID != "" {
		tx = tx.Where("fellow_id = ?", filter.FellowID)
	}
	if filter.GroupID != "" {
		tx = tx.Where("group_id = ?", filter.GroupID)
	}

	var items []models.SessionModel
	pag, err := pagination.Paginate(tx, q, &items)
	if err != nil {
		return nil, response.Pagination{}, apperrors.Storage("list sessions", err)
	}
	return items, pag, nil
}

// Get returns one session with transcript, analysis and review preloaded.
func (s *Service) Get(id string) (*models.SessionModel, error) {
	var session models.SessionModel
	err := s.db.
		Preload("Fellow").Preload("Group").
		Preload("Transcript").Preload("Analysis").Preload("Review").
		First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("session not found")
		}
		return nil, apperrors.Storage("load session", err)
	}
	return &session, nil
}

// Stats derives the dashboard counters. It walks the authoritative
// derivation rather than trusting the stored status column.
func (s *Service) Stats() (statsResponse, error) {
	var items []models.SessionModel
	if err := s.db.Model(&models.SessionModel{}).
		Preload("Analysis").Preload("Review").
		Find(&items).Error; err != nil {
		return statsResponse{}, apperrors.Storage("load sessions for stats", err)
	}

	var out statsResponse
	out.Total = int64(len(items))
	for i := range items {
		switch review.Derive(items[i].Analysis, items[i].Review) {
		case review.StatusMissingAnalysis:
			out.MissingAnalysis++
		case review.StatusFlaggedForReview:
			out.FlaggedForReview++
		case review.StatusProcessed:
			out.Processed++
		case review.StatusSafe:
			out.Safe++
		case review.StatusRisk:
			out.Risk++
		}
	}
	return out, nil
}
