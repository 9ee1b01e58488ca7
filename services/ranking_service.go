package services

import (
	"errors"
	"strings"
	"time"

	"lab-draft-api/apperrors"
	"lab-draft-api/config"
	"lab-draft-api/models"

	"gorm.io/gorm"
)

// RankingService records each student's ordered lab preferences for a draft.
// Rankings are accepted while the draft is Unstarted or in round 1 and are
// immutable afterwards; one ranking per student per draft.
type RankingService struct {
	db *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	if db == nil {
		db = config.DB
	}
	return &RankingService{db: db}
}

// Submit validates and persists a student's preference list, emitting a
// ranking-submitted event in the same transaction.
func (s *RankingService) Submit(draftID uint, student string, labIDs []uint) (*models.StudentRanking, error) {
	student = strings.ToLower(strings.TrimSpace(student))
	if student == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "student identity is required")
	}
	if len(labIDs) == 0 {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "ranking must contain at least one lab")
	}

	seen := make(map[uint]bool, len(labIDs))
	for _, id := range labIDs {
		if seen[id] {
			return nil, apperrors.New(apperrors.KindInvalidArgument, "lab %d appears more than once", id)
		}
		seen[id] = true
	}

	ranking := models.StudentRanking{
		DraftID:  draftID,
		Student:  student,
		CreateAt: time.Now(),
	}
	if err := ranking.SetLabIDs(labIDs); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "encode lab ids")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var draft models.Draft
		err := tx.Where("draft_id = ?", draftID).First(&draft).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindNotFound, "draft %d not found", draftID)
		}
		if err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "load draft")
		}

		terminal, err := draftTerminal(tx, &draft)
		if err != nil {
			return err
		}
		if terminal {
			return apperrors.New(apperrors.KindInvalidState, "draft %d is terminal", draftID)
		}
		if draft.Round() > 1 {
			return apperrors.New(apperrors.KindInvalidState,
				"ranking window closed: draft %d is in round %d", draftID, draft.Round())
		}
		if len(labIDs) > draft.MaxRounds {
			return apperrors.New(apperrors.KindInvalidArgument,
				"ranking lists %d labs but the draft has only %d rounds", len(labIDs), draft.MaxRounds)
		}

		var known int64
		if err := tx.Model(&models.Lab{}).
			Where("lab_id IN ? AND delete_at IS NULL", labIDs).
			Count(&known).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "validate lab ids")
		}
		if known != int64(len(labIDs)) {
			return apperrors.New(apperrors.KindInvalidArgument, "ranking references unknown labs")
		}

		var existing int64
		if err := tx.Model(&models.StudentRanking{}).
			Where("draft_id = ? AND student = ?", draftID, student).
			Count(&existing).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "check existing ranking")
		}
		if existing > 0 {
			return apperrors.New(apperrors.KindConflict,
				"student %s already has a ranking for draft %d", student, draftID)
		}

		if err := tx.Create(&ranking).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "create ranking")
		}

		return appendEvent(tx, draftID, draft.Round(), models.EventRankingSubmitted, map[string]interface{}{
			"student": student,
			"labs":    labIDs,
		})
	})
	if err != nil {
		return nil, err
	}
	return &ranking, nil
}

// Get loads the ranking a student submitted for a draft.
func (s *RankingService) Get(draftID uint, student string) (*models.StudentRanking, error) {
	student = strings.ToLower(strings.TrimSpace(student))

	var ranking models.StudentRanking
	err := s.db.Where("draft_id = ? AND student = ?", draftID, student).First(&ranking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.KindNotFound,
			"no ranking for student %s in draft %d", student, draftID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "load ranking")
	}
	return &ranking, nil
}

// ListForDraft returns all rankings for a draft in submission order.
func (s *RankingService) ListForDraft(draftID uint) ([]models.StudentRanking, error) {
	var rankings []models.StudentRanking
	if err := s.db.
		Where("draft_id = ?", draftID).
		Order("create_at ASC, ranking_id ASC").
		Find(&rankings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "list rankings")
	}
	return rankings, nil
}

// CountStudents reports how many distinct students have submitted a ranking.
func (s *RankingService) CountStudents(draftID uint) (int64, error) {
	return countRankings(s.db, draftID)
}
