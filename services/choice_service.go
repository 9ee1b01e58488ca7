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

// ChoiceService records which students a lab accepts in the live round.
// Record locks the draft row, so quota and round checks always run against
// committed state and two labs racing for the last quota slot serialize.
type ChoiceService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewChoiceService(db *gorm.DB) *ChoiceService {
	if db == nil {
		db = config.DB
	}
	return &ChoiceService{db: db, notifications: NewNotificationService(db)}
}

// Record persists a lab's acceptance of a student at the given round.
func (s *ChoiceService) Record(draftID uint, round int, labID uint, student string) (*models.FacultyChoice, error) {
	student = strings.ToLower(strings.TrimSpace(student))
	if student == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "student identity is required")
	}
	if round <= 0 {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "round must be positive, got %d", round)
	}

	choice := models.FacultyChoice{
		DraftID:  draftID,
		Round:    round,
		LabID:    labID,
		Student:  student,
		CreateAt: time.Now(),
	}
	var labName string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		draft, err := loadDraftLocked(tx, draftID)
		if err != nil {
			return err
		}

		terminal, err := draftTerminal(tx, draft)
		if err != nil {
			return err
		}
		if terminal {
			return apperrors.New(apperrors.KindInvalidState, "draft %d is terminal", draftID)
		}
		if draft.IsUnstarted() {
			return apperrors.New(apperrors.KindInvalidState, "draft %d has not started", draftID)
		}
		if round != draft.Round() {
			return apperrors.New(apperrors.KindInvalidState,
				"choices are accepted for round %d only, got round %d", draft.Round(), round)
		}

		var lab models.Lab
		err = tx.Where("lab_id = ? AND delete_at IS NULL", labID).First(&lab).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindNotFound, "lab %d not found", labID)
		}
		if err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "load lab")
		}
		labName = lab.Name

		var placed int64
		if err := tx.Model(&models.FacultyChoice{}).
			Where("draft_id = ? AND student = ?", draftID, student).
			Count(&placed).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "check existing placement")
		}
		if placed > 0 {
			return apperrors.New(apperrors.KindConflict,
				"student %s is already placed in draft %d", student, draftID)
		}

		// The student must have ranked this lab at this round's position or
		// earlier for the acceptance to be valid.
		var ranking models.StudentRanking
		err = tx.Where("draft_id = ? AND student = ?", draftID, student).First(&ranking).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindFailedPrecondition,
				"student %s has no ranking in draft %d", student, draftID)
		}
		if err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "load ranking")
		}
		ids, err := ranking.LabIDs()
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, err, "decode ranking")
		}
		position := 0
		for i, id := range ids {
			if id == labID {
				position = i + 1
				break
			}
		}
		if position == 0 || position > round {
			return apperrors.New(apperrors.KindFailedPrecondition,
				"student %s did not rank lab %d at position %d or earlier", student, labID, round)
		}

		var accepted int64
		if err := tx.Model(&models.FacultyChoice{}).
			Where("draft_id = ? AND lab_id = ?", draftID, labID).
			Count(&accepted).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "count acceptances")
		}
		if accepted >= int64(lab.Quota) {
			return apperrors.New(apperrors.KindFailedPrecondition,
				"lab %d has exhausted its quota of %d", labID, lab.Quota)
		}

		if err := tx.Create(&choice).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "create choice")
		}

		return appendEvent(tx, draftID, round, models.EventChoiceRecorded, map[string]interface{}{
			"lab_id":  labID,
			"student": student,
		})
	})
	if err != nil {
		return nil, err
	}

	go s.notifications.NotifyPlacement(student, labName, round)

	return &choice, nil
}

// ListForDraft returns all choices for a draft ordered by round, lab, and
// recording time.
func (s *ChoiceService) ListForDraft(draftID uint) ([]models.FacultyChoice, error) {
	var choices []models.FacultyChoice
	if err := s.db.
		Where("draft_id = ?", draftID).
		Order("round ASC, lab_id ASC, create_at ASC").
		Find(&choices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "list choices")
	}
	return choices, nil
}

// AcceptanceCount reports how many distinct students a lab has accepted
// across all rounds of a draft.
func (s *ChoiceService) AcceptanceCount(draftID, labID uint) (int64, error) {
	var n int64
	if err := s.db.Model(&models.FacultyChoice{}).
		Where("draft_id = ? AND lab_id = ?", draftID, labID).
		Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.KindUnavailable, err, "count acceptances")
	}
	return n, nil
}
