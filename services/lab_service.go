package services

import (
	"errors"
	"strings"
	"time"

	"lab-draft-api/apperrors"
	"lab-draft-api/config"
	"lab-draft-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LabService maintains the lab registry. Quotas may only change while no
// draft is in an active round, so a running draft always sees a stable quota.
type LabService struct {
	db *gorm.DB
}

func NewLabService(db *gorm.DB) *LabService {
	if db == nil {
		db = config.DB
	}
	return &LabService{db: db}
}

// activeDraftExists reports whether any draft is in rounds 1..max and not
// terminal. Unstarted drafts do not block registry changes. The candidate
// rows are locked so the check cannot race with a concurrent round advance.
func activeDraftExists(tx *gorm.DB) (bool, error) {
	var drafts []models.Draft
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("curr_round IS NOT NULL AND curr_round <= max_rounds").
		Find(&drafts).Error; err != nil {
		return false, apperrors.Wrap(apperrors.KindUnavailable, err, "find active draft")
	}

	for i := range drafts {
		terminal, err := draftTerminal(tx, &drafts[i])
		if err != nil {
			return false, err
		}
		if !terminal {
			return true, nil
		}
	}
	return false, nil
}

// Register creates a lab with quota 0. The quota is set separately, gated by
// the no-active-draft rule.
func (s *LabService) Register(name string) (*models.Lab, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "lab name is required")
	}

	lab := models.Lab{
		Name:     name,
		CreateAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Lab{}).
			Where("name = ?", name).
			Count(&existing).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "check lab name")
		}
		if existing > 0 {
			return apperrors.New(apperrors.KindConflict, "lab %q already registered", name)
		}

		if err := tx.Create(&lab).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "create lab")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lab, nil
}

// SetQuota updates a lab's acceptance quota. Rejected while a draft is in an
// active round.
func (s *LabService) SetQuota(labID uint, quota int) error {
	if quota < 0 {
		return apperrors.New(apperrors.KindInvalidArgument, "quota must not be negative, got %d", quota)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		active, err := activeDraftExists(tx)
		if err != nil {
			return err
		}
		if active {
			return apperrors.New(apperrors.KindInvalidState, "quotas are frozen while a draft is active")
		}

		var lab models.Lab
		err = tx.Where("lab_id = ? AND delete_at IS NULL", labID).First(&lab).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindNotFound, "lab %d not found", labID)
		}
		if err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "load lab")
		}

		now := time.Now()
		if err := tx.Model(&models.Lab{}).
			Where("lab_id = ?", labID).
			Updates(map[string]interface{}{"quota": quota, "update_at": now}).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "update quota")
		}
		return nil
	})
}

// Get loads one lab by id.
func (s *LabService) Get(labID uint) (*models.Lab, error) {
	var lab models.Lab
	err := s.db.Where("lab_id = ? AND delete_at IS NULL", labID).First(&lab).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.KindNotFound, "lab %d not found", labID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "load lab")
	}
	return &lab, nil
}

// List returns all labs in creation order, soft-deleted excluded.
func (s *LabService) List() ([]models.Lab, error) {
	var labs []models.Lab
	if err := s.db.
		Where("delete_at IS NULL").
		Order("lab_id ASC").
		Find(&labs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "list labs")
	}
	return labs, nil
}

// Delete soft-deletes a lab, gated by the same no-active-draft rule as quota
// changes.
func (s *LabService) Delete(labID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		active, err := activeDraftExists(tx)
		if err != nil {
			return err
		}
		if active {
			return apperrors.New(apperrors.KindInvalidState, "labs cannot be removed while a draft is active")
		}

		var lab models.Lab
		err = tx.Where("lab_id = ? AND delete_at IS NULL", labID).First(&lab).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindNotFound, "lab %d not found", labID)
		}
		if err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "load lab")
		}

		now := time.Now()
		if err := tx.Model(&models.Lab{}).
			Where("lab_id = ?", labID).
			Updates(map[string]interface{}{"delete_at": now, "update_at": now}).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "delete lab")
		}
		return nil
	})
}
