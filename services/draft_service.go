package services

import (
	"errors"
	"time"

	"lab-draft-api/apperrors"
	"lab-draft-api/config"
	"lab-draft-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DraftService owns the draft lifecycle: Unstarted (curr_round NULL) →
// Active (1..max_rounds) → Terminal. All transitions run inside a single
// transaction with the draft row locked, so concurrent advances serialize at
// the database and the loser fails with Conflict instead of double-advancing.
type DraftService struct {
	db *gorm.DB
}

func NewDraftService(db *gorm.DB) *DraftService {
	if db == nil {
		db = config.DB
	}
	return &DraftService{db: db}
}

// loadDraftLocked reads a draft FOR UPDATE inside tx.
func loadDraftLocked(tx *gorm.DB, draftID uint) (*models.Draft, error) {
	var draft models.Draft
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("draft_id = ?", draftID).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.KindNotFound, "draft %d not found", draftID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "load draft")
	}
	return &draft, nil
}

// countRankings reports how many distinct students have submitted a ranking
// for the draft. Rankings are unique per (draft, student), so a plain row
// count is the distinct-student count.
func countRankings(tx *gorm.DB, draftID uint) (int64, error) {
	var n int64
	if err := tx.Model(&models.StudentRanking{}).
		Where("draft_id = ?", draftID).
		Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.KindUnavailable, err, "count rankings")
	}
	return n, nil
}

// draftTerminal reports whether the draft can make no further progress:
// either the round counter moved past max_rounds, or every student who
// submitted a ranking already has a recorded choice.
func draftTerminal(tx *gorm.DB, draft *models.Draft) (bool, error) {
	if draft.RoundsExhausted() {
		return true, nil
	}
	if draft.IsUnstarted() {
		return false, nil
	}

	ranked, err := countRankings(tx, draft.DraftID)
	if err != nil {
		return false, err
	}
	if ranked == 0 {
		return false, nil
	}

	var placed int64
	if err := tx.Model(&models.FacultyChoice{}).
		Where("draft_id = ?", draft.DraftID).
		Count(&placed).Error; err != nil {
		return false, apperrors.Wrap(apperrors.KindUnavailable, err, "count choices")
	}
	return placed >= ranked, nil
}

// findNonTerminalDraft returns the unique draft that is Unstarted or Active,
// or nil when none exists. Drafts whose round counter stayed within
// max_rounds can still be terminal when every ranked student is placed, so
// each candidate goes through draftTerminal. The locking clause stays on a
// local chain for the candidate query only; reusing a chained instance would
// carry its statement into the count queries that follow.
func findNonTerminalDraft(tx *gorm.DB, lock bool) (*models.Draft, error) {
	query := tx
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var drafts []models.Draft
	if err := query.
		Where("curr_round IS NULL OR curr_round <= max_rounds").
		Order("draft_id ASC").
		Find(&drafts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "find open draft")
	}

	for i := range drafts {
		terminal, err := draftTerminal(tx, &drafts[i])
		if err != nil {
			return nil, err
		}
		if !terminal {
			return &drafts[i], nil
		}
	}
	return nil, nil
}

// Create opens a new draft in the Unstarted state. At most one non-terminal
// draft may exist system-wide; the check runs inside the creating transaction
// so two concurrent creates cannot both pass it against stale state.
func (s *DraftService) Create(maxRounds int, registrationClosesAt *time.Time) (*models.Draft, error) {
	if maxRounds <= 0 {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "max rounds must be positive, got %d", maxRounds)
	}

	draft := models.Draft{
		Reference:            uuid.NewString(),
		MaxRounds:            maxRounds,
		RegistrationClosesAt: registrationClosesAt,
		CreateAt:             time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Locking the candidate range serializes concurrent creates, so two
		// callers cannot both observe "no open draft" and insert.
		open, err := findNonTerminalDraft(tx, true)
		if err != nil {
			return err
		}
		if open != nil {
			return apperrors.New(apperrors.KindConflict,
				"draft %d is still open; close it before creating another", open.DraftID)
		}

		if err := tx.Create(&draft).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "create draft")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// AdvanceRound moves the draft to its next round. expectedRound is the round
// the caller last observed (nil for Unstarted); if the committed round no
// longer matches, another caller advanced first and this one fails with
// Conflict so it can re-read state.
func (s *DraftService) AdvanceRound(draftID uint, expectedRound *int) (*models.Draft, error) {
	var advanced *models.Draft

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

		if !roundCursorMatches(draft.CurrRound, expectedRound) {
			return apperrors.New(apperrors.KindConflict,
				"draft %d is at round %d, not the round the caller observed", draftID, draft.Round())
		}

		prev := draft.Round()
		next := prev + 1
		if draft.IsUnstarted() {
			ranked, err := countRankings(tx, draftID)
			if err != nil {
				return err
			}
			if ranked == 0 {
				return apperrors.New(apperrors.KindFailedPrecondition,
					"cannot start draft %d with zero participants", draftID)
			}
		}

		now := time.Now()
		if err := tx.Model(&models.Draft{}).
			Where("draft_id = ?", draftID).
			Updates(map[string]interface{}{"curr_round": next, "update_at": now}).Error; err != nil {
			return apperrors.Wrap(apperrors.KindUnavailable, err, "advance draft round")
		}

		if err := appendEvent(tx, draftID, next, models.EventRoundAdvanced, map[string]interface{}{
			"from": prev,
			"to":   next,
		}); err != nil {
			return err
		}

		draft.CurrRound = &next
		draft.UpdateAt = &now
		advanced = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return advanced, nil
}

func roundCursorMatches(current, expected *int) bool {
	if current == nil || expected == nil {
		return current == nil && expected == nil
	}
	return *current == *expected
}

// Get loads one draft by id.
func (s *DraftService) Get(draftID uint) (*models.Draft, error) {
	var draft models.Draft
	err := s.db.Where("draft_id = ?", draftID).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.KindNotFound, "draft %d not found", draftID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "load draft")
	}
	return &draft, nil
}

// GetActive returns the unique non-terminal draft, or nil when none exists.
func (s *DraftService) GetActive() (*models.Draft, error) {
	return findNonTerminalDraft(s.db, false)
}

// IsTerminal reports whether the draft permits no further rounds or choices.
func (s *DraftService) IsTerminal(draft *models.Draft) (bool, error) {
	return draftTerminal(s.db, draft)
}
