package services

import (
	"errors"
	"time"

	"lab-draft-api/apperrors"
	"lab-draft-api/config"
	"lab-draft-api/models"

	"gorm.io/gorm"
)

// StudentResult is one row of the results-by-student projection.
type StudentResult struct {
	Student     string     `json:"student"`
	RankedLabs  []uint     `json:"ranked_labs"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Placed      bool       `json:"placed"`
	LabID       *uint      `json:"lab_id,omitempty"`
	LabName     *string    `json:"lab_name,omitempty"`
	Round       *int       `json:"round,omitempty"`
	PlacedAt    *time.Time `json:"placed_at,omitempty"`
	// Unplaced is only asserted once the draft is terminal; before that a
	// student without a choice is simply still waiting.
	Unplaced bool `json:"unplaced"`
}

// LabPlacement is one accepted student within a lab's result group.
type LabPlacement struct {
	Student    string    `json:"student"`
	Round      int       `json:"round"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// LabResult is one row of the results-by-lab projection.
type LabResult struct {
	LabID    uint           `json:"lab_id"`
	Name     string         `json:"name"`
	Quota    int            `json:"quota"`
	Accepted int            `json:"accepted"`
	Students []LabPlacement `json:"students"`
}

// ExportService computes read-only reporting views from the stores. Nothing
// here is persisted; serialization is the caller's concern.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	if db == nil {
		db = config.DB
	}
	return &ExportService{db: db}
}

// ResultsByStudent joins every ranking with its eventual choice.
func (s *ExportService) ResultsByStudent(draftID uint) ([]StudentResult, error) {
	var draft models.Draft
	if err := s.db.Where("draft_id = ?", draftID).First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "draft %d not found", draftID)
		}
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "load draft")
	}

	terminal, err := draftTerminal(s.db, &draft)
	if err != nil {
		return nil, err
	}

	var rankings []models.StudentRanking
	if err := s.db.
		Where("draft_id = ?", draftID).
		Order("create_at ASC, ranking_id ASC").
		Find(&rankings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "list rankings")
	}

	var choices []models.FacultyChoice
	if err := s.db.
		Where("draft_id = ?", draftID).
		Find(&choices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "list choices")
	}

	labNames, err := s.labNames()
	if err != nil {
		return nil, err
	}

	byStudent := make(map[string]models.FacultyChoice, len(choices))
	for _, c := range choices {
		byStudent[c.Student] = c
	}

	results := make([]StudentResult, 0, len(rankings))
	for i := range rankings {
		r := &rankings[i]
		ids, err := r.LabIDs()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, err, "decode ranking")
		}

		row := StudentResult{
			Student:     r.Student,
			RankedLabs:  ids,
			SubmittedAt: r.CreateAt,
		}
		if c, ok := byStudent[r.Student]; ok {
			labID := c.LabID
			round := c.Round
			placedAt := c.CreateAt
			row.Placed = true
			row.LabID = &labID
			row.Round = &round
			row.PlacedAt = &placedAt
			if name, ok := labNames[c.LabID]; ok {
				row.LabName = &name
			}
		} else if terminal {
			row.Unplaced = true
		}
		results = append(results, row)
	}
	return results, nil
}

// ResultsByLab groups accepted students per lab with running counts against
// quota. Labs with zero acceptances are included.
func (s *ExportService) ResultsByLab(draftID uint) ([]LabResult, error) {
	var labs []models.Lab
	if err := s.db.
		Where("delete_at IS NULL").
		Order("lab_id ASC").
		Find(&labs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "list labs")
	}

	var choices []models.FacultyChoice
	if err := s.db.
		Where("draft_id = ?", draftID).
		Order("round ASC, lab_id ASC, create_at ASC").
		Find(&choices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "list choices")
	}

	byLab := make(map[uint][]LabPlacement)
	for _, c := range choices {
		byLab[c.LabID] = append(byLab[c.LabID], LabPlacement{
			Student:    c.Student,
			Round:      c.Round,
			AcceptedAt: c.CreateAt,
		})
	}

	results := make([]LabResult, 0, len(labs))
	for _, lab := range labs {
		placements := byLab[lab.LabID]
		results = append(results, LabResult{
			LabID:    lab.LabID,
			Name:     lab.Name,
			Quota:    lab.Quota,
			Accepted: len(placements),
			Students: placements,
		})
	}
	return results, nil
}

func (s *ExportService) labNames() (map[uint]string, error) {
	var labs []models.Lab
	if err := s.db.Find(&labs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "list labs")
	}
	names := make(map[uint]string, len(labs))
	for _, lab := range labs {
		names[lab.LabID] = lab.Name
	}
	return names, nil
}
