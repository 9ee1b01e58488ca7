package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// StudentRanking is a student's ordered lab preference list for one draft.
// A student submits at most one ranking per draft; the list is immutable once
// the draft has advanced past round 1.
type StudentRanking struct {
	RankingID uint           `gorm:"primaryKey;column:ranking_id" json:"ranking_id"`
	DraftID   uint           `gorm:"column:draft_id;uniqueIndex:uq_ranking_draft_student" json:"draft_id"`
	Student   string         `gorm:"column:student;uniqueIndex:uq_ranking_draft_student" json:"student"`
	Labs      datatypes.JSON `gorm:"column:labs" json:"labs"`
	CreateAt  time.Time      `gorm:"column:create_at" json:"create_at"`
}

func (StudentRanking) TableName() string { return "student_rankings" }

// LabIDs decodes the ordered lab id list from the JSON column.
func (r *StudentRanking) LabIDs() ([]uint, error) {
	var ids []uint
	if len(r.Labs) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(r.Labs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetLabIDs encodes the ordered lab id list into the JSON column.
func (r *StudentRanking) SetLabIDs(ids []uint) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	r.Labs = datatypes.JSON(raw)
	return nil
}
