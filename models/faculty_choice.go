package models

import "time"

// FacultyChoice records a lab accepting a specific student at a specific
// round. A student is placed at most once per draft, backed by the unique
// index on (draft_id, student).
type FacultyChoice struct {
	ChoiceID uint      `gorm:"primaryKey;column:choice_id" json:"choice_id"`
	DraftID  uint      `gorm:"column:draft_id;uniqueIndex:uq_choice_draft_student" json:"draft_id"`
	Round    int       `gorm:"column:round" json:"round"`
	LabID    uint      `gorm:"column:lab_id" json:"lab_id"`
	Student  string    `gorm:"column:student;uniqueIndex:uq_choice_draft_student" json:"student"`
	CreateAt time.Time `gorm:"column:create_at" json:"create_at"`

	Lab Lab `gorm:"foreignKey:LabID" json:"lab,omitempty"`
}

func (FacultyChoice) TableName() string { return "faculty_choices" }
