package models

import "time"

// Lab is a research lab participating in the draft. Quota is the maximum
// number of students the lab may accept across an entire draft.
type Lab struct {
	LabID    uint       `gorm:"primaryKey;column:lab_id" json:"lab_id"`
	Name     string     `gorm:"column:name;unique" json:"name"`
	Quota    int        `gorm:"column:quota" json:"quota"`
	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Lab) TableName() string { return "labs" }
