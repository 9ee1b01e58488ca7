package models

import "time"

// Draft is one multi-round allocation process. CurrRound is NULL while the
// draft is open for registration ("unstarted"), 1..MaxRounds while active,
// and MaxRounds+1 once the rounds are exhausted. Only the draft service's
// advance operation mutates CurrRound.
type Draft struct {
	DraftID              uint       `gorm:"primaryKey;column:draft_id" json:"draft_id"`
	Reference            string     `gorm:"column:reference;unique" json:"reference"`
	CurrRound            *int       `gorm:"column:curr_round" json:"curr_round"`
	MaxRounds            int        `gorm:"column:max_rounds" json:"max_rounds"`
	RegistrationClosesAt *time.Time `gorm:"column:registration_closes_at" json:"registration_closes_at,omitempty"`
	CreateAt             time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
}

func (Draft) TableName() string { return "drafts" }

// IsUnstarted reports whether the draft has not yet entered round 1.
func (d *Draft) IsUnstarted() bool { return d.CurrRound == nil }

// RoundsExhausted reports whether the round counter has moved past MaxRounds.
// A draft can also be terminal with rounds remaining when every ranked
// student is placed; that check needs the stores and lives in the service.
func (d *Draft) RoundsExhausted() bool {
	return d.CurrRound != nil && *d.CurrRound > d.MaxRounds
}

// Round returns the live round number, or 0 while unstarted.
func (d *Draft) Round() int {
	if d.CurrRound == nil {
		return 0
	}
	return *d.CurrRound
}
