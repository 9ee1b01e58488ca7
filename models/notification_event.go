package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification event kinds.
const (
	EventRoundAdvanced    = "round-advanced"
	EventChoiceRecorded   = "choice-recorded"
	EventRankingSubmitted = "ranking-submitted"
)

// NotificationEvent is one entry in the append-only domain event log for a
// draft. Rows are never updated or deleted. Round is 0 for events emitted
// while the draft is still unstarted.
type NotificationEvent struct {
	EventID  uint           `gorm:"primaryKey;column:event_id" json:"event_id"`
	DraftID  uint           `gorm:"column:draft_id;index" json:"draft_id"`
	Round    int            `gorm:"column:round" json:"round"`
	Kind     string         `gorm:"column:kind" json:"kind"`
	Payload  datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreateAt time.Time      `gorm:"column:create_at" json:"create_at"`
}

func (NotificationEvent) TableName() string { return "notification_events" }
