package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lab-draft-api/apperrors"
	"lab-draft-api/config"
	"lab-draft-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// appendEvent writes one entry to the append-only notification log. It is
// only ever called inside the transaction of the operation that produced the
// event, so a rolled-back mutation leaves no trace in the log.
func appendEvent(tx *gorm.DB, draftID uint, round int, kind string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, err, "encode event payload")
	}

	event := models.NotificationEvent{
		DraftID:  draftID,
		Round:    round,
		Kind:     kind,
		Payload:  datatypes.JSON(raw),
		CreateAt: time.Now(),
	}
	if err := tx.Create(&event).Error; err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, err, "append notification event")
	}
	return nil
}

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	if db == nil {
		db = config.DB
	}
	return &NotificationService{db: db}
}

// ListForDraft returns the event log for a draft in append order.
func (s *NotificationService) ListForDraft(draftID uint) ([]models.NotificationEvent, error) {
	var events []models.NotificationEvent
	if err := s.db.
		Where("draft_id = ?", draftID).
		Order("create_at ASC, event_id ASC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, err, "list notification events")
	}
	return events, nil
}

// NotifyPlacement emails a student about their placement. Delivery is best
// effort: failures are logged and never surfaced to the transaction that
// recorded the choice.
func (s *NotificationService) NotifyPlacement(studentEmail, labName string, round int) {
	subject := fmt.Sprintf("You have been placed: %s", labName)
	body := fmt.Sprintf(
		"<p>Congratulations! <b>%s</b> accepted you in round %d of the lab draft.</p>",
		labName, round,
	)
	if err := config.SendMail([]string{studentEmail}, subject, body); err != nil {
		log.Printf("placement mail to %s failed: %v", studentEmail, err)
	}
}
