package controllers

import (
	"net/http"

	"lab-draft-api/services"

	"github.com/gin-gonic/gin"
)

// GetDraftEvents returns the append-only event log for a draft in append
// order.
func GetDraftEvents(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	events, err := services.NewNotificationService(nil).ListForDraft(draftID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
