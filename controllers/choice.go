package controllers

import (
	"net/http"

	"lab-draft-api/models"
	"lab-draft-api/services"

	"github.com/gin-gonic/gin"
)

type recordChoiceRequest struct {
	Round   int    `json:"round" binding:"required"`
	LabID   uint   `json:"lab_id"`
	Student string `json:"student" binding:"required,email"`
}

// RecordChoice persists a lab's acceptance of a student in the live round.
// Faculty callers may only record choices for their own lab; admins may pass
// any lab id.
func RecordChoice(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req recordChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	labID := req.LabID
	if c.GetInt("roleID") == models.RoleFaculty {
		callerLab, exists := c.Get("labID")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Faculty account is not linked to a lab"})
			return
		}
		labID = callerLab.(uint)
	}
	if labID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lab_id is required"})
		return
	}

	choice, err := services.NewChoiceService(nil).Record(draftID, req.Round, labID, req.Student)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Choice recorded successfully",
		"choice":  choice,
	})
}

// GetDraftChoices lists every choice for a draft ordered by round, lab, and
// recording time.
func GetDraftChoices(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	choices, err := services.NewChoiceService(nil).ListForDraft(draftID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"choices": choices})
}

// GetLabAcceptanceCount reports a lab's acceptance count for a draft.
func GetLabAcceptanceCount(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	labID, ok := parseUintParam(c, "lab_id")
	if !ok {
		return
	}

	count, err := services.NewChoiceService(nil).AcceptanceCount(draftID, labID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft_id": draftID,
		"lab_id":   labID,
		"accepted": count,
	})
}
