package controllers

import (
	"net/http"
	"time"

	"lab-draft-api/services"

	"github.com/gin-gonic/gin"
)

type createDraftRequest struct {
	MaxRounds            int        `json:"max_rounds" binding:"required"`
	RegistrationClosesAt *time.Time `json:"registration_closes_at"`
}

type advanceRoundRequest struct {
	// ExpectedRound is the round the caller last observed; omitted/null means
	// the caller believes the draft has not started. A stale value yields 409.
	ExpectedRound *int `json:"expected_round"`
}

// CreateDraft opens a new draft in the unstarted state.
func CreateDraft(c *gin.Context) {
	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := services.NewDraftService(nil).Create(req.MaxRounds, req.RegistrationClosesAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Draft created successfully",
		"draft":   draft,
	})
}

// AdvanceRound moves the draft to its next round.
func AdvanceRound(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req advanceRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := services.NewDraftService(nil).AdvanceRound(draftID, req.ExpectedRound)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Round advanced",
		"draft":   draft,
	})
}

// GetActiveDraft returns the unique non-terminal draft, if any.
func GetActiveDraft(c *gin.Context) {
	draft, err := services.NewDraftService(nil).GetActive()
	if err != nil {
		respondError(c, err)
		return
	}

	if draft == nil {
		c.JSON(http.StatusOK, gin.H{"draft": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// GetDraft returns one draft with its terminal flag.
func GetDraft(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewDraftService(nil)
	draft, err := svc.Get(draftID)
	if err != nil {
		respondError(c, err)
		return
	}

	terminal, err := svc.IsTerminal(draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft":    draft,
		"terminal": terminal,
	})
}
