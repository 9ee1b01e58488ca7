package controllers

import (
	"net/http"

	"lab-draft-api/services"

	"github.com/gin-gonic/gin"
)

type submitRankingRequest struct {
	Labs []uint `json:"labs" binding:"required"`
}

// SubmitRanking records the calling student's ordered lab preferences.
func SubmitRanking(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req submitRankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The student identity is always the authenticated caller.
	email := c.GetString("email")

	ranking, err := services.NewRankingService(nil).Submit(draftID, email, req.Labs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ranking submitted successfully",
		"ranking": ranking,
	})
}

// GetMyRanking returns the calling student's ranking for a draft.
func GetMyRanking(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	email := c.GetString("email")

	ranking, err := services.NewRankingService(nil).Get(draftID, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ranking": ranking})
}

// GetDraftRankings lists every ranking submitted for a draft.
func GetDraftRankings(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	rankings, err := services.NewRankingService(nil).ListForDraft(draftID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rankings": rankings})
}
