package controllers

import (
	"net/http"

	"lab-draft-api/services"

	"github.com/gin-gonic/gin"
)

// GetResultsByStudent returns the per-student placement projection. The
// records are structured; any CSV or report formatting happens outside this
// API.
func GetResultsByStudent(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	results, err := services.NewExportService(nil).ResultsByStudent(draftID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetResultsByLab returns the per-lab placement projection with running
// acceptance counts against quota.
func GetResultsByLab(c *gin.Context) {
	draftID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	results, err := services.NewExportService(nil).ResultsByLab(draftID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
