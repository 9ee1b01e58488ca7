package controllers

import (
	"net/http"
	"strconv"

	"lab-draft-api/services"

	"github.com/gin-gonic/gin"
)

type registerLabRequest struct {
	Name string `json:"name" binding:"required"`
}

type setQuotaRequest struct {
	Quota *int `json:"quota" binding:"required"`
}

// RegisterLab creates a new lab with quota 0.
func RegisterLab(c *gin.Context) {
	var req registerLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lab, err := services.NewLabService(nil).Register(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Lab registered successfully",
		"lab":     lab,
	})
}

// SetLabQuota updates a lab's acceptance quota.
func SetLabQuota(c *gin.Context) {
	labID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req setQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewLabService(nil).SetQuota(labID, *req.Quota); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quota updated"})
}

// GetLabs lists all labs in creation order.
func GetLabs(c *gin.Context) {
	labs, err := services.NewLabService(nil).List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"labs": labs})
}

// DeleteLab soft-deletes a lab.
func DeleteLab(c *gin.Context) {
	labID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewLabService(nil).Delete(labID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lab removed"})
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
