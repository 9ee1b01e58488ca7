package controllers

import (
	"log"
	"net/http"

	"lab-draft-api/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps the engine's error kinds onto HTTP status codes. The
// services never decide status codes themselves.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidArgument:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindFailedPrecondition:
		status = http.StatusPreconditionFailed
	case apperrors.KindInvalidState:
		status = http.StatusUnprocessableEntity
	case apperrors.KindUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
