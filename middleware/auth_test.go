package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set("roleID", 3)

	RequireRole(2, 3)(c)

	if c.IsAborted() {
		t.Fatalf("expected role 3 to pass a (2,3) gate")
	}
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set("roleID", 1)

	RequireRole(3)(c)

	if !c.IsAborted() {
		t.Fatalf("expected role 1 to be rejected by an admin gate")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	RequireRole(3)(c)

	if !c.IsAborted() || w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when no role is set, got %d", w.Code)
	}
}
