package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestModerationHandler_Decide_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ModerationHandler{svc: nil}
	r.POST("/moderation/queue/:id/decision", handler.Decide)

	itemID := uuid.New()
	req, _ := http.NewRequest("POST", "/moderation/queue/"+itemID.String()+"/decision", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModerationHandler_Decide_InvalidItemID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	moderatorID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", moderatorID)
		c.Set("role", "moderator")
		c.Next()
	})
	handler := &ModerationHandler{svc: nil}
	r.POST("/moderation/queue/:id/decision", handler.Decide)

	req, _ := http.NewRequest("POST", "/moderation/queue/invalid-uuid/decision", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModerationHandler_Decide_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	moderatorID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", moderatorID)
		c.Set("role", "moderator")
		c.Next()
	})
	handler := &ModerationHandler{svc: nil}
	r.POST("/moderation/queue/:id/decision", handler.Decide)

	itemID := uuid.New()
	// Тело без обязательного поля action
	req, _ := http.NewRequest("POST", "/moderation/queue/"+itemID.String()+"/decision", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModerationHandler_GetItem_InvalidItemID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ModerationHandler{svc: nil}
	r.GET("/moderation/queue/:id", handler.GetItem)

	req, _ := http.NewRequest("GET", "/moderation/queue/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
