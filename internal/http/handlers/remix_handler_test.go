package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRemixHandler_List_UnknownSort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &RemixHandler{remixes: nil}
	r.GET("/remixes", handler.List)

	req, _ := http.NewRequest("GET", "/remixes?sort=magic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemixHandler_Get_InvalidRemixID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &RemixHandler{remixes: nil}
	r.GET("/remixes/:id", handler.Get)

	req, _ := http.NewRequest("GET", "/remixes/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
