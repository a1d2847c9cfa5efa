package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/repository"
	"github.com/AshishRanjanPandey/ccrm/internal/service"
)

func newStudentRouter(t *testing.T) (*gin.Engine, *repository.StudentRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewStudentRepository()
	h := NewStudentHandler(service.NewStudentService(repo, nil, zap.NewNop()))

	r := gin.New()
	r.GET("/students", h.List)
	r.GET("/students/:regNo", h.Get)
	r.POST("/students", h.Create)
	r.PATCH("/students/:regNo", h.Update)
	r.DELETE("/students/:regNo", h.Deactivate)
	return r, repo
}

func TestStudentCreateEndpoint(t *testing.T) {
	r, repo := newStudentRouter(t)

	payload, _ := json.Marshal(gin.H{"reg_no": "R100", "full_name": "Ada Lovelace", "email": "ada@campus.edu"})
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	s, ok := repo.FindByRegNo("R100")
	require.True(t, ok)
	assert.Equal(t, 1, s.ID)
}

func TestStudentCreateEndpointConflict(t *testing.T) {
	r, repo := newStudentRouter(t)
	_, err := repo.Create("R100", "First", "first@campus.edu")
	require.NoError(t, err)

	payload, _ := json.Marshal(gin.H{"reg_no": "R100", "full_name": "Second", "email": "second@campus.edu"})
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStudentGetAndDeactivateEndpoints(t *testing.T) {
	r, repo := newStudentRouter(t)
	_, err := repo.Create("R100", "Ada", "ada@campus.edu")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/students/R100", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/students/R100", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	s, _ := repo.FindByRegNo("R100")
	assert.False(t, s.Active)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/students/R999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
