package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/infopanel/internal/countdown/application"
	"github.com/davicafu/infopanel/tests/mocks"
)

func TestCountdownHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := application.NewCountdownService(mocks.NewInMemoryCountdownRepo(), &mocks.RecordingPublisher{}, zap.NewNop())
	handler := NewCountdownHandler(service)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	handler.now = func() time.Time { return now }
	r := gin.New()
	RegisterCountdownRoutes(r, handler)

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	// Create
	rec := send(http.MethodPost, "/countdowns", `{"title":"Fiestas","target_at":"2026-05-01T13:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data struct {
			ID               string `json:"id"`
			Title            string `json:"title"`
			RemainingSeconds int64  `json:"remaining_seconds"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Fiestas", created.Data.Title)
	assert.Equal(t, int64(3600), created.Data.RemainingSeconds)

	// Validación
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/countdowns", `{"title":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/countdowns", `{"title":"x","target_at":"pronto"}`).Code)

	// Update + Get
	path := "/countdowns/" + created.Data.ID
	assert.Equal(t, http.StatusOK, send(http.MethodPut, path, `{"title":"Fiestas patronales","target_at":"2026-05-02 12:00:00"}`).Code)
	rec = send(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fiestas patronales")
	assert.Contains(t, rec.Body.String(), `"remaining_seconds":86400`)

	// List + Delete
	assert.Contains(t, send(http.MethodGet, "/countdowns?active=true", "").Body.String(), created.Data.ID)
	assert.Equal(t, http.StatusNoContent, send(http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, send(http.MethodGet, path, "").Code)
}
