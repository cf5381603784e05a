package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/infopanel/internal/announcement/application"
	"github.com/davicafu/infopanel/internal/announcement/domain"
	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	"github.com/davicafu/infopanel/tests/mocks"
)

type announcementResponse struct {
	Data domain.Announcement `json:"data"`
}

func setupRouter() (*gin.Engine, *mocks.RecordingPublisher) {
	gin.SetMode(gin.TestMode)
	pub := &mocks.RecordingPublisher{}
	service := application.NewAnnouncementService(mocks.NewInMemoryAnnouncementRepo(), pub, zap.NewNop())
	r := gin.New()
	RegisterAnnouncementRoutes(r, NewAnnouncementHandler(service))
	return r, pub
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func create(t *testing.T, r *gin.Engine) domain.Announcement {
	rec := do(r, http.MethodPost, "/announcements", map[string]string{
		"title":     "Reunión de vecinos",
		"body":      "Martes 19h",
		"starts_at": "2026-01-10T19:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp announcementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func TestCreateAndApprove_HTTP(t *testing.T) {
	r, pub := setupRouter()
	a := create(t, r)
	assert.Equal(t, domain.StatusPending, a.Status)
	assert.Equal(t, "admin", a.Author)

	rec := do(r, http.MethodPost, "/announcements/"+a.ID.String()+"/approve", map[string]string{"approver": "presidenta"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp announcementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.StatusApproved, resp.Data.Status)
	assert.Equal(t, []sharedEvents.EventType{sharedEvents.AnnouncementCreated, sharedEvents.AnnouncementApproved}, pub.Types())
}

func TestApproveTwice_Conflict(t *testing.T) {
	r, _ := setupRouter()
	a := create(t, r)
	path := "/announcements/" + a.ID.String() + "/approve"
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, path, map[string]string{"approver": "x"}).Code)

	rec := do(r, http.MethodPost, path, map[string]string{"approver": "x"})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreate_Validation(t *testing.T) {
	r, pub := setupRouter()

	missingTitle := do(r, http.MethodPost, "/announcements", map[string]string{"body": "x"})
	badDate := do(r, http.MethodPost, "/announcements", map[string]string{"title": "x", "ends_at": "ayer"})
	badRange := do(r, http.MethodPost, "/announcements", map[string]string{
		"title": "x", "starts_at": "2026-01-10T19:00:00Z", "ends_at": "2026-01-09T19:00:00Z",
	})

	assert.Equal(t, http.StatusBadRequest, missingTitle.Code)
	assert.Equal(t, http.StatusBadRequest, badDate.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, badRange.Code)
	assert.Empty(t, pub.Published)
}

func TestGetDelete_HTTP(t *testing.T) {
	r, pub := setupRouter()
	a := create(t, r)
	path := "/announcements/" + a.ID.String()

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/announcements/"+uuid.NewString(), nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/announcements/not-a-uuid", nil).Code)
	assert.Equal(t, sharedEvents.AnnouncementDeleted, pub.Types()[len(pub.Types())-1])
}

func TestListAnnouncements_ByStatus(t *testing.T) {
	r, _ := setupRouter()
	a := create(t, r)
	create(t, r)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/announcements/"+a.ID.String()+"/reject", nil).Code)

	rec := do(r, http.MethodGet, "/announcements?status=pending", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.Announcement `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}
