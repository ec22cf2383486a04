package create_session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"
	"github.com/m04kA/SMC-FleetCalendar/pkg/logger"
)

type fakeService struct {
	got *models.CreateSessionRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionResponse{SessionID: "s-1", ExpiresAt: "2025-06-15T13:00:00Z"}, nil
}

func serve(t *testing.T, svc SessionService, body string, withUser bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calendar/sessions", strings.NewReader(body))
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	rec := serve(t, svc, `{"year": 2025, "viewMode": "quarter", "viewportWidth": 1200, "viewportHeight": 700}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(7), svc.got.UserID)
	assert.Equal(t, "quarter", svc.got.ViewMode)
	assert.Equal(t, 1200.0, svc.got.ViewportWidth)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "s-1", resp.SessionID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		withUser   bool
		err        error
		wantStatus int
	}{
		{"missing user", `{}`, false, nil, http.StatusUnauthorized},
		{"broken body", `{"year":`, true, nil, http.StatusBadRequest},
		{"unknown field", `{"decade": 1}`, true, nil, http.StatusBadRequest},
		{"invalid input", `{"viewMode": "decade"}`, true, sessions.ErrInvalidInput, http.StatusBadRequest},
		{"limit", `{"viewportWidth": 800}`, true, sessions.ErrTooManySessions, http.StatusTooManyRequests},
		{"internal", `{"viewportWidth": 800}`, true, sessions.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeService{err: tt.err}, tt.body, tt.withUser)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
