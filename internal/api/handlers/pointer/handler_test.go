package pointer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/selection"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"
	"github.com/m04kA/SMC-FleetCalendar/pkg/logger"
)

type fakeService struct {
	got *models.PointerRequest
	err error
}

func (f *fakeService) Pointer(_ context.Context, req *models.PointerRequest) (*models.PointerResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.PointerResponse{
		Handled: true,
		Selection: models.SelectionResponse{
			Selection: selection.Snapshot{Reservations: []string{req.ReservationID}},
		},
	}, nil
}

func newRouter(svc SessionService) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/calendar/sessions/{sessionId}/pointer", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPost)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calendar/sessions/s-1/pointer", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "3")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ClickReservation(t *testing.T) {
	svc := &fakeService{}
	rec := post(newRouter(svc), `{"action": "click-reservation", "reservationId": "b1", "ctrl": true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, "s-1", svc.got.SessionID)
	assert.Equal(t, int64(3), svc.got.UserID)
	assert.True(t, svc.got.Modifiers().Toggle())

	var resp models.PointerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Handled)
	assert.Equal(t, []string{"b1"}, resp.Selection.Selection.Reservations)
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{sessions.ErrInvalidInput, http.StatusBadRequest},
		{sessions.ErrSessionNotFound, http.StatusNotFound},
		{sessions.ErrAccessDenied, http.StatusForbidden},
		{sessions.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := post(newRouter(&fakeService{err: tt.err}), `{"action": "up"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
