package get_reservation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-FleetCalendar/internal/service/reservations"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/reservations/models"
	"github.com/m04kA/SMC-FleetCalendar/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(_ context.Context, id string) (*models.ReservationDetailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationDetailResponse{ID: id, CustomerName: "Ion"}, nil
}

func serve(svc ReservationService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/reservations/{reservationId}", NewHandler(svc, logger.Nop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"ok", nil, http.StatusOK},
		{"not found", reservations.ErrReservationNotFound, http.StatusNotFound},
		{"invalid", reservations.ErrInvalidInput, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "/api/v1/reservations/42")
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.err == nil {
				assert.Contains(t, rec.Body.String(), `"id":"42"`)
			}
		})
	}
}
