package get_resource_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetCalendar/internal/service/reservations"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/reservations/models"
	"github.com/m04kA/SMC-FleetCalendar/pkg/logger"
)

type fakeService struct {
	got *models.GetResourceReservationsRequest
	err error
}

func (f *fakeService) GetResourceReservations(_ context.Context, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationListResponse{ResourceID: req.ResourceID, Year: req.Year, Reservations: []models.ReservationResponse{}}, nil
}

func serve(svc ReservationService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/resources/{resourceId}/reservations", NewHandler(svc, logger.Nop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/resources/7/reservations?year=2024&status=reserved,%20completed")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, "7", svc.got.ResourceID)
	assert.Equal(t, 2024, svc.got.Year)
	assert.Equal(t, []string{"reserved", "completed"}, svc.got.Statuses)
}

func TestHandle_BadYear(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/resources/7/reservations?year=next")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandle_InvalidInput(t *testing.T) {
	rec := serve(&fakeService{err: reservations.ErrInvalidInput}, "/api/v1/resources/7/reservations?year=1900")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToServiceRequest_Defaults(t *testing.T) {
	req, err := ToServiceRequest("7", "", "", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2026, req.Year)
	assert.Empty(t, req.Statuses)
}
