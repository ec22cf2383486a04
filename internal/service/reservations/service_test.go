package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
	fleetServiceClient "github.com/m04kA/SMC-FleetCalendar/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/reservations/models"
	"github.com/m04kA/SMC-FleetCalendar/pkg/logger"
)

type fakeSource struct {
	reservations []domain.Reservation
	details      map[string]*domain.ReservationDetail
	detailErr    error
	listErr      error
	pages        []int
}

func (f *fakeSource) ListReservations(_ context.Context, _ domain.ReservationQuery, page, pageSize int) (domain.Page[domain.Reservation], error) {
	if f.listErr != nil {
		return domain.Page[domain.Reservation]{}, f.listErr
	}
	f.pages = append(f.pages, page)
	start := (page - 1) * pageSize
	if start >= len(f.reservations) {
		return domain.NewPage[domain.Reservation](nil), nil
	}
	end := min(start+pageSize, len(f.reservations))
	return domain.NewPage(f.reservations[start:end]), nil
}

func (f *fakeSource) GetReservationDetail(_ context.Context, id string) (*domain.ReservationDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d, ok := f.details[id]
	if !ok {
		return nil, fleetServiceClient.ErrReservationNotFound
	}
	return d, nil
}

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 10, 0, 0, 0, time.UTC)
}

func reservation(id, car string, start, end time.Time) domain.Reservation {
	return domain.Reservation{ID: id, ResourceID: car, Start: start, End: end, Status: domain.StatusConfirmed, CustomerName: "Client " + id}
}

func TestGetByID(t *testing.T) {
	src := &fakeSource{details: map[string]*domain.ReservationDetail{
		"42": {Reservation: reservation("42", "7", day(time.May, 1), day(time.May, 4)), ResourceName: "Dacia Logan", Total: 90},
	}}
	svc := NewService(src, 2, logger.Nop())

	got, err := svc.GetByID(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "Dacia Logan", got.ResourceName)
	assert.Equal(t, "2025-05-01T10:00", got.StartDate)
	assert.Equal(t, 90.0, got.Total)

	_, err = svc.GetByID(context.Background(), "404")
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = svc.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	src.detailErr = errors.New("boom")
	_, err = svc.GetByID(context.Background(), "42")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetResourceReservations(t *testing.T) {
	src := &fakeSource{reservations: []domain.Reservation{
		reservation("b3", "7", day(time.June, 1), day(time.June, 3)),
		reservation("b1", "8", day(time.March, 1), day(time.March, 3)),
		reservation("b2", "7", day(time.March, 5), day(time.March, 5)),
		reservation("b3", "7", day(time.June, 1), day(time.June, 3)),
		reservation("b4", "7", day(time.January, 10), day(time.January, 12)),
	}}
	svc := NewService(src, 2, logger.Nop())

	got, err := svc.GetResourceReservations(context.Background(), &models.GetResourceReservationsRequest{ResourceID: "7", Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, src.pages)
	require.Len(t, got.Reservations, 3)
	assert.Equal(t, "b4", got.Reservations[0].ID)
	assert.Equal(t, "b2", got.Reservations[1].ID)
	assert.Equal(t, "2025-03-05", got.Reservations[1].LastDay)
	assert.Equal(t, "b3", got.Reservations[2].ID)
	assert.Equal(t, "2025-06-02", got.Reservations[2].LastDay)
}

func TestGetResourceReservations_Errors(t *testing.T) {
	svc := NewService(&fakeSource{}, 2, logger.Nop())

	_, err := svc.GetResourceReservations(context.Background(), &models.GetResourceReservationsRequest{Year: 2025})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetResourceReservations(context.Background(), &models.GetResourceReservationsRequest{ResourceID: "7", Year: 1900})
	assert.ErrorIs(t, err, ErrInvalidInput)

	failing := NewService(&fakeSource{listErr: errors.New("down")}, 2, logger.Nop())
	_, err = failing.GetResourceReservations(context.Background(), &models.GetResourceReservationsRequest{ResourceID: "7", Year: 2025})
	assert.ErrorIs(t, err, ErrInternal)
}
