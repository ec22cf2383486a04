package fleetservice

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Форматы дат, которые встречаются в ответах сервиса парка
var backendLayouts = []string{
	domain.DateTimeFormat,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	domain.DateFormat,
}

func parseBackendTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", domain.ErrInvalidDates)
	}
	for _, layout := range backendLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDates, s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c Car) toDomain() (domain.Resource, error) {
	r := domain.Resource{
		ID:           string(c.ID),
		Label:        c.Name,
		Plate:        c.LicensePlate,
		Image:        firstNonEmpty(c.ImagePreview, c.Image),
		Transmission: firstNonEmpty(string(c.Transmission), c.TransmissionName),
		Fuel:         firstNonEmpty(string(c.Fuel), c.FuelName),
		Year:         c.Year.Int(),
		Type:         string(c.Type),
		Color:        c.Color,
	}
	if err := r.Validate(); err != nil {
		return domain.Resource{}, err
	}
	return r, nil
}

func (b Booking) toDomain() (domain.Reservation, error) {
	start, err := parseBackendTime(b.RentalStartDate)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("booking %s start: %w", b.ID, err)
	}
	end, err := parseBackendTime(b.RentalEndDate)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("booking %s end: %w", b.ID, err)
	}

	r := domain.Reservation{
		ID:            string(b.ID),
		BookingNumber: b.BookingNumber,
		ResourceID:    string(b.CarID),
		Start:         start,
		End:           end,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		Status:        domain.StatusFromBackend(b.Status),
		TotalDays:     b.Days,
	}
	if err := r.Validate(); err != nil {
		return domain.Reservation{}, err
	}
	return r, nil
}

func (i BookingInfo) toDomain(raw json.RawMessage) (*domain.ReservationDetail, error) {
	r, err := i.Booking.toDomain()
	if err != nil {
		return nil, err
	}

	plate := i.LicensePlate
	if i.Car != nil && i.Car.LicensePlate != "" {
		plate = i.Car.LicensePlate
	}

	serviceIDs := i.ServiceIDs
	if len(serviceIDs) == 0 {
		for _, s := range i.Services {
			serviceIDs = append(serviceIDs, s.ID)
		}
	}

	detail := &domain.ReservationDetail{
		Reservation:   r,
		ResourceName:  i.CarName,
		ResourcePlate: plate,
		PricePerDay:   i.PricePerDay,
		SubTotal:      i.SubTotal,
		Total:         i.Total,
		Note:          i.Note,
		ServiceIDs:    serviceIDs,
	}
	// неинтерпретируемые поля уходят во внешнюю форму как есть
	if err := json.Unmarshal(raw, &detail.Raw); err != nil {
		detail.Raw = nil
	}
	return detail, nil
}

// mapCars переводит страницу автомобилей, отбрасывая битые записи по одной
func (c *Client) mapCars(raw []json.RawMessage) []domain.Resource {
	out := make([]domain.Resource, 0, len(raw))
	for i, msg := range raw {
		var car Car
		if err := json.Unmarshal(msg, &car); err != nil {
			c.log.Warn("fleetservice: dropped car #%d: %v", i, err)
			continue
		}
		r, err := car.toDomain()
		if err != nil {
			c.log.Warn("fleetservice: dropped car #%d: %v", i, err)
			continue
		}
		out = append(out, r)
	}
	return out
}

// mapBookings переводит страницу бронирований, отбрасывая битые записи по одной
func (c *Client) mapBookings(raw []json.RawMessage) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(raw))
	for i, msg := range raw {
		var b Booking
		if err := json.Unmarshal(msg, &b); err != nil {
			c.log.Warn("fleetservice: dropped booking #%d: %v", i, err)
			continue
		}
		r, err := b.toDomain()
		if err != nil {
			c.log.Warn("fleetservice: dropped booking #%d: %v", i, err)
			continue
		}
		out = append(out, r)
	}
	return out
}
