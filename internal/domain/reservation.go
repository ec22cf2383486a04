package domain

import (
	"fmt"
	"time"
)

// ReservationStatus represents the display status of a reservation on the calendar
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusPending   ReservationStatus = "pending"
	StatusCompleted ReservationStatus = "completed"
)

// Statuses used by the fleet backend
const (
	BackendStatusReserved  = "reserved"
	BackendStatusCompleted = "completed"
)

// DefaultStatusFilter is the backend status filter used by the calendar
var DefaultStatusFilter = []string{BackendStatusReserved, BackendStatusCompleted}

// StatusFromBackend maps a backend booking status onto a calendar status
func StatusFromBackend(status string) ReservationStatus {
	switch status {
	case BackendStatusReserved:
		return StatusConfirmed
	case BackendStatusCompleted:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Reservation is a booking of one resource over [Start, End]
// End is the return (checkout) date
type Reservation struct {
	ID            string
	BookingNumber string
	ResourceID    string
	Start         time.Time
	End           time.Time
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Status        ReservationStatus
	TotalDays     int
}

// Validate returns an error when the record cannot be placed on the calendar
func (r *Reservation) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: reservation id", ErrMissingID)
	}
	if r.ResourceID == "" {
		return fmt.Errorf("%w: reservation %s has no resource", ErrMissingID, r.ID)
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: reservation %s", ErrInvalidDates, r.ID)
	}
	if DateOnly(r.End).Before(DateOnly(r.Start)) {
		return fmt.Errorf("%w: reservation %s ends before it starts", ErrInvalidDates, r.ID)
	}
	return nil
}

// FirstDay returns the pickup day
func (r *Reservation) FirstDay() time.Time {
	return DateOnly(r.Start)
}

// LastOccupiedDay returns the last day the vehicle is out
// The checkout day itself is free for the next pickup, except for same-day rentals
func (r *Reservation) LastOccupiedDay() time.Time {
	start := DateOnly(r.Start)
	last := DateOnly(r.End).AddDate(0, 0, -1)
	if last.Before(start) {
		return start
	}
	return last
}

// ReservationDetail is the full record consumed by the external edit form
type ReservationDetail struct {
	Reservation

	ResourceName  string
	ResourcePlate string
	PricePerDay   float64
	SubTotal      float64
	Total         float64
	Note          string
	ServiceIDs    []int64

	// Raw keeps fields the calendar does not interpret
	Raw map[string]interface{}
}

// ReservationQuery filter for listing reservations of one calendar year
type ReservationQuery struct {
	YearStart time.Time
	YearEnd   time.Time
	Statuses  []string
}

// YearQuery builds the query covering Jan 1 - Dec 31 of the year
func YearQuery(year int, statuses []string) ReservationQuery {
	if len(statuses) == 0 {
		statuses = DefaultStatusFilter
	}
	return ReservationQuery{
		YearStart: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		YearEnd:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Statuses:  statuses,
	}
}
