package models

import (
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
	sessionModels "github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"
)

// Request модели

// GetResourceReservationsRequest бронирования одного автомобиля за год
type GetResourceReservationsRequest struct {
	ResourceID string   `json:"resourceId"`
	Year       int      `json:"year"`
	Statuses   []string `json:"statuses,omitempty"` // пусто - фильтр календаря по умолчанию
}

// Response модели

// ReservationDetailResponse карточка бронирования, как ее получает форма редактирования
type ReservationDetailResponse = sessionModels.ReservationDetailResponse

// ReservationResponse бронирование в списке
type ReservationResponse struct {
	ID            string `json:"id"`
	BookingNumber string `json:"bookingNumber,omitempty"`
	ResourceID    string `json:"carId"`
	StartDate     string `json:"rentalStartDate"`
	EndDate       string `json:"rentalEndDate"`
	LastDay       string `json:"lastOccupiedDay"`
	CustomerName  string `json:"customerName,omitempty"`
	Status        string `json:"status"`
	TotalDays     int    `json:"days,omitempty"`
}

// ReservationListResponse список бронирований автомобиля
type ReservationListResponse struct {
	ResourceID   string                `json:"carId"`
	Year         int                   `json:"year"`
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		BookingNumber: r.BookingNumber,
		ResourceID:    r.ResourceID,
		StartDate:     r.Start.Format(domain.PrefillFormat),
		EndDate:       r.End.Format(domain.PrefillFormat),
		LastDay:       r.LastOccupiedDay().Format(domain.DateFormat),
		CustomerName:  r.CustomerName,
		Status:        string(r.Status),
		TotalDays:     r.TotalDays,
	}
}

// FromDomainDetail конвертирует domain.ReservationDetail в ReservationDetailResponse
func FromDomainDetail(d *domain.ReservationDetail) *ReservationDetailResponse {
	return sessionModels.FromDomainDetail(d)
}
