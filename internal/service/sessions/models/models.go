package models

import (
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/axis"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/pagination"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/selection"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/viewport"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Действия указателя
const (
	ActionClick            = "click" // клик по координатам сетки
	ActionClickResource    = "click-resource"
	ActionClickDate        = "click-date"
	ActionClickReservation = "click-reservation"
	ActionClickCell        = "click-cell"
	ActionClickEmpty       = "click-empty"
	ActionDown             = "down"
	ActionMove             = "move"
	ActionUp               = "up"
	ActionClear            = "clear"
)

// Request модели

// CreateSessionRequest запрос на открытие календаря
type CreateSessionRequest struct {
	UserID         int64   `json:"userId"`
	Year           int     `json:"year,omitempty"`
	ViewMode       string  `json:"viewMode,omitempty"`
	Zoom           float64 `json:"zoom,omitempty"`
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// ScrollRequest прокрутка одной из панелей
type ScrollRequest struct {
	UserID    int64   `json:"userId"`
	SessionID string  `json:"sessionId"`
	Pane      string  `json:"pane"`
	Left      float64 `json:"left"`
	Top       float64 `json:"top"`
}

// PointerRequest событие указателя
// Для click заполняются X и Y, для down/move - DateKey или X
type PointerRequest struct {
	UserID         int64   `json:"userId"`
	SessionID      string  `json:"sessionId"`
	Action         string  `json:"action"`
	ResourceID     string  `json:"resourceId,omitempty"`
	DateKey        string  `json:"dateKey,omitempty"`
	ReservationID  string  `json:"reservationId,omitempty"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Ctrl           bool    `json:"ctrl,omitempty"`
	Meta           bool    `json:"meta,omitempty"`
	Shift          bool    `json:"shift,omitempty"`
	InsideSelected bool    `json:"insideSelected,omitempty"`
}

// Modifiers модификаторы клика
func (r *PointerRequest) Modifiers() selection.Modifiers {
	return selection.Modifiers{Ctrl: r.Ctrl, Meta: r.Meta, Shift: r.Shift}
}

// UpdateViewRequest смена года, режима, масштаба или размера окна
type UpdateViewRequest struct {
	UserID         int64    `json:"userId"`
	SessionID      string   `json:"sessionId"`
	Year           *int     `json:"year,omitempty"`
	ViewMode       *string  `json:"viewMode,omitempty"`
	Zoom           *float64 `json:"zoom,omitempty"`
	ViewportWidth  *float64 `json:"viewportWidth,omitempty"`
	ViewportHeight *float64 `json:"viewportHeight,omitempty"`
}

// ReloadRequest перезагрузка после сохранения во внешней форме
type ReloadRequest struct {
	UserID    int64  `json:"userId"`
	SessionID string `json:"sessionId"`
	All       bool   `json:"all,omitempty"` // вместе с автомобилями
}

// Response модели

// SessionResponse открытая сессия
type SessionResponse struct {
	SessionID string            `json:"sessionId"`
	ExpiresAt string            `json:"expiresAt"`
	Updates   []viewport.Update `json:"updates"`
}

// ScrollResponse положения панелей, которые клиент должен применить
type ScrollResponse struct {
	Updates []viewport.Update `json:"updates"`
}

// PointerResponse результат события указателя
type PointerResponse struct {
	Handled   bool              `json:"handled"`
	Hit       *HitResponse      `json:"hit,omitempty"`
	Selection SelectionResponse `json:"selection"`
}

// HitResponse во что попал клик по координатам
type HitResponse struct {
	Kind          string `json:"kind"`
	ResourceID    string `json:"resourceId,omitempty"`
	DateKey       string `json:"dateKey,omitempty"`
	ReservationID string `json:"reservationId,omitempty"`
}

// SelectionResponse выбор, заготовка новой брони и открытая бронь
type SelectionResponse struct {
	Selection selection.Snapshot         `json:"selection"`
	Prefill   *engine.BookingPrefill     `json:"prefill,omitempty"`
	Opened    *ReservationDetailResponse `json:"openedReservation,omitempty"`
}

// ResourceResponse автомобиль
type ResourceResponse struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Plate        string `json:"plate,omitempty"`
	Image        string `json:"image,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Fuel         string `json:"fuel,omitempty"`
	Year         int    `json:"year,omitempty"`
	Type         string `json:"type,omitempty"`
	Color        string `json:"color,omitempty"`
}

// RowResponse строка автомобиля
type RowResponse struct {
	Resource     ResourceResponse `json:"resource"`
	Top          float64          `json:"top"`
	Height       float64          `json:"height"`
	TargetHeight float64          `json:"targetHeight"`
	LaneCount    int              `json:"laneCount"`
	Selected     bool             `json:"selected"`
	Bars         []engine.BarView `json:"bars"`
}

// LayoutResponse модель отрисовки календаря
type LayoutResponse struct {
	SessionID      string                              `json:"sessionId"`
	Version        uint64                              `json:"version"`
	Year           int                                 `json:"year"`
	ViewMode       string                              `json:"viewMode"`
	Granularity    axis.Granularity                    `json:"granularity"`
	Zoom           float64                             `json:"zoom"`
	CellWidth      float64                             `json:"cellWidth"`
	TotalWidth     float64                             `json:"totalWidth"`
	TotalHeight    float64                             `json:"totalHeight"`
	Columns        []engine.Column                     `json:"columns"`
	Months         []engine.MonthHeader                `json:"months"`
	Rows           []RowResponse                       `json:"rows"`
	ResourcePaging pagination.ResourceStatus           `json:"resourcePaging"`
	BookingPaging  pagination.BookingStatus            `json:"bookingPaging"`
	Scroll         map[viewport.Pane]viewport.Position `json:"scroll"`
	Animating      bool                                `json:"animating"`
}

// ReservationDetailResponse карточка бронирования для внешней формы
type ReservationDetailResponse struct {
	ID            string                 `json:"id"`
	BookingNumber string                 `json:"bookingNumber,omitempty"`
	ResourceID    string                 `json:"carId"`
	ResourceName  string                 `json:"carName,omitempty"`
	ResourcePlate string                 `json:"licensePlate,omitempty"`
	StartDate     string                 `json:"rentalStartDate"` // "2025-03-01T10:00"
	EndDate       string                 `json:"rentalEndDate"`
	CustomerName  string                 `json:"customerName,omitempty"`
	CustomerPhone string                 `json:"customerPhone,omitempty"`
	CustomerEmail string                 `json:"customerEmail,omitempty"`
	Status        string                 `json:"status"`
	TotalDays     int                    `json:"days,omitempty"`
	PricePerDay   float64                `json:"pricePerDay,omitempty"`
	SubTotal      float64                `json:"subTotal,omitempty"`
	Total         float64                `json:"total,omitempty"`
	Note          string                 `json:"note,omitempty"`
	ServiceIDs    []int64                `json:"serviceIds,omitempty"`
	Raw           map[string]interface{} `json:"raw,omitempty"`
}

// FromDomainResource конвертирует domain.Resource в ResourceResponse
func FromDomainResource(r domain.Resource) ResourceResponse {
	return ResourceResponse{
		ID:           r.ID,
		Label:        r.Label,
		Plate:        r.Plate,
		Image:        r.Image,
		Transmission: r.Transmission,
		Fuel:         r.Fuel,
		Year:         r.Year,
		Type:         r.Type,
		Color:        r.Color,
	}
}

// FromLayout конвертирует модель движка в ответ
func FromLayout(sessionID string, version uint64, l engine.Layout) *LayoutResponse {
	rows := make([]RowResponse, 0, len(l.Rows))
	for _, row := range l.Rows {
		rows = append(rows, RowResponse{
			Resource:     FromDomainResource(row.Resource),
			Top:          row.Top,
			Height:       row.Height,
			TargetHeight: row.TargetHeight,
			LaneCount:    row.LaneCount,
			Selected:     row.Selected,
			Bars:         row.Bars,
		})
	}

	return &LayoutResponse{
		SessionID:      sessionID,
		Version:        version,
		Year:           l.Year,
		ViewMode:       string(l.ViewMode),
		Granularity:    l.Granularity,
		Zoom:           l.Zoom,
		CellWidth:      l.CellWidth,
		TotalWidth:     l.TotalWidth,
		TotalHeight:    l.TotalHeight,
		Columns:        l.Columns,
		Months:         l.Months,
		Rows:           rows,
		ResourcePaging: l.Resources,
		BookingPaging:  l.Bookings,
		Scroll:         l.Scroll,
		Animating:      l.Animating,
	}
}

// FromDomainDetail конвертирует карточку бронирования; nil остается nil
func FromDomainDetail(d *domain.ReservationDetail) *ReservationDetailResponse {
	if d == nil {
		return nil
	}
	return &ReservationDetailResponse{
		ID:            d.ID,
		BookingNumber: d.BookingNumber,
		ResourceID:    d.ResourceID,
		ResourceName:  d.ResourceName,
		ResourcePlate: d.ResourcePlate,
		StartDate:     d.Start.Format(domain.PrefillFormat),
		EndDate:       d.End.Format(domain.PrefillFormat),
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		CustomerEmail: d.CustomerEmail,
		Status:        string(d.Status),
		TotalDays:     d.TotalDays,
		PricePerDay:   d.PricePerDay,
		SubTotal:      d.SubTotal,
		Total:         d.Total,
		Note:          d.Note,
		ServiceIDs:    d.ServiceIDs,
		Raw:           d.Raw,
	}
}

// FromHit конвертирует попадание указателя
func FromHit(h engine.Hit) *HitResponse {
	return &HitResponse{
		Kind:          string(h.Kind),
		ResourceID:    h.ResourceID,
		DateKey:       h.DateKey,
		ReservationID: h.ReservationID,
	}
}
