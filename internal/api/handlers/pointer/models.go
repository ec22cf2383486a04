package pointer

import "github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"

// PointerRequest HTTP request model
type PointerRequest struct {
	Action         string  `json:"action"`
	ResourceID     string  `json:"resourceId,omitempty"`
	DateKey        string  `json:"dateKey,omitempty"` // "2025-03-01"
	ReservationID  string  `json:"reservationId,omitempty"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Ctrl           bool    `json:"ctrl,omitempty"`
	Meta           bool    `json:"meta,omitempty"`
	Shift          bool    `json:"shift,omitempty"`
	InsideSelected bool    `json:"insideSelected,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *PointerRequest) ToServiceRequest(userID int64, sessionID string) *models.PointerRequest {
	return &models.PointerRequest{
		UserID:         userID,
		SessionID:      sessionID,
		Action:         r.Action,
		ResourceID:     r.ResourceID,
		DateKey:        r.DateKey,
		ReservationID:  r.ReservationID,
		X:              r.X,
		Y:              r.Y,
		Ctrl:           r.Ctrl,
		Meta:           r.Meta,
		Shift:          r.Shift,
		InsideSelected: r.InsideSelected,
	}
}
