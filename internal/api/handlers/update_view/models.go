package update_view

import "github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"

// UpdateViewRequest HTTP request model
// Незаполненные поля не меняются
type UpdateViewRequest struct {
	Year           *int     `json:"year,omitempty"`
	ViewMode       *string  `json:"viewMode,omitempty"`
	Zoom           *float64 `json:"zoom,omitempty"`
	ViewportWidth  *float64 `json:"viewportWidth,omitempty"`
	ViewportHeight *float64 `json:"viewportHeight,omitempty"`
}

// Empty ни одно поле не передано
func (r *UpdateViewRequest) Empty() bool {
	return r.Year == nil && r.ViewMode == nil && r.Zoom == nil && r.ViewportWidth == nil && r.ViewportHeight == nil
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateViewRequest) ToServiceRequest(userID int64, sessionID string) *models.UpdateViewRequest {
	return &models.UpdateViewRequest{
		UserID:         userID,
		SessionID:      sessionID,
		Year:           r.Year,
		ViewMode:       r.ViewMode,
		Zoom:           r.Zoom,
		ViewportWidth:  r.ViewportWidth,
		ViewportHeight: r.ViewportHeight,
	}
}
