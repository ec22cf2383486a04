package create_session

import "github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	Year           int     `json:"year,omitempty"`
	ViewMode       string  `json:"viewMode,omitempty"` // year | quarter | month
	Zoom           float64 `json:"zoom,omitempty"`
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSessionRequest) ToServiceRequest(userID int64) *models.CreateSessionRequest {
	return &models.CreateSessionRequest{
		UserID:         userID,
		Year:           r.Year,
		ViewMode:       r.ViewMode,
		Zoom:           r.Zoom,
		ViewportWidth:  r.ViewportWidth,
		ViewportHeight: r.ViewportHeight,
	}
}
