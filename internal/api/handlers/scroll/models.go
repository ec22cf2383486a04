package scroll

import "github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"

// ScrollRequest HTTP request model
type ScrollRequest struct {
	Pane string  `json:"pane"` // resources | grid | month-header | period-header
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ScrollRequest) ToServiceRequest(userID int64, sessionID string) *models.ScrollRequest {
	return &models.ScrollRequest{
		UserID:    userID,
		SessionID: sessionID,
		Pane:      r.Pane,
		Left:      r.Left,
		Top:       r.Top,
	}
}
