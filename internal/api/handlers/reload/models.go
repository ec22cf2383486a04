package reload

import "github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"

// ReloadRequest HTTP request model
type ReloadRequest struct {
	All bool `json:"all,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReloadRequest) ToServiceRequest(userID int64, sessionID string) *models.ReloadRequest {
	return &models.ReloadRequest{
		UserID:    userID,
		SessionID: sessionID,
		All:       r.All,
	}
}
