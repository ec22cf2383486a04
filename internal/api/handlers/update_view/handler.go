package update_view

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-FleetCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "календарь не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidView        = "некорректный год, режим или масштаб"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/calendar/sessions/{sessionId}/view
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /calendar/sessions/{id}/view - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateViewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Empty() {
		h.logger.Warn("PUT /calendar/sessions/{id}/view - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateView(r.Context(), req.ToServiceRequest(userID, sessionID))
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PUT /calendar/sessions/{id}/view - Invalid view: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidView)

		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PUT /calendar/sessions/{id}/view - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PUT /calendar/sessions/{id}/view - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /calendar/sessions/{id}/view - Failed to update view: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /calendar/sessions/{id}/view - View updated: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
