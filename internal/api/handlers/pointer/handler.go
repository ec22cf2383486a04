package pointer

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
	msgInvalidEvent       = "некорректное событие указателя"
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

// Handle POST /api/v1/calendar/sessions/{sessionId}/pointer
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendar/sessions/{id}/pointer - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PointerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendar/sessions/{id}/pointer - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Pointer(r.Context(), req.ToServiceRequest(userID, sessionID))
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /calendar/sessions/{id}/pointer - Invalid event: session_id=%s, action=%s, error=%v",
				sessionID, req.Action, err)
			handlers.RespondBadRequest(w, msgInvalidEvent)

		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /calendar/sessions/{id}/pointer - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("POST /calendar/sessions/{id}/pointer - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /calendar/sessions/{id}/pointer - Failed to handle event: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendar/sessions/{id}/pointer - Event handled: session_id=%s, action=%s, handled=%t",
		sessionID, req.Action, resp.Handled)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
