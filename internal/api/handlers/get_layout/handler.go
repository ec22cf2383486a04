package get_layout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-FleetCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "календарь не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/calendar/sessions/{sessionId}/layout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendar/sessions/{id}/layout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	layout, err := h.service.GetLayout(r.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /calendar/sessions/{id}/layout - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /calendar/sessions/{id}/layout - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /calendar/sessions/{id}/layout - Failed to build layout: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar/sessions/{id}/layout - Layout built: session_id=%s, rows=%d, version=%d",
		sessionID, len(layout.Rows), layout.Version)
	handlers.RespondJSON(w, http.StatusOK, layout)
}
