package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-FleetCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры календаря"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTooManySessions    = "открыто слишком много календарей"
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

// Handle POST /api/v1/calendar/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendar/sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendar/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /calendar/sessions - Invalid params: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, sessions.ErrTooManySessions):
			h.logger.Warn("POST /calendar/sessions - Session limit reached: user_id=%d", userID)
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManySessions)

		default:
			h.logger.Error("POST /calendar/sessions - Failed to open calendar: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendar/sessions - Calendar opened: session_id=%s, user_id=%d", session.SessionID, userID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
