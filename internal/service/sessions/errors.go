package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrTooManySessions возвращается при превышении лимита сессий пользователя
	ErrTooManySessions = errors.New("too many sessions")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
