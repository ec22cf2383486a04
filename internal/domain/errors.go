package domain

import "errors"

var (
	// ErrMissingID возвращается для записи без идентификатора
	ErrMissingID = errors.New("domain: missing identifier")

	// ErrInvalidDates возвращается для записи с неразбираемыми или перепутанными датами
	ErrInvalidDates = errors.New("domain: invalid dates")

	// ErrInvalidViewMode возвращается для неизвестного режима отображения
	ErrInvalidViewMode = errors.New("domain: invalid view mode")
)
