package axis

import "errors"

var (
	// ErrInvalidGranularity возвращается для неизвестной гранулярности
	ErrInvalidGranularity = errors.New("axis: invalid granularity")

	// ErrInvalidYear возвращается для года вне поддерживаемого диапазона
	ErrInvalidYear = errors.New("axis: invalid year")
)
