package selection

import "errors"

var (
	// ErrUnknownKind возвращается для неизвестного вида элемента
	ErrUnknownKind = errors.New("selection: unknown kind")

	// ErrNothingToPrefill в выборе нет ни автомобиля, ни дат
	ErrNothingToPrefill = errors.New("selection: nothing to prefill")
)
