package viewport

import "errors"

var (
	// ErrUnknownPane возвращается для неизвестного имени панели
	ErrUnknownPane = errors.New("viewport: unknown pane")
)
