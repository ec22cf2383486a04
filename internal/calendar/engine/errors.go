package engine

import "errors"

var (
	// ErrNotMounted операция требует предварительного Mount
	ErrNotMounted = errors.New("engine: not mounted")

	// ErrClosed движок уже закрыт
	ErrClosed = errors.New("engine: closed")
)
