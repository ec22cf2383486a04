package tui

import (
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/selection"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/viewport"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Calendar движок календаря, которым управляет консоль
type Calendar interface {
	Mount(viewportWidth, viewportHeight float64) ([]viewport.Update, error)
	Resize(viewportWidth, viewportHeight float64)
	SetYear(year int) ([]viewport.Update, error)
	SetViewMode(mode domain.ViewMode) ([]viewport.Update, error)
	SetZoom(zoom float64) []viewport.Update
	Reload()
	ScrollBy(dx, dy float64) []viewport.Update
	Animating() bool
	Subscribe(l engine.Listener) func()

	Layout() engine.Layout
	HitTest(x, y float64) engine.Hit
	ResourceAt(y float64) (string, bool)
	ColumnAt(x float64) string
	Selection() selection.Snapshot
	Prefill() (engine.BookingPrefill, error)

	ClickResource(id string, mods selection.Modifiers)
	ClickDate(dateKey string, mods selection.Modifiers) error
	ClickReservation(id string, mods selection.Modifiers)
	ClickCell(resourceID, dateKey string, mods selection.Modifiers) error
	ClickEmpty(mods selection.Modifiers, insideSelected bool) bool
	ClearSelection()
	PointerDown(dateKey string, x float64) error
	PointerMove(dateKey string, x float64) bool
	PointerUp() bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
