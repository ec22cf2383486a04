package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/viewport"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
	"github.com/m04kA/SMC-FleetCalendar/pkg/logger"
)

var errNoReservation = errors.New("reservation not found")

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

type staticSource struct {
	resources    []domain.Resource
	reservations []domain.Reservation
}

func (s *staticSource) ListResources(_ context.Context, page, _ int) (domain.Page[domain.Resource], error) {
	if page > 1 {
		return domain.NewPage[domain.Resource](nil), nil
	}
	return domain.NewPage(s.resources), nil
}

func (s *staticSource) ListReservations(_ context.Context, _ domain.ReservationQuery, page, _ int) (domain.Page[domain.Reservation], error) {
	if page > 1 {
		return domain.NewPage[domain.Reservation](nil), nil
	}
	return domain.NewPage(s.reservations), nil
}

func (s *staticSource) GetReservationDetail(_ context.Context, id string) (*domain.ReservationDetail, error) {
	for _, r := range s.reservations {
		if r.ID == id {
			return &domain.ReservationDetail{Reservation: r}, nil
		}
	}
	return nil, errNoReservation
}

func newTestModel(t *testing.T) (*Model, *engine.Engine, *viewport.ManualScheduler) {
	t.Helper()

	src := &staticSource{
		resources: []domain.Resource{
			{ID: "r1", Label: "Dacia Logan", Plate: "B-101-AAA"},
			{ID: "r2", Label: "VW Golf", Plate: "B-202-BBB"},
		},
		reservations: []domain.Reservation{
			{ID: "b1", ResourceID: "r1", CustomerName: "Ion Popescu", Status: domain.StatusConfirmed,
				Start: time.Date(2025, time.June, 14, 10, 0, 0, 0, time.UTC), End: time.Date(2025, time.June, 17, 10, 0, 0, 0, time.UTC)},
		},
	}

	frames := viewport.NewManualScheduler()
	cfg := engine.DefaultConfig(fixedNow)
	cfg.FetchTimeout = time.Second
	e, err := engine.New(src, cfg, logger.Nop(),
		engine.WithRunner(func(fn func()) { fn() }),
		engine.WithScheduler(frames),
		engine.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	t.Cleanup(e.Close)

	m := New(e, logger.Nop())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	e.Wait()
	frames.Tick()
	return m, e, frames
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestView_RendersHeadersAndRows(t *testing.T) {
	m, _, _ := newTestModel(t)

	out := m.View()
	assert.Contains(t, out, "Календарь 2025")
	assert.Contains(t, out, "June")
	assert.Contains(t, out, "Dacia Logan")
	assert.Contains(t, out, "B-202-BBB")
	assert.Contains(t, out, "Ion")
}

func TestView_BeforeMount(t *testing.T) {
	m := &Model{}
	assert.Equal(t, "Загрузка календаря...", m.View())
}

func TestKeys_YearViewZoom(t *testing.T) {
	m, e, _ := newTestModel(t)

	m.Update(key("y"))
	assert.Equal(t, 2024, e.Layout().Year)
	m.Update(key("Y"))
	m.Update(key("Y"))
	assert.Equal(t, 2026, e.Layout().Year)

	m.Update(key("v"))
	assert.Equal(t, domain.ViewQuarter, e.Layout().ViewMode)
	m.Update(key("v"))
	assert.Equal(t, domain.ViewMonth, e.Layout().ViewMode)
	m.Update(key("v"))
	assert.Equal(t, domain.ViewYear, e.Layout().ViewMode)

	m.Update(key("+"))
	assert.InDelta(t, 1.25, e.Layout().Zoom, 1e-9)
	m.Update(key("-"))
	assert.InDelta(t, 1.0, e.Layout().Zoom, 1e-9)
}

func TestKeys_ScrollDown(t *testing.T) {
	m, e, frames := newTestModel(t)
	before := e.Layout().Scroll[viewport.PaneGrid]

	m.Update(key("l"))
	frames.Tick()
	after := e.Layout().Scroll[viewport.PaneGrid]
	assert.Equal(t, before.Left+scrollCols*cellPx, after.Left)
}

func TestMouse_ClickResourceAndPrefill(t *testing.T) {
	m, e, _ := newTestModel(t)

	m.Update(mouse(tea.MouseActionPress, 2, headerLines))
	m.Update(mouse(tea.MouseActionRelease, 2, headerLines))
	assert.Equal(t, []string{"r1"}, e.Selection().Resources)

	m.Update(key("a"))
	assert.Contains(t, m.status, "Dacia Logan")
	assert.Contains(t, m.status, "B-101-AAA")

	m.Update(key("esc"))
	assert.True(t, e.Selection().Empty())
	assert.Empty(t, m.status)
}

func TestMouse_HeaderClickAndDrag(t *testing.T) {
	m, e, _ := newTestModel(t)
	scroll := e.Layout().Scroll[viewport.PaneGrid]

	x := labelWidth + 10
	m.Update(mouse(tea.MouseActionPress, x, linePeriod))
	m.Update(mouse(tea.MouseActionRelease, x, linePeriod))
	assert.Equal(t, []string{e.ColumnAt(contentX(x, scroll))}, e.Selection().Dates)

	m.Update(mouse(tea.MouseActionPress, x, linePeriod))
	m.Update(mouse(tea.MouseActionMotion, x+20, linePeriod))
	m.Update(mouse(tea.MouseActionRelease, x+20, linePeriod))
	assert.Greater(t, len(e.Selection().Dates), 1)
}

func TestMouse_WheelScrolls(t *testing.T) {
	m, e, _ := newTestModel(t)
	before := e.Layout().Scroll[viewport.PaneGrid]

	m.Update(tea.MouseMsg{X: 50, Y: 10, Button: tea.MouseButtonWheelDown, Shift: true, Action: tea.MouseActionPress})
	after := e.Layout().Scroll[viewport.PaneGrid]
	assert.Greater(t, after.Left, before.Left)
}

func TestEvents_StatusLine(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(eventMsg(engine.Event{
		Kind: engine.EventReservationOpened,
		Reservation: &domain.ReservationDetail{Reservation: domain.Reservation{
			BookingNumber: "BK-1", CustomerName: "Ion",
			Start: time.Date(2025, time.June, 14, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, time.June, 17, 10, 0, 0, 0, time.UTC),
		}},
	}))
	assert.Equal(t, "Бронь BK-1: Ion, 2025-06-14 → 2025-06-17", m.status)
}

func TestFrame_StopsWhenRowsSettled(t *testing.T) {
	m, e, _ := newTestModel(t)
	require.False(t, e.Animating())

	m.animating = true
	_, cmd := m.Update(frameMsg(fixedNow))
	assert.Nil(t, cmd)
	assert.False(t, m.animating)
}

func TestFitLabel(t *testing.T) {
	assert.Equal(t, "Jun 15", fitLabel("Jun 15", 6))
	assert.Equal(t, "15", fitLabel("Jun 15", 3))
	assert.Equal(t, "Ju", fitLabel("Jun", 2))
}
