package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/selection"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/viewport"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Разметка экрана
const (
	labelWidth  = 24 // ширина списка автомобилей с разделителем
	headerLines = 3  // заголовок, месяцы, периоды
	footerLines = 1

	lineMonths = 1
	linePeriod = 2

	zoomStep   = 1.25
	scrollCols = 4
	scrollRows = 2
	eventQueue = 64
)

type area int

const (
	areaNone area = iota
	areaMonths
	areaPeriod
	areaResources
	areaGrid
)

type eventMsg engine.Event

type frameMsg time.Time

type press struct {
	area       area
	hit        engine.Hit
	dateKey    string
	resourceID string
	mods       selection.Modifiers
}

// Model консоль календаря
type Model struct {
	cal    Calendar
	logger Logger

	events      chan engine.Event
	unsubscribe func()

	width   int
	height  int
	mounted bool

	press     *press
	animating bool
	status    string
}

// New создает модель и подписывает ее на уведомления движка
func New(cal Calendar, logger Logger) *Model {
	m := &Model{
		cal:    cal,
		logger: logger,
		events: make(chan engine.Event, eventQueue),
	}
	m.unsubscribe = cal.Subscribe(func(ev engine.Event) {
		select {
		case m.events <- ev:
		default:
		}
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-m.events)
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(viewport.DefaultFrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) startAnimation() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return frameTick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w, h := m.viewportPx()
		if m.mounted {
			m.cal.Resize(w, h)
			return m, nil
		}
		if _, err := m.cal.Mount(w, h); err != nil {
			m.logger.Error("TUI - mount failed: %v", err)
			m.status = fmt.Sprintf("Ошибка: %v", err)
			return m, nil
		}
		m.mounted = true
		return m, m.startAnimation()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case eventMsg:
		m.handleEvent(engine.Event(msg))
		return m, tea.Batch(m.waitForEvent(), m.startAnimation())

	case frameMsg:
		// кадры анимации двигает движок, консоль только перерисовывает
		if m.cal.Animating() {
			return m, frameTick()
		}
		m.animating = false
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.unsubscribe()
		return m, tea.Quit
	case "h", "left":
		m.cal.ScrollBy(-scrollCols*cellPx, 0)
	case "l", "right":
		m.cal.ScrollBy(scrollCols*cellPx, 0)
	case "k", "up":
		m.cal.ScrollBy(0, -scrollRows*linePx)
	case "j", "down":
		m.cal.ScrollBy(0, scrollRows*linePx)
	case "pgup":
		m.cal.ScrollBy(0, -float64(m.gridLines())*linePx)
	case "pgdown":
		m.cal.ScrollBy(0, float64(m.gridLines())*linePx)
	case "y":
		m.setYear(-1)
	case "Y":
		m.setYear(1)
	case "v":
		layout := m.cal.Layout()
		if _, err := m.cal.SetViewMode(nextViewMode(layout.ViewMode)); err != nil {
			m.status = fmt.Sprintf("Ошибка: %v", err)
		}
	case "+", "=":
		m.cal.SetZoom(m.cal.Layout().Zoom * zoomStep)
	case "-":
		m.cal.SetZoom(m.cal.Layout().Zoom / zoomStep)
	case "r":
		m.cal.Reload()
		m.status = "Перезагрузка бронирований"
	case "a":
		m.status = m.prefillStatus()
	case "esc":
		m.cal.ClearSelection()
		m.status = ""
	}
	return m, m.startAnimation()
}

func (m *Model) setYear(delta int) {
	year := m.cal.Layout().Year + delta
	if _, err := m.cal.SetYear(year); err != nil {
		m.status = fmt.Sprintf("Ошибка: %v", err)
		return
	}
	m.status = fmt.Sprintf("Год %d", year)
}

func (m *Model) prefillStatus() string {
	p, err := m.cal.Prefill()
	if err != nil {
		return fmt.Sprintf("Нельзя создать бронь: %v", err)
	}
	parts := []string{"Новая бронь:"}
	if p.ResourceLabel != "" {
		parts = append(parts, p.ResourceLabel)
	}
	if p.ResourcePlate != "" {
		parts = append(parts, "("+p.ResourcePlate+")")
	}
	if p.StartDate != "" {
		parts = append(parts, p.StartDate+" → "+p.EndDate)
	}
	return strings.Join(parts, " ")
}

func (m *Model) handleEvent(ev engine.Event) {
	switch ev.Kind {
	case engine.EventReservationOpened:
		if r := ev.Reservation; r != nil {
			m.status = fmt.Sprintf("Бронь %s: %s, %s → %s", r.BookingNumber, r.CustomerName,
				r.Start.Format(domain.DateFormat), r.End.Format(domain.DateFormat))
		}
	case engine.EventSelectionChanged:
		s := ev.Selection
		if s.Empty() {
			return
		}
		m.status = fmt.Sprintf("Выбрано: авто %d, дат %d, броней %d, ячеек %d",
			len(s.Resources), len(s.Dates), len(s.Reservations), len(s.Cells))
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	mods := selection.Modifiers{Ctrl: msg.Ctrl, Meta: msg.Alt, Shift: msg.Shift}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			m.cal.ScrollBy(-scrollCols*cellPx, 0)
		} else {
			m.cal.ScrollBy(0, -scrollRows*linePx)
		}
		return m.startAnimation()
	case tea.MouseButtonWheelDown:
		if msg.Shift {
			m.cal.ScrollBy(scrollCols*cellPx, 0)
		} else {
			m.cal.ScrollBy(0, scrollRows*linePx)
		}
		return m.startAnimation()
	case tea.MouseButtonWheelLeft:
		m.cal.ScrollBy(-scrollCols*cellPx, 0)
		return m.startAnimation()
	case tea.MouseButtonWheelRight:
		m.cal.ScrollBy(scrollCols*cellPx, 0)
		return m.startAnimation()
	}

	where := m.areaAt(msg.X, msg.Y)
	scroll := m.cal.Layout().Scroll[viewport.PaneGrid]
	cx, cy := contentX(msg.X, scroll), contentY(msg.Y, scroll)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		p := &press{area: where, mods: mods}
		switch where {
		case areaPeriod:
			p.dateKey = m.cal.ColumnAt(cx)
			m.pointerDown(p.dateKey, cx)
		case areaGrid:
			p.hit = m.cal.HitTest(cx, cy)
			p.dateKey = p.hit.DateKey
			m.pointerDown(p.dateKey, cx)
		case areaResources:
			p.resourceID, _ = m.cal.ResourceAt(cy)
		}
		m.press = p

	case tea.MouseActionMotion:
		if m.press == nil || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if m.press.area == areaPeriod || m.press.area == areaGrid {
			m.cal.PointerMove(m.cal.ColumnAt(cx), cx)
		}

	case tea.MouseActionRelease:
		p := m.press
		m.press = nil
		if p == nil {
			return nil
		}
		if p.area == areaPeriod || p.area == areaGrid {
			if m.cal.PointerUp() {
				return nil
			}
		}
		m.click(p)
	}
	return m.startAnimation()
}

func (m *Model) pointerDown(dateKey string, x float64) {
	if dateKey == "" {
		return
	}
	if err := m.cal.PointerDown(dateKey, x); err != nil {
		m.logger.Warn("TUI - pointer down on %s: %v", dateKey, err)
	}
}

func (m *Model) click(p *press) {
	var err error
	switch p.area {
	case areaPeriod:
		err = m.cal.ClickDate(p.dateKey, p.mods)
	case areaGrid:
		switch p.hit.Kind {
		case engine.HitReservation:
			m.cal.ClickReservation(p.hit.ReservationID, p.mods)
		case engine.HitCell:
			err = m.cal.ClickCell(p.hit.ResourceID, p.hit.DateKey, p.mods)
		default:
			m.cal.ClickEmpty(p.mods, false)
		}
	case areaResources:
		if p.resourceID == "" {
			m.cal.ClickEmpty(p.mods, false)
			return
		}
		m.cal.ClickResource(p.resourceID, p.mods)
	default:
		m.cal.ClickEmpty(p.mods, false)
	}
	if err != nil {
		m.status = fmt.Sprintf("Ошибка: %v", err)
	}
}

func (m *Model) areaAt(x, y int) area {
	switch {
	case y == lineMonths && x >= labelWidth:
		return areaMonths
	case y == linePeriod && x >= labelWidth:
		return areaPeriod
	case y >= headerLines && y < headerLines+m.gridLines():
		if x < labelWidth-1 {
			return areaResources
		}
		if x >= labelWidth {
			return areaGrid
		}
	}
	return areaNone
}

func (m *Model) gridCols() int {
	return max(m.width-labelWidth, 1)
}

func (m *Model) gridLines() int {
	return max(m.height-headerLines-footerLines, 1)
}

// viewportPx размер видимой части сетки в пикселях
func (m *Model) viewportPx() (float64, float64) {
	return float64(m.gridCols()) * cellPx, float64(m.gridLines()) * linePx
}

// contentX координата сетки по центру колонки терминала
func contentX(x int, scroll viewport.Position) float64 {
	return scroll.Left + float64(x-labelWidth)*cellPx + cellPx/2
}

func contentY(y int, scroll viewport.Position) float64 {
	return scroll.Top + float64(y-headerLines)*linePx + linePx/2
}

func nextViewMode(mode domain.ViewMode) domain.ViewMode {
	switch mode {
	case domain.ViewYear:
		return domain.ViewQuarter
	case domain.ViewQuarter:
		return domain.ViewMonth
	default:
		return domain.ViewYear
	}
}
