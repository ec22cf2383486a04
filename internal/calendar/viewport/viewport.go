// Package viewport синхронизирует прокрутку панелей календаря.
//
// Вертикально связаны список автомобилей и тело сетки, горизонтально -
// заголовок месяцев, заголовок периодов и тело сетки. Прокрутка одной
// панели переносится на соседние не более одного раза за кадр.
package viewport

import (
	"sync"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/axis"
)

// Pane прокручиваемая панель
type Pane string

const (
	PaneResources    Pane = "resources"
	PaneGrid         Pane = "grid"
	PaneMonthHeader  Pane = "month-header"
	PanePeriodHeader Pane = "period-header"
)

var (
	verticalPanes   = []Pane{PaneResources, PaneGrid}
	horizontalPanes = []Pane{PaneMonthHeader, PanePeriodHeader, PaneGrid}
)

// ParsePane проверяет имя панели
func ParsePane(s string) (Pane, error) {
	switch p := Pane(s); p {
	case PaneResources, PaneGrid, PaneMonthHeader, PanePeriodHeader:
		return p, nil
	}
	return "", ErrUnknownPane
}

func (p Pane) vertical() bool   { return p == PaneResources || p == PaneGrid }
func (p Pane) horizontal() bool { return p != PaneResources }

// Position смещение прокрутки панели
type Position struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Update новое положение соседней панели, которое нужно применить
type Update struct {
	Pane     Pane     `json:"pane"`
	Position Position `json:"position"`
}

// Sync состояние синхронизации прокрутки
type Sync struct {
	mu        sync.Mutex
	positions map[Pane]Position
	syncing   bool
	scheduler FrameScheduler
}

func NewSync(scheduler FrameScheduler) *Sync {
	return &Sync{
		positions: map[Pane]Position{
			PaneResources:    {},
			PaneGrid:         {},
			PaneMonthHeader:  {},
			PanePeriodHeader: {},
		},
		scheduler: scheduler,
	}
}

// OnScroll обрабатывает прокрутку панели source
//
// Если флаг синхронизации уже поднят, событие считается эхом предыдущего
// переноса: положение запоминается, но дальше не распространяется.
// Иначе флаг поднимается до следующего кадра и соседние панели получают
// новое смещение по своей оси.
func (s *Sync) OnScroll(source Pane, pos Position) []Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions[source] = pos
	if s.syncing {
		return nil
	}

	var updates []Update
	if source.vertical() {
		for _, p := range verticalPanes {
			if p == source {
				continue
			}
			cur := s.positions[p]
			cur.Top = pos.Top
			s.positions[p] = cur
			updates = append(updates, Update{Pane: p, Position: cur})
		}
	}
	if source.horizontal() {
		for _, p := range horizontalPanes {
			if p == source {
				continue
			}
			cur := s.positions[p]
			cur.Left = pos.Left
			s.positions[p] = cur
			updates = append(updates, Update{Pane: p, Position: cur})
		}
	}

	if len(updates) > 0 {
		s.holdLocked()
	}
	return updates
}

// ScrollLeft программно выставляет горизонтальное смещение всем
// горизонтальным панелям
func (s *Sync) ScrollLeft(left float64) []Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	if left < 0 {
		left = 0
	}
	updates := make([]Update, 0, len(horizontalPanes))
	for _, p := range horizontalPanes {
		cur := s.positions[p]
		cur.Left = left
		s.positions[p] = cur
		updates = append(updates, Update{Pane: p, Position: cur})
	}
	s.holdLocked()
	return updates
}

// ScrollTop программно выставляет вертикальное смещение
func (s *Sync) ScrollTop(top float64) []Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	if top < 0 {
		top = 0
	}
	updates := make([]Update, 0, len(verticalPanes))
	for _, p := range verticalPanes {
		cur := s.positions[p]
		cur.Top = top
		s.positions[p] = cur
		updates = append(updates, Update{Pane: p, Position: cur})
	}
	s.holdLocked()
	return updates
}

// CenterOn ставит колонку index по центру окна шириной viewportWidth
func (s *Sync) CenterOn(index int, cellWidth, viewportWidth float64) []Update {
	return s.ScrollLeft(axis.CenterOffset(index, cellWidth, viewportWidth))
}

// Position текущее смещение панели
func (s *Sync) Position(p Pane) Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positions[p]
}

// Syncing поднят ли флаг синхронизации
func (s *Sync) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

// Reset обнуляет положения всех панелей
func (s *Sync) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.positions {
		s.positions[p] = Position{}
	}
}

func (s *Sync) holdLocked() {
	if s.syncing {
		return
	}
	s.syncing = true
	s.scheduler.Schedule(s.release)
}

func (s *Sync) release() {
	s.mu.Lock()
	s.syncing = false
	s.mu.Unlock()
}
