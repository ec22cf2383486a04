package selection

import (
	"math"
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/axis"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Modifiers зажатые клавиши при клике
type Modifiers struct {
	Ctrl  bool `json:"ctrl"`
	Meta  bool `json:"meta"`
	Shift bool `json:"shift"`
}

// Toggle Ctrl или Cmd
func (m Modifiers) Toggle() bool { return m.Ctrl || m.Meta }

// Any зажат хоть один модификатор
func (m Modifiers) Any() bool { return m.Ctrl || m.Meta || m.Shift }

type dragState struct {
	pending  bool
	active   bool
	startKey string
	startX   float64
	lastKey  string
}

// Machine текущее множество выбора и переходы между его состояниями
// Не потокобезопасен: владелец сериализует вызовы.
type Machine struct {
	set           *Set
	axis          *axis.Axis
	anchor        string // последняя явно выбранная дата
	drag          dragState
	dragThreshold float64
}

func NewMachine(ax *axis.Axis, dragThreshold float64) *Machine {
	if dragThreshold <= 0 {
		dragThreshold = domain.DefaultDragThreshold
	}
	return &Machine{
		set:           NewSet(),
		axis:          ax,
		dragThreshold: dragThreshold,
	}
}

// SetAxis подменяет ось после смены года или режима
// Незавершенное перетаскивание сбрасывается
func (m *Machine) SetAxis(ax *axis.Axis) {
	m.axis = ax
	m.drag = dragState{}
}

// ClickResource клик по автомобилю в списке
func (m *Machine) ClickResource(id string, mods Modifiers) {
	item := Resource(id)
	switch {
	case mods.Toggle():
		m.set.Toggle(item)
	case mods.Shift:
		// даты остаются, все остальное заменяется автомобилем
		dates := m.set.OfKind(KindDate)
		m.set.Clear()
		for _, d := range dates {
			m.set.Add(d)
		}
		m.set.Add(item)
	default:
		m.set.Clear()
		m.set.Add(item)
	}
}

// ClickDate клик по заголовку даты
func (m *Machine) ClickDate(key string, mods Modifiers) error {
	if _, err := domain.ParseDateKey(key); err != nil {
		return err
	}

	switch {
	case mods.Shift && m.anchor != "":
		m.set.ReplaceKind(KindDate, m.dateRange(m.anchor, key)...)
	case mods.Toggle():
		m.set.Toggle(Date(key))
		m.anchor = key
	default:
		m.set.Clear()
		m.set.Add(Date(key))
		m.anchor = key
	}
	return nil
}

// ClickReservation клик по полосе бронирования
// Возвращает true, если нужно открыть форму редактирования
func (m *Machine) ClickReservation(id string, mods Modifiers) bool {
	item := Reservation(id)
	if mods.Toggle() {
		m.set.Toggle(item)
		return false
	}
	m.set.Clear()
	m.set.Add(item)
	return true
}

// ClickCell клик по пустой ячейке сетки
// Простой клик выбирает сразу автомобиль, дату и саму ячейку
func (m *Machine) ClickCell(resourceID, dateKey string, mods Modifiers) error {
	if _, err := domain.ParseDateKey(dateKey); err != nil {
		return err
	}

	cell := Cell(resourceID, dateKey)
	switch {
	case mods.Toggle():
		m.set.Toggle(cell)
	case mods.Shift && m.anchor != "":
		m.set.ReplaceKind(KindResource, Resource(resourceID))
		m.set.ReplaceKind(KindDate, m.dateRange(m.anchor, dateKey)...)
		m.set.ReplaceKind(KindCell, cell)
	default:
		m.set.Clear()
		m.set.Add(Resource(resourceID))
		m.set.Add(Date(dateKey))
		m.set.Add(cell)
		m.anchor = dateKey
	}
	return nil
}

// ClickEmpty клик по пустому полотну
// Выбор очищается только без модификаторов и вне выбранных элементов
func (m *Machine) ClickEmpty(mods Modifiers, insideSelected bool) bool {
	if mods.Any() || insideSelected || m.set.Len() == 0 {
		return false
	}
	m.set.Clear()
	m.anchor = ""
	return true
}

// PointerDown нажатие на заголовке или строке сетки
// Запоминает точку старта, но ничего не выбирает
func (m *Machine) PointerDown(dateKey string, x float64) error {
	if _, err := domain.ParseDateKey(dateKey); err != nil {
		return err
	}
	m.drag = dragState{pending: true, startKey: dateKey, startX: x, lastKey: dateKey}
	return nil
}

// PointerMove движение указателя над колонкой dateKey
// Возвращает true, если выбор дат изменился
func (m *Machine) PointerMove(dateKey string, x float64) bool {
	if !m.drag.pending {
		return false
	}
	if _, err := domain.ParseDateKey(dateKey); err != nil {
		return false
	}

	if !m.drag.active {
		if math.Abs(x-m.drag.startX) <= m.dragThreshold {
			return false
		}
		m.drag.active = true
	} else if dateKey == m.drag.lastKey {
		return false
	}

	m.drag.lastKey = dateKey
	m.set.ReplaceKind(KindDate, m.dateRange(m.drag.startKey, dateKey)...)
	return true
}

// PointerUp отпускание указателя в любом месте окна
// Возвращает true, если это было перетаскивание (клик обрабатывать не нужно)
func (m *Machine) PointerUp() bool {
	wasDrag := m.drag.active
	if wasDrag {
		m.anchor = m.drag.startKey
	}
	m.drag = dragState{}
	return wasDrag
}

// Dragging идет ли активное перетаскивание
func (m *Machine) Dragging() bool { return m.drag.active }

// SeedToday выбирает сегодняшнюю дату, если она попадает в ось
func (m *Machine) SeedToday(today time.Time) bool {
	if m.axis == nil || !m.axis.Contains(today) {
		return false
	}
	key := m.axis.Key(m.axis.IndexOf(today))
	m.set.ReplaceKind(KindDate, Date(key))
	m.anchor = key
	return true
}

// Clear очищает выбор полностью
func (m *Machine) Clear() {
	m.set.Clear()
	m.anchor = ""
	m.drag = dragState{}
}

// Has выбран ли элемент
func (m *Machine) Has(it Item) bool { return m.set.Has(it) }

// Anchor последняя явно выбранная дата
func (m *Machine) Anchor() string { return m.anchor }

func (m *Machine) dateRange(fromKey, toKey string) []Item {
	from, err := domain.ParseDateKey(fromKey)
	if err != nil {
		return nil
	}
	to, err := domain.ParseDateKey(toKey)
	if err != nil {
		return nil
	}

	var keys []string
	if m.axis != nil {
		keys = m.axis.RangeKeys(from, to)
	} else {
		keys = []string{fromKey, toKey}
	}

	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, Date(k))
	}
	return items
}
