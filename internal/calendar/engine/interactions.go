package engine

import (
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/selection"
)

// ClickResource клик по автомобилю в списке
func (e *Engine) ClickResource(id string, mods selection.Modifiers) {
	e.mu.Lock()
	e.selection.ClickResource(id, mods)
	ev := e.selectionEventLocked()
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{ev}})
}

// ClickDate клик по заголовку периода
func (e *Engine) ClickDate(dateKey string, mods selection.Modifiers) error {
	e.mu.Lock()
	if err := e.selection.ClickDate(dateKey, mods); err != nil {
		e.mu.Unlock()
		return err
	}
	ev := e.selectionEventLocked()
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{ev}})
	return nil
}

// ClickReservation клик по полосе бронирования
// Простой клик дополнительно загружает карточку брони и по готовности
// шлет EventReservationOpened; ошибка загрузки только логируется
func (e *Engine) ClickReservation(id string, mods selection.Modifiers) {
	e.mu.Lock()
	var fx effects
	open := e.selection.ClickReservation(id, mods)
	fx.emit(e.selectionEventLocked())
	if open {
		e.detailSeq++
		fx.fetch(e.detailFetch(e.detailSeq, id))
	}
	e.mu.Unlock()

	e.dispatch(fx)
}

// ClickCell клик по пустой ячейке сетки
func (e *Engine) ClickCell(resourceID, dateKey string, mods selection.Modifiers) error {
	e.mu.Lock()
	if err := e.selection.ClickCell(resourceID, dateKey, mods); err != nil {
		e.mu.Unlock()
		return err
	}
	ev := e.selectionEventLocked()
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{ev}})
	return nil
}

// ClickEmpty клик по пустому полотну
func (e *Engine) ClickEmpty(mods selection.Modifiers, insideSelected bool) bool {
	e.mu.Lock()
	cleared := e.selection.ClickEmpty(mods, insideSelected)
	var fx effects
	if cleared {
		fx.emit(e.selectionEventLocked())
	}
	e.mu.Unlock()

	e.dispatch(fx)
	return cleared
}

// ClearSelection полная очистка выбора
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	e.selection.Clear()
	ev := e.selectionEventLocked()
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{ev}})
}

// PointerDown нажатие на заголовке или строке сетки
func (e *Engine) PointerDown(dateKey string, x float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.PointerDown(dateKey, x)
}

// PointerMove движение указателя над колонкой
func (e *Engine) PointerMove(dateKey string, x float64) bool {
	e.mu.Lock()
	changed := e.selection.PointerMove(dateKey, x)
	var fx effects
	if changed {
		fx.emit(e.selectionEventLocked())
	}
	e.mu.Unlock()

	e.dispatch(fx)
	return changed
}

// PointerUp отпускание указателя в любом месте окна
// true - это было перетаскивание и клик обрабатывать не нужно
func (e *Engine) PointerUp() bool {
	e.mu.Lock()
	wasDrag := e.selection.PointerUp()
	var fx effects
	if wasDrag {
		fx.emit(e.selectionEventLocked())
	}
	e.mu.Unlock()

	e.dispatch(fx)
	return wasDrag
}

// Prefill данные для формы новой брони по текущему выбору
func (e *Engine) Prefill() (BookingPrefill, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.selection.Prefill()
	if err != nil {
		return BookingPrefill{}, err
	}

	out := BookingPrefill{
		ResourceID: p.ResourceID,
		StartDate:  p.StartInput(),
		EndDate:    p.EndInput(),
	}
	if idx, ok := e.resourceIndex[p.ResourceID]; ok {
		res := e.resources[idx]
		out.ResourceLabel = res.Label
		out.ResourcePlate = res.Plate
		out.ResourceImage = res.Image
		out.Transmission = res.Transmission
		out.Fuel = res.Fuel
	}
	return out, nil
}
