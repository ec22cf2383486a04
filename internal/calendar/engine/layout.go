package engine

import (
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/geometry"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/lanes"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/selection"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/viewport"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// relayoutLocked пересчитывает дорожки после смены данных или оси
func (e *Engine) relayoutLocked() {
	spansByResource := make(map[string][]lanes.Span, len(e.resources))
	barsByResource := make(map[string][]*domain.Reservation, len(e.resources))
	spanByID := make(map[string][2]int, len(e.reservations))

	for i := range e.reservations {
		r := &e.reservations[i]
		if _, known := e.resourceIndex[r.ResourceID]; !known {
			continue
		}
		start, end, ok := e.axis.SpanOf(r)
		if !ok {
			continue
		}
		spansByResource[r.ResourceID] = append(spansByResource[r.ResourceID], lanes.Span{ID: r.ID, Start: start, End: end})
		barsByResource[r.ResourceID] = append(barsByResource[r.ResourceID], r)
		spanByID[r.ID] = [2]int{start, end}
	}

	rows := make(map[string]*rowLayout, len(e.resources))
	alive := make(map[string]struct{}, len(e.resources))
	for _, res := range e.resources {
		assignment := lanes.Allocate(spansByResource[res.ID])
		spans := make(map[string][2]int, len(barsByResource[res.ID]))
		for _, r := range barsByResource[res.ID] {
			spans[r.ID] = spanByID[r.ID]
		}
		rows[res.ID] = &rowLayout{assignment: assignment, spans: spans, bars: barsByResource[res.ID]}
		e.heights.Target(res.ID, geometry.RowHeight(assignment.LaneCount))
		alive[res.ID] = struct{}{}
	}
	e.heights.Retain(alive)
	e.rows = rows
	e.startAnimationLocked()
}

// totalHeightLocked высота всех строк по целевым высотам
func (e *Engine) totalHeightLocked() float64 {
	total := 0.0
	for _, res := range e.resources {
		laneCount := 1
		if row, ok := e.rows[res.ID]; ok {
			laneCount = row.assignment.LaneCount
		}
		total += geometry.RowHeight(laneCount)
	}
	return total
}

// Layout снимок модели отрисовки
func (e *Engine) Layout() Layout {
	e.mu.Lock()
	defer e.mu.Unlock()

	cw := e.axis.CellWidth(e.zoom)
	snap := e.selection.Snapshot()
	selectedDates := toSet(snap.Dates)
	selectedResources := toSet(snap.Resources)
	selectedReservations := toSet(snap.Reservations)

	todayKey := ""
	if today := e.now(); e.axis.Contains(today) {
		todayKey = e.axis.Key(e.axis.IndexOf(today))
	}

	columns := make([]Column, e.axis.Len())
	for i := range columns {
		key := e.axis.Key(i)
		_, selected := selectedDates[key]
		columns[i] = Column{
			Index:    i,
			Key:      key,
			Label:    e.axis.Label(i),
			Weekday:  e.axis.Weekday(i),
			Left:     float64(i) * cw,
			Width:    cw,
			Today:    key == todayKey,
			Selected: selected,
		}
	}

	groups := e.axis.MonthGroups()
	months := make([]MonthHeader, 0, len(groups))
	left := 0.0
	for _, g := range groups {
		width := float64(g.Buckets) * cw
		months = append(months, MonthHeader{Name: g.Name, Left: left, Width: width})
		left += width
	}

	rows := make([]Row, 0, len(e.resources))
	top := 0.0
	for _, res := range e.resources {
		row := e.rows[res.ID]
		laneCount := 1
		if row != nil {
			laneCount = row.assignment.LaneCount
		}
		height := e.heights.Height(res.ID)
		if height == 0 {
			height = geometry.RowHeight(laneCount)
		}
		_, selected := selectedResources[res.ID]

		out := Row{
			Resource:     res,
			Top:          top,
			Height:       height,
			TargetHeight: geometry.RowHeight(laneCount),
			LaneCount:    laneCount,
			Selected:     selected,
			Bars:         make([]BarView, 0),
		}
		if row != nil {
			for _, r := range row.bars {
				span := row.spans[r.ID]
				bar := geometry.BuildBar(r, span[0], span[1], row.assignment.Lane(r.ID), laneCount, cw, height)
				_, barSelected := selectedReservations[r.ID]
				out.Bars = append(out.Bars, BarView{
					Bar:           bar,
					CustomerName:  r.CustomerName,
					BookingNumber: r.BookingNumber,
					Status:        string(r.Status),
					Selected:      barSelected,
				})
			}
		}
		rows = append(rows, out)
		top += height
	}

	return Layout{
		Year:        e.year,
		ViewMode:    e.mode,
		Granularity: e.axis.Granularity(),
		Zoom:        e.zoom,
		CellWidth:   cw,
		TotalWidth:  e.axis.TotalWidth(cw),
		TotalHeight: top,
		Columns:     columns,
		Months:      months,
		Rows:        rows,
		Resources:   e.resourcePager.Status(),
		Bookings:    e.bookingPager.Status(),
		Scroll: map[viewport.Pane]viewport.Position{
			viewport.PaneResources:    e.sync.Position(viewport.PaneResources),
			viewport.PaneGrid:         e.sync.Position(viewport.PaneGrid),
			viewport.PaneMonthHeader:  e.sync.Position(viewport.PaneMonthHeader),
			viewport.PanePeriodHeader: e.sync.Position(viewport.PanePeriodHeader),
		},
		Animating: e.heights.Animating(),
	}
}

// HitTest определяет, что лежит под точкой сетки (координаты контента)
func (e *Engine) HitTest(x, y float64) Hit {
	e.mu.Lock()
	defer e.mu.Unlock()

	if x < 0 || y < 0 {
		return Hit{Kind: HitNone}
	}
	cw := e.axis.CellWidth(e.zoom)
	if x >= e.axis.TotalWidth(cw) {
		return Hit{Kind: HitNone}
	}
	col := e.axis.IndexAtOffset(x, cw)
	dateKey := e.axis.Key(col)

	top := 0.0
	for _, res := range e.resources {
		row := e.rows[res.ID]
		height := e.heights.Height(res.ID)
		laneCount := 1
		if row != nil {
			laneCount = row.assignment.LaneCount
		}
		if height == 0 {
			height = geometry.RowHeight(laneCount)
		}
		if y >= top+height {
			top += height
			continue
		}

		if row != nil {
			localY := y - top
			for _, r := range row.bars {
				span := row.spans[r.ID]
				if col < span[0] || col >= span[1] {
					continue
				}
				barTop, barHeight := geometry.BarVertical(row.assignment.Lane(r.ID), laneCount, height)
				if localY >= barTop && localY < barTop+barHeight {
					return Hit{Kind: HitReservation, ResourceID: res.ID, DateKey: dateKey, ReservationID: r.ID}
				}
			}
		}
		return Hit{Kind: HitCell, ResourceID: res.ID, DateKey: dateKey}
	}

	return Hit{Kind: HitNone, DateKey: dateKey}
}

// ResourceAt автомобиль под вертикальной координатой списка
func (e *Engine) ResourceAt(y float64) (string, bool) {
	hit := e.HitTest(0, y)
	if hit.Kind == HitNone {
		return "", false
	}
	return hit.ResourceID, true
}

// ColumnAt ключ колонки под горизонтальной координатой заголовка
func (e *Engine) ColumnAt(x float64) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.axis.Key(e.axis.IndexAtOffset(x, e.axis.CellWidth(e.zoom)))
}

// Selection снимок текущего выбора
func (e *Engine) Selection() selection.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.Snapshot()
}

// OpenedReservation последняя открытая для редактирования бронь
func (e *Engine) OpenedReservation() *domain.ReservationDetail {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opened
}

// Counts число загруженных автомобилей и бронирований
func (e *Engine) Counts() (resources, reservations int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.resources), len(e.reservations)
}

func toSet(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}
