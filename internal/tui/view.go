package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/geometry"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/viewport"
)

const helpText = "h/j/k/l прокрутка · y/Y год · v вид · +/- масштаб · r обновить · a бронь · esc сброс · q выход"

func (m *Model) View() string {
	if !m.mounted {
		return "Загрузка календаря..."
	}

	layout := m.cal.Layout()
	scroll := layout.Scroll[viewport.PaneGrid]

	lines := make([]string, 0, m.height)
	lines = append(lines, m.titleLine(layout))
	lines = append(lines, m.monthLine(layout, scroll).render())
	lines = append(lines, m.periodLine(layout, scroll).render())
	for i := 0; i < m.gridLines(); i++ {
		lines = append(lines, m.gridLine(layout, scroll, i).render())
	}
	lines = append(lines, m.footerLine())
	return strings.Join(lines, "\n")
}

func (m *Model) titleLine(layout engine.Layout) string {
	loading := ""
	if layout.Resources.Loading || layout.Bookings.LoadingNext || layout.Bookings.LoadingPrev {
		loading = " · загрузка..."
	}
	text := fmt.Sprintf(" Календарь %d · %s · масштаб %.2f · авто %d · броней %d%s",
		layout.Year, layout.ViewMode, layout.Zoom, len(layout.Rows), countBars(layout), loading)
	l := newLine(m.lineWidth())
	l.fill(0, len(l), " ", styleTitle)
	l.put(0, text, styleTitle)
	return l.render()
}

func (m *Model) footerLine() string {
	l := newLine(m.lineWidth())
	if m.status != "" {
		l.put(1, geometry.Fit(m.status, len(l)-2), styleStatus)
	} else {
		l.put(1, geometry.Fit(helpText, len(l)-2), styleHelp)
	}
	return l.render()
}

func (m *Model) monthLine(layout engine.Layout, scroll viewport.Position) line {
	l := newLine(m.lineWidth())
	grid := l[labelWidth:]
	for _, month := range layout.Months {
		from, to := toCols(month.Left, month.Width, scroll.Left)
		if to <= 0 || from >= len(grid) {
			continue
		}
		if from >= 0 {
			grid.put(from, "│", styleSeparator)
		}
		start := max(from+1, 0)
		grid.put(start, geometry.Fit(month.Name, to-start-1), styleMonth)
	}
	l.put(labelWidth-1, "│", styleSeparator)
	return l
}

func (m *Model) periodLine(layout engine.Layout, scroll viewport.Position) line {
	l := newLine(m.lineWidth())
	l.put(1, "Автомобиль", styleMonth)
	l.put(labelWidth-1, "│", styleSeparator)
	grid := l[labelWidth:]
	for _, col := range layout.Columns {
		from, to := toCols(col.Left, col.Width, scroll.Left)
		if to <= 0 || from >= len(grid) {
			continue
		}
		style := stylePeriod
		switch {
		case col.Selected:
			style = stylePeriodSelected
		case col.Today:
			style = stylePeriodToday
		}
		grid.fill(from, to, " ", style)
		grid.put(max(from, 0), fitLabel(col.Label, to-max(from, 0)-1), style)
	}
	return l
}

func (m *Model) gridLine(layout engine.Layout, scroll viewport.Position, i int) line {
	l := newLine(m.lineWidth())
	l.put(labelWidth-1, "│", styleSeparator)
	grid := l[labelWidth:]

	for _, col := range layout.Columns {
		if !col.Today && !col.Selected {
			continue
		}
		from, to := toCols(col.Left, col.Width, scroll.Left)
		if col.Selected {
			grid.paint(from, to, styleDateSelected)
		}
		if col.Today && from >= 0 && from < len(grid) {
			grid.put(from, "┊", styleToday)
		}
	}

	y := scroll.Top + float64(i)*linePx + linePx/2
	row, ok := rowAt(layout.Rows, y)
	if !ok {
		return l
	}

	labelStyle := styleResource
	if row.Selected {
		labelStyle = styleResourceSelected
		l.fill(0, labelWidth-1, " ", labelStyle)
	}
	switch int((y - row.Top) / linePx) {
	case 0:
		l.put(1, geometry.Fit(row.Resource.Label, labelWidth-3), labelStyle)
	case 1:
		l.put(1, geometry.Fit(row.Resource.Plate, labelWidth-3), stylePlate)
	}

	local := y - row.Top
	for _, bar := range row.Bars {
		if local < bar.Top || local >= bar.Top+bar.Height {
			continue
		}
		from, to := toCols(bar.Left, bar.Width, scroll.Left)
		style := barStyle(bar.Color, bar.Selected)
		grid.fill(from, to, " ", style)

		// подпись на строке терминала, ближайшей к середине полосы
		if mid := bar.Top + bar.Height/2; (local <= mid && mid < local+linePx) || bar.Height < linePx {
			width := to - from - 2
			text := geometry.Fit(bar.Label.Text, width)
			pad := max((width-runewidth.StringWidth(text))/2, 0)
			grid.put(from+1+pad, text, style)
		}
	}
	return l
}

func (m *Model) lineWidth() int {
	return labelWidth + m.gridCols()
}

func rowAt(rows []engine.Row, y float64) (engine.Row, bool) {
	for _, row := range rows {
		if y >= row.Top && y < row.Top+row.Height {
			return row, true
		}
	}
	return engine.Row{}, false
}

func countBars(layout engine.Layout) int {
	n := 0
	for _, row := range layout.Rows {
		n += len(row.Bars)
	}
	return n
}
