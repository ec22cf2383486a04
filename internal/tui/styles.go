package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/geometry"
)

type styleID int

const (
	styleNone styleID = iota
	styleTitle
	styleMonth
	stylePeriod
	stylePeriodToday
	stylePeriodSelected
	styleResource
	styleResourceSelected
	stylePlate
	styleSeparator
	styleToday
	styleDateSelected
	styleCellSelected
	styleBarBlue
	styleBarAmber
	styleBarGreen
	styleBarGray
	styleBarSelected
	styleStatus
	styleHelp
	styleCount
)

var palette = func() [styleCount]lipgloss.Style {
	var s [styleCount]lipgloss.Style
	for i := range s {
		s[i] = lipgloss.NewStyle()
	}
	s[styleTitle] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5E7EB")).Background(lipgloss.Color("#1F2937"))
	s[styleMonth] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#93C5FD"))
	s[stylePeriod] = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	s[stylePeriodToday] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171"))
	s[stylePeriodSelected] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#93C5FD"))
	s[styleResource] = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	s[styleResourceSelected] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#93C5FD"))
	s[stylePlate] = lipgloss.NewStyle().Faint(true)
	s[styleSeparator] = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))
	s[styleToday] = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	s[styleDateSelected] = lipgloss.NewStyle().Background(lipgloss.Color("#1E3A8A"))
	s[styleCellSelected] = lipgloss.NewStyle().Background(lipgloss.Color("#2563EB"))
	s[styleBarBlue] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3B82F6"))
	s[styleBarAmber] = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#F59E0B"))
	s[styleBarGreen] = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#22C55E"))
	s[styleBarGray] = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#9CA3AF"))
	s[styleBarSelected] = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED"))
	s[styleStatus] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FCD34D"))
	s[styleHelp] = lipgloss.NewStyle().Faint(true)
	return s
}()

func barStyle(color geometry.Color, selected bool) styleID {
	if selected {
		return styleBarSelected
	}
	switch color {
	case geometry.ColorBlue:
		return styleBarBlue
	case geometry.ColorAmber:
		return styleBarAmber
	case geometry.ColorGreen:
		return styleBarGreen
	default:
		return styleBarGray
	}
}
