package geometry

import (
	"math"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Color цвет статуса полосы
type Color string

const (
	ColorBlue  Color = "blue"
	ColorAmber Color = "amber"
	ColorGreen Color = "green"
	ColorGray  Color = "gray"
)

// StatusColor цвет средней части полосы по статусу
func StatusColor(status domain.ReservationStatus) Color {
	switch status {
	case domain.StatusConfirmed:
		return ColorBlue
	case domain.StatusPending:
		return ColorAmber
	case domain.StatusCompleted:
		return ColorGreen
	default:
		return ColorGray
	}
}

// SegmentKind часть полосы
type SegmentKind string

const (
	SegmentStartCap SegmentKind = "start-cap" // маркер выдачи
	SegmentMiddle   SegmentKind = "middle"
	SegmentEndCap   SegmentKind = "end-cap" // маркер возврата
)

// Segment прямоугольник полосы в координатах сетки
// Rounded - сторона со скругленным внешним краем ("left"/"right")
type Segment struct {
	Kind    SegmentKind `json:"kind"`
	Left    float64     `json:"left"`
	Width   float64     `json:"width"`
	Rounded string      `json:"rounded,omitempty"`
}

// Bar полная геометрия одного бронирования
type Bar struct {
	ReservationID string    `json:"reservationId"`
	ResourceID    string    `json:"resourceId"`
	Lane          int       `json:"lane"`
	StartIndex    int       `json:"startIndex"`
	EndIndex      int       `json:"endIndex"` // не включительно
	Left          float64   `json:"left"`
	Width         float64   `json:"width"`
	Top           float64   `json:"top"` // относительно строки
	Height        float64   `json:"height"`
	Color         Color     `json:"color"`
	Segments      []Segment `json:"segments"`
	Label         Label     `json:"label"`
}

// Минимальная ширина обычного маркера
const MinCapWidth = 10

// Segments разбивает полуинтервал колонок [start, end) на маркеры и середину
//
// Однодневная полоса состоит из двух половинок-маркеров без середины.
// Иначе маркер выдачи стоит в первой колонке, маркер возврата в последней,
// середина заполняет промежуток между ними.
func Segments(start, end int, cellWidth float64) []Segment {
	if end <= start || cellWidth <= 0 {
		return nil
	}

	left := float64(start) * cellWidth

	if end-start == 1 {
		half := math.Floor(cellWidth / 2)
		return []Segment{
			{Kind: SegmentStartCap, Left: left, Width: half, Rounded: "left"},
			{Kind: SegmentEndCap, Left: left + half, Width: math.Ceil(cellWidth / 2), Rounded: "right"},
		}
	}

	capWidth := math.Max(MinCapWidth, cellWidth-2)
	endCapLeft := float64(end-1) * cellWidth

	segments := make([]Segment, 0, 3)
	segments = append(segments, Segment{Kind: SegmentStartCap, Left: left, Width: capWidth, Rounded: "left"})
	if middle := endCapLeft - (left + capWidth); middle > 0 {
		segments = append(segments, Segment{Kind: SegmentMiddle, Left: left + capWidth, Width: middle})
	}
	segments = append(segments, Segment{Kind: SegmentEndCap, Left: endCapLeft, Width: capWidth, Rounded: "right"})
	return segments
}

// BuildBar собирает полосу бронирования
func BuildBar(r *domain.Reservation, start, end, lane, laneCount int, cellWidth, rowHeight float64) Bar {
	left := float64(start) * cellWidth
	width := float64(end)*cellWidth - left
	top, height := BarVertical(lane, laneCount, rowHeight)

	return Bar{
		ReservationID: r.ID,
		ResourceID:    r.ResourceID,
		Lane:          lane,
		StartIndex:    start,
		EndIndex:      end,
		Left:          left,
		Width:         width,
		Top:           top,
		Height:        height,
		Color:         StatusColor(r.Status),
		Segments:      Segments(start, end, cellWidth),
		Label:         NewLabel(r.CustomerName, left, width),
	}
}
