// Package geometry переводит ось, раскладку по дорожкам и бронирования в
// пиксельную модель: высоты строк и сегменты полос.
package geometry

// Вертикальные размеры строки
const (
	BaseRowHeight = 64 // минимальная высота строки с несколькими дорожками
	LaneHeight    = 34 // высота одной дорожки и компактной строки
	VerticalPad   = 8  // отступ сверху и снизу в многодорожечной строке
	BarInset      = 4  // внутренний отступ полосы от границы дорожки
)

// RowHeight высота строки автомобиля по числу дорожек
func RowHeight(laneCount int) float64 {
	if laneCount <= 1 {
		return LaneHeight
	}
	h := float64(2*VerticalPad + laneCount*LaneHeight)
	if h < BaseRowHeight {
		return BaseRowHeight
	}
	return h
}

// BarVertical вертикальное положение полосы внутри строки
// В многодорожечной строке полоса занимает свою дорожку, в компактной
// почти всю высоту строки
func BarVertical(lane, laneCount int, rowHeight float64) (top, height float64) {
	if laneCount > 1 {
		return float64(VerticalPad + lane*LaneHeight + BarInset), LaneHeight - 2*BarInset
	}
	height = rowHeight - 2*BarInset
	if height < 0 {
		height = 0
	}
	return BarInset, height
}
