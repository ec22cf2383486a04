// Package pagination решает, когда и какую страницу подгружать при прокрутке.
//
// Пейджеры не ходят в сеть сами: OnScroll возвращает запросы, которые
// владелец выполняет асинхронно и затем сообщает результат через Complete.
// Защелки "в полете" - обычные поля пейджера; поколение (generation)
// отсекает ответы, пришедшие после перезагрузки.
package pagination

// Direction направление подгрузки
type Direction string

const (
	DirectionInitial Direction = "initial"
	DirectionNext    Direction = "next"
	DirectionPrev    Direction = "prev"
)

// Request запрос на загрузку страницы
type Request struct {
	Generation uint64
	Page       int
	PageSize   int
	Direction  Direction
}

// VerticalViewport прокрутка списка автомобилей
type VerticalViewport struct {
	ScrollTop    float64
	ClientHeight float64
	ScrollHeight float64
}

// HorizontalViewport прокрутка сетки по горизонтали
type HorizontalViewport struct {
	ScrollLeft  float64
	ClientWidth float64
	ScrollWidth float64
}

// RightRatio доля ширины, до которой докручен правый край окна
func (v HorizontalViewport) RightRatio() float64 {
	if v.ScrollWidth <= 0 {
		return 0
	}
	return (v.ScrollLeft + v.ClientWidth) / v.ScrollWidth
}

// LeftRatio доля ширины слева от окна
func (v HorizontalViewport) LeftRatio() float64 {
	if v.ScrollWidth <= 0 {
		return 0
	}
	return v.ScrollLeft / v.ScrollWidth
}
