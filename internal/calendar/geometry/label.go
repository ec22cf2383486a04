package geometry

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Границы размера шрифта подписи
const (
	MinFontSize = 8
	MaxFontSize = 14

	// средняя ширина символа относительно кегля
	glyphAspect = 0.6
)

// Label подпись с именем клиента, растянутая на всю полосу и отцентрированная
type Label struct {
	Text     string  `json:"text"`
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
	FontSize float64 `json:"fontSize"`
}

// NewLabel подбирает размер шрифта так, чтобы имя помещалось в полосу
func NewLabel(text string, left, width float64) Label {
	return Label{
		Text:     text,
		Left:     left,
		Width:    width,
		FontSize: FontSize(text, width),
	}
}

// FontSize кегль обратно пропорционален длине имени и прямо ширине полосы
// Результат зажат в [8, 14]
func FontSize(text string, barWidth float64) float64 {
	cols := runewidth.StringWidth(text)
	if cols == 0 {
		return MaxFontSize
	}
	size := barWidth / (float64(cols) * glyphAspect)
	return math.Max(MinFontSize, math.Min(MaxFontSize, size))
}

// Fit обрезает подпись под заданное число колонок терминала
func Fit(text string, cols int) string {
	if cols <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= cols {
		return text
	}
	return runewidth.Truncate(text, cols, "…")
}
