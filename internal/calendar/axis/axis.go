// Package axis строит временную ось календаря: упорядоченные корзины дат
// одного года и перевод дат в индексы колонок и пиксели.
package axis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Granularity ширина одной корзины оси
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Базовая ширина колонки в пикселях
const (
	BaseWidthDaily   = 40
	BaseWidthWeekly  = 80
	BaseWidthMonthly = 120
)

// Ограничения масштаба
const (
	MinZoom      = 0.6
	MaxZoom      = 2.0
	MinCellWidth = 24
	MaxCellWidth = 360
)

// WeeksPerYear число недельных корзин в году
const WeeksPerYear = 52

// ForViewMode возвращает гранулярность для режима отображения
func ForViewMode(mode domain.ViewMode) Granularity {
	switch mode {
	case domain.ViewQuarter:
		return Weekly
	case domain.ViewMonth:
		return Monthly
	default:
		return Daily
	}
}

// Axis ось одного календарного года
type Axis struct {
	year        int
	granularity Granularity
	anchors     []time.Time
	keys        []string
	indexByKey  map[string]int
	start       time.Time // 1 января
	end         time.Time // 1 января следующего года, не включительно
}

// Generate строит ось года с заданной гранулярностью
// daily - 365/366 дней, weekly - 52 корзины с шагом 7 дней (последняя
// добирает хвост года), monthly - 12 месяцев
func Generate(year int, g Granularity) (*Axis, error) {
	if year < domain.MinCalendarYear || year > domain.MaxCalendarYear {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var anchors []time.Time
	switch g {
	case Daily:
		anchors = make([]time.Time, 0, 366)
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			anchors = append(anchors, d)
		}
	case Weekly:
		anchors = make([]time.Time, 0, WeeksPerYear)
		for i := 0; i < WeeksPerYear; i++ {
			anchors = append(anchors, start.AddDate(0, 0, 7*i))
		}
	case Monthly:
		anchors = make([]time.Time, 0, 12)
		for m := time.January; m <= time.December; m++ {
			anchors = append(anchors, time.Date(year, m, 1, 0, 0, 0, 0, time.UTC))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}

	a := &Axis{
		year:        year,
		granularity: g,
		anchors:     anchors,
		keys:        make([]string, len(anchors)),
		indexByKey:  make(map[string]int, len(anchors)),
		start:       start,
		end:         end,
	}
	for i, d := range anchors {
		key := domain.DateKey(d)
		a.keys[i] = key
		a.indexByKey[key] = i
	}

	return a, nil
}

func (a *Axis) Year() int                { return a.year }
func (a *Axis) Granularity() Granularity { return a.granularity }
func (a *Axis) Len() int                 { return len(a.anchors) }

// At возвращает дату начала корзины i
func (a *Axis) At(i int) time.Time { return a.anchors[i] }

// Key возвращает ISO-ключ корзины i
func (a *Axis) Key(i int) string { return a.keys[i] }

// Keys возвращает копию ключей всех корзин
func (a *Axis) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Contains проверяет, попадает ли дата в год оси
func (a *Axis) Contains(t time.Time) bool {
	d := domain.DateOnly(t)
	return !d.Before(a.start) && d.Before(a.end)
}

// IndexOf возвращает индекс корзины, содержащей дату
// Даты вне года прижимаются к ближайшему краю
func (a *Axis) IndexOf(t time.Time) int {
	d := domain.DateOnly(t)
	if d.Before(a.start) {
		return 0
	}
	if !d.Before(a.end) {
		return len(a.anchors) - 1
	}
	if a.granularity == Daily {
		if idx, ok := a.indexByKey[domain.DateKey(d)]; ok {
			return idx
		}
	}
	// границы корзин монотонны: ищем первую корзину, начинающуюся после даты
	i := sort.Search(len(a.anchors), func(i int) bool {
		return a.anchors[i].After(d)
	})
	return i - 1
}

// IndexOfKey возвращает индекс корзины по ISO-ключу дня
func (a *Axis) IndexOfKey(key string) (int, bool) {
	if idx, ok := a.indexByKey[key]; ok {
		return idx, true
	}
	t, err := domain.ParseDateKey(key)
	if err != nil || !a.Contains(t) {
		return 0, false
	}
	return a.IndexOf(t), true
}

// Span переводит занятые дни [first, last] в полуинтервал [start, endExclusive)
// ok=false, если интервал целиком вне года оси
func (a *Axis) Span(first, last time.Time) (start, endExclusive int, ok bool) {
	first, last = domain.DateOnly(first), domain.DateOnly(last)
	if last.Before(first) {
		first, last = last, first
	}
	if last.Before(a.start) || !first.Before(a.end) {
		return 0, 0, false
	}
	return a.IndexOf(first), a.IndexOf(last) + 1, true
}

// SpanOf возвращает полуинтервал колонок бронирования
// День возврата свободен для следующей выдачи, поэтому бронирования
// "встык" дают смежные, а не пересекающиеся интервалы
func (a *Axis) SpanOf(r *domain.Reservation) (start, endExclusive int, ok bool) {
	return a.Span(r.FirstDay(), r.LastOccupiedDay())
}

// Range возвращает непрерывный включительный диапазон корзин между двумя датами
// Порядок концов не важен
func (a *Axis) Range(x, y time.Time) []time.Time {
	ix, iy := a.IndexOf(x), a.IndexOf(y)
	if ix > iy {
		ix, iy = iy, ix
	}
	out := make([]time.Time, iy-ix+1)
	copy(out, a.anchors[ix:iy+1])
	return out
}

// RangeKeys то же, что Range, но возвращает ISO-ключи
func (a *Axis) RangeKeys(x, y time.Time) []string {
	ix, iy := a.IndexOf(x), a.IndexOf(y)
	if ix > iy {
		ix, iy = iy, ix
	}
	out := make([]string, iy-ix+1)
	copy(out, a.keys[ix:iy+1])
	return out
}

// CellWidth ширина колонки оси при заданном масштабе
func (a *Axis) CellWidth(zoom float64) float64 {
	return CellWidth(a.granularity, zoom)
}

// TotalWidth ширина всей сетки
func (a *Axis) TotalWidth(cellWidth float64) float64 {
	return float64(len(a.anchors)) * cellWidth
}

// IndexAtOffset переводит горизонтальную координату сетки в индекс колонки
func (a *Axis) IndexAtOffset(px, cellWidth float64) int {
	if cellWidth <= 0 {
		return 0
	}
	idx := int(math.Floor(px / cellWidth))
	if idx < 0 {
		return 0
	}
	if idx > len(a.anchors)-1 {
		return len(a.anchors) - 1
	}
	return idx
}

// CellWidth = baseWidth(granularity) * zoom, зажато в [24, 360]
func CellWidth(g Granularity, zoom float64) float64 {
	var base float64
	switch g {
	case Weekly:
		base = BaseWidthWeekly
	case Monthly:
		base = BaseWidthMonthly
	default:
		base = BaseWidthDaily
	}
	return clamp(base*ClampZoom(zoom), MinCellWidth, MaxCellWidth)
}

// ClampZoom ограничивает масштаб диапазоном [0.6, 2.0]
func ClampZoom(zoom float64) float64 {
	if zoom == 0 || math.IsNaN(zoom) {
		return domain.DefaultZoom
	}
	return clamp(zoom, MinZoom, MaxZoom)
}

// CenterOffset смещение прокрутки, при котором колонка index стоит по центру
func CenterOffset(index int, cellWidth, viewportWidth float64) float64 {
	offset := float64(index)*cellWidth - (viewportWidth/2 - cellWidth/2)
	if offset < 0 {
		return 0
	}
	return offset
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
