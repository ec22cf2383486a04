// Package lanes раскладывает бронирования одного автомобиля по визуальным
// дорожкам так, чтобы пересекающиеся бронирования не накладывались.
package lanes

import "sort"

// Span бронирование, переведенное в колонки оси: [Start, End)
type Span struct {
	ID    string
	Start int
	End   int // не включительно
}

// Overlaps проверяет РЕАЛЬНОЕ пересечение полуинтервалов
// Интервалы встык (End == other.Start) не пересекаются
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Assignment раскладка одного автомобиля
type Assignment struct {
	LaneByID  map[string]int
	LaneCount int // всегда >= 1
}

// Lane возвращает дорожку бронирования (0, если его нет в раскладке)
func (a Assignment) Lane(id string) int {
	return a.LaneByID[id]
}

// Allocate раскладывает интервалы first-fit'ом
//
// Интервалы сортируются по (Start, End) устойчиво, затем каждый ставится на
// дорожку с наименьшим номером, чей записанный конец <= Start. Если такой
// нет - открывается новая дорожка. Число дорожек равно максимальной глубине
// пересечения.
func Allocate(spans []Span) Assignment {
	items := make([]Span, len(spans))
	copy(items, spans)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Start != items[j].Start {
			return items[i].Start < items[j].Start
		}
		return items[i].End < items[j].End
	})

	laneEnds := make([]int, 0, 4)
	laneByID := make(map[string]int, len(items))

	for _, it := range items {
		lane := -1
		for i, end := range laneEnds {
			if end <= it.Start {
				lane = i
				break
			}
		}
		if lane == -1 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, it.End)
		} else {
			laneEnds[lane] = it.End
		}
		laneByID[it.ID] = lane
	}

	count := len(laneEnds)
	if count < 1 {
		count = 1
	}

	return Assignment{LaneByID: laneByID, LaneCount: count}
}

// MaxDepth максимальное число интервалов, покрывающих одну колонку
func MaxDepth(spans []Span) int {
	type event struct {
		at    int
		delta int
	}
	events := make([]event, 0, len(spans)*2)
	for _, s := range spans {
		if s.End <= s.Start {
			continue
		}
		events = append(events, event{s.Start, 1}, event{s.End, -1})
	}
	// конец раньше начала в той же точке: интервалы встык не пересекаются
	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].delta < events[j].delta
	})

	depth, best := 0, 0
	for _, e := range events {
		depth += e.delta
		if depth > best {
			best = depth
		}
	}
	return best
}
