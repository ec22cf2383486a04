package axis

import (
	"fmt"
	"time"
)

// MonthGroup колонка заголовка месяцев
type MonthGroup struct {
	Month   time.Month
	Name    string
	Buckets int // сколько корзин оси приходится на месяц
}

// MonthGroups группирует корзины оси по месяцам начала
// Сумма Buckets всегда равна Len()
func (a *Axis) MonthGroups() []MonthGroup {
	groups := make([]MonthGroup, 0, 12)
	for _, d := range a.anchors {
		if n := len(groups); n > 0 && groups[n-1].Month == d.Month() {
			groups[n-1].Buckets++
			continue
		}
		groups = append(groups, MonthGroup{Month: d.Month(), Name: d.Month().String(), Buckets: 1})
	}
	return groups
}

// Label подпись колонки в заголовке периода
func (a *Axis) Label(i int) string {
	d := a.anchors[i]
	switch a.granularity {
	case Weekly:
		return fmt.Sprintf("W%d", (d.Day()+6)/7)
	case Monthly:
		return d.Format("Jan")
	default:
		return d.Format("Jan 2")
	}
}

// Weekday короткое имя дня недели для дневной оси
func (a *Axis) Weekday(i int) string {
	if a.granularity != Daily {
		return ""
	}
	return a.anchors[i].Format("Mon")
}
