package selection

import (
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Snapshot неизменяемый снимок выбора для подписчиков
type Snapshot struct {
	Resources    []string `json:"resources"`
	Dates        []string `json:"dates"`
	Reservations []string `json:"reservations"`
	Cells        []Item   `json:"cells"`
	Anchor       string   `json:"anchor,omitempty"`
}

// Empty ничего не выбрано
func (s Snapshot) Empty() bool {
	return len(s.Resources) == 0 && len(s.Dates) == 0 && len(s.Reservations) == 0 && len(s.Cells) == 0
}

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Resources:    m.set.Keys(KindResource),
		Dates:        m.set.Keys(KindDate),
		Reservations: m.set.Keys(KindReservation),
		Cells:        m.set.OfKind(KindCell),
		Anchor:       m.anchor,
	}
}

// Prefill данные для формы новой брони
type Prefill struct {
	ResourceID string    `json:"resourceId,omitempty"`
	Start      time.Time `json:"-"`
	End        time.Time `json:"-"`
}

// StartInput дата выдачи в формате поля формы
func (p Prefill) StartInput() string {
	if p.Start.IsZero() {
		return ""
	}
	return p.Start.Format(domain.PrefillFormat)
}

// EndInput дата возврата в формате поля формы
func (p Prefill) EndInput() string {
	if p.End.IsZero() {
		return ""
	}
	return p.End.Format(domain.PrefillFormat)
}

// Prefill собирает данные для новой брони: первый выбранный автомобиль
// и границы выбранных дат (в 10:00)
func (m *Machine) Prefill() (Prefill, error) {
	var p Prefill
	if resources := m.set.OfKind(KindResource); len(resources) > 0 {
		p.ResourceID = resources[0].Key
	}

	dates := m.set.Keys(KindDate)
	if len(dates) == 0 {
		if p.ResourceID == "" {
			return Prefill{}, ErrNothingToPrefill
		}
		return p, nil
	}

	first, err := domain.ParseDateKey(dates[0])
	if err != nil {
		return Prefill{}, err
	}
	last, err := domain.ParseDateKey(dates[len(dates)-1])
	if err != nil {
		return Prefill{}, err
	}

	p.Start = first.Add(domain.PrefillHour * time.Hour)
	p.End = last.Add(domain.PrefillHour * time.Hour)
	return p, nil
}
