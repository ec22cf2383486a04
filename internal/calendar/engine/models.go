package engine

import (
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/axis"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/geometry"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/pagination"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/selection"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/viewport"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Config параметры движка
type Config struct {
	Year                    int
	ViewMode                domain.ViewMode
	Zoom                    float64
	ResourcePageSize        int
	ReservationPageSize     int
	ResourceScrollThreshold float64
	NextPageRatio           float64
	PrevPageRatio           float64
	DragThreshold           float64
	StatusFilter            []string
	FetchTimeout            time.Duration
}

// DefaultConfig значения по умолчанию для текущего года
func DefaultConfig(now time.Time) Config {
	return Config{
		Year:                    now.Year(),
		ViewMode:                domain.ViewYear,
		Zoom:                    domain.DefaultZoom,
		ResourcePageSize:        domain.DefaultResourcePageSize,
		ReservationPageSize:     domain.DefaultReservationPageSize,
		ResourceScrollThreshold: domain.DefaultResourceScrollThreshold,
		NextPageRatio:           domain.DefaultNextPageRatio,
		PrevPageRatio:           domain.DefaultPrevPageRatio,
		DragThreshold:           domain.DefaultDragThreshold,
		StatusFilter:            domain.DefaultStatusFilter,
		FetchTimeout:            10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	if c.Year == 0 {
		c.Year = time.Now().Year()
	}
	if c.ViewMode == "" {
		c.ViewMode = domain.ViewYear
	}
	c.Zoom = axis.ClampZoom(c.Zoom)
	if c.ResourcePageSize <= 0 {
		c.ResourcePageSize = domain.DefaultResourcePageSize
	}
	if c.ReservationPageSize <= 0 {
		c.ReservationPageSize = domain.DefaultReservationPageSize
	}
	if c.ResourceScrollThreshold <= 0 {
		c.ResourceScrollThreshold = domain.DefaultResourceScrollThreshold
	}
	if c.NextPageRatio <= 0 {
		c.NextPageRatio = domain.DefaultNextPageRatio
	}
	if c.PrevPageRatio <= 0 {
		c.PrevPageRatio = domain.DefaultPrevPageRatio
	}
	if c.DragThreshold <= 0 {
		c.DragThreshold = domain.DefaultDragThreshold
	}
	if len(c.StatusFilter) == 0 {
		c.StatusFilter = domain.DefaultStatusFilter
	}
	return c
}

// Option настройка зависимостей движка
type Option func(*Engine)

// WithRunner подменяет запуск загрузок (по умолчанию - горутина)
func WithRunner(r Runner) Option {
	return func(e *Engine) { e.run = r }
}

// WithScheduler подменяет планировщик кадров синхронизации прокрутки
func WithScheduler(s viewport.FrameScheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithClock подменяет часы
func WithClock(c Clock) Option {
	return func(e *Engine) { e.now = c }
}

// WithMetrics включает учет загрузок
func WithMetrics(m MetricsRecorder) Option {
	return func(e *Engine) { e.metrics = m }
}

// EventKind вид уведомления
type EventKind string

const (
	EventSelectionChanged  EventKind = "selection-changed"
	EventReservationOpened EventKind = "reservation-opened"
	EventDataChanged       EventKind = "data-changed"
)

// Event уведомление для окружающего приложения
type Event struct {
	Kind        EventKind
	Selection   selection.Snapshot
	Reservation *domain.ReservationDetail
}

// Column колонка периода
type Column struct {
	Index    int     `json:"index"`
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Weekday  string  `json:"weekday,omitempty"`
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
	Today    bool    `json:"today"`
	Selected bool    `json:"selected"`
}

// MonthHeader колонка заголовка месяцев
type MonthHeader struct {
	Name  string  `json:"name"`
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// BarView полоса бронирования с признаком выбора
type BarView struct {
	geometry.Bar
	CustomerName  string `json:"customerName"`
	BookingNumber string `json:"bookingNumber,omitempty"`
	Status        string `json:"status"`
	Selected      bool   `json:"selected"`
}

// Row строка автомобиля
type Row struct {
	Resource     domain.Resource `json:"resource"`
	Top          float64         `json:"top"`
	Height       float64         `json:"height"`
	TargetHeight float64         `json:"targetHeight"`
	LaneCount    int             `json:"laneCount"`
	Selected     bool            `json:"selected"`
	Bars         []BarView       `json:"bars"`
}

// Layout полная модель отрисовки календаря
type Layout struct {
	Year        int                                 `json:"year"`
	ViewMode    domain.ViewMode                     `json:"viewMode"`
	Granularity axis.Granularity                    `json:"granularity"`
	Zoom        float64                             `json:"zoom"`
	CellWidth   float64                             `json:"cellWidth"`
	TotalWidth  float64                             `json:"totalWidth"`
	TotalHeight float64                             `json:"totalHeight"`
	Columns     []Column                            `json:"columns"`
	Months      []MonthHeader                       `json:"months"`
	Rows        []Row                               `json:"rows"`
	Resources   pagination.ResourceStatus           `json:"resourcePaging"`
	Bookings    pagination.BookingStatus            `json:"bookingPaging"`
	Scroll      map[viewport.Pane]viewport.Position `json:"scroll"`
	Animating   bool                                `json:"animating"`
}

// BookingPrefill данные для формы новой брони
type BookingPrefill struct {
	ResourceID    string `json:"resourceId,omitempty"`
	ResourceLabel string `json:"resourceLabel,omitempty"`
	ResourcePlate string `json:"resourcePlate,omitempty"`
	ResourceImage string `json:"resourceImage,omitempty"`
	Transmission  string `json:"transmission,omitempty"`
	Fuel          string `json:"fuel,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
}

// HitKind во что попал указатель
type HitKind string

const (
	HitNone        HitKind = "none"
	HitCell        HitKind = "cell"
	HitReservation HitKind = "reservation"
)

// Hit результат попадания в сетку
type Hit struct {
	Kind          HitKind
	ResourceID    string
	DateKey       string
	ReservationID string
}
