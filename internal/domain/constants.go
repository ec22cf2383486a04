package domain

// Default pagination values
const (
	DefaultResourcePageSize        = 50
	DefaultReservationPageSize     = 200
	DefaultResourceScrollThreshold = 100 // px from the bottom of the resource list
	DefaultNextPageRatio           = 0.8
	DefaultPrevPageRatio           = 0.2
)

// Interaction constants
const (
	DefaultDragThreshold = 3 // px of pointer movement before a press becomes a drag
	DefaultZoom          = 1.0
)

// Business validation constants
const (
	MinCalendarYear = 2000
	MaxCalendarYear = 2100
)

// Time format constants
const (
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04:05" // формат дат бэкенда
	PrefillFormat  = "2006-01-02T15:04"    // формат полей формы бронирования
)

// PrefillHour время выдачи/возврата по умолчанию в форме нового бронирования
const PrefillHour = 10
