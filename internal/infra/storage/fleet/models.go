package fleet

import (
	"database/sql"
	"strconv"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// bookingRow строка таблицы bookings
type bookingRow struct {
	id            int64
	bookingNumber sql.NullString
	carID         sql.NullInt64
	start         sql.NullTime
	end           sql.NullTime
	customerName  sql.NullString
	customerPhone sql.NullString
	customerEmail sql.NullString
	status        sql.NullString
	days          sql.NullInt64
}

// dest порядок полей совпадает с bookingColumns
func (b *bookingRow) dest() []interface{} {
	return []interface{}{
		&b.id,
		&b.bookingNumber,
		&b.carID,
		&b.start,
		&b.end,
		&b.customerName,
		&b.customerPhone,
		&b.customerEmail,
		&b.status,
		&b.days,
	}
}

func (b *bookingRow) toDomain() (domain.Reservation, error) {
	r := domain.Reservation{
		ID:            strconv.FormatInt(b.id, 10),
		BookingNumber: b.bookingNumber.String,
		Start:         b.start.Time,
		End:           b.end.Time,
		CustomerName:  b.customerName.String,
		CustomerPhone: b.customerPhone.String,
		CustomerEmail: b.customerEmail.String,
		Status:        domain.StatusFromBackend(b.status.String),
		TotalDays:     int(b.days.Int64),
	}
	if b.carID.Valid {
		r.ResourceID = strconv.FormatInt(b.carID.Int64, 10)
	}
	if err := r.Validate(); err != nil {
		return domain.Reservation{}, err
	}
	return r, nil
}
