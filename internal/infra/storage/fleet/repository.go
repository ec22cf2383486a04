package fleet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
	"github.com/m04kA/SMC-FleetCalendar/pkg/psqlbuilder"
)

var carColumns = []string{
	"id",
	"name",
	"license_plate",
	"image",
	"transmission",
	"fuel",
	"year",
	"type",
	"color",
}

var bookingColumns = []string{
	"b.id",
	"b.booking_number",
	"b.car_id",
	"b.rental_start_date",
	"b.rental_end_date",
	"b.customer_name",
	"b.customer_phone",
	"b.customer_email",
	"b.status",
	"b.days",
}

// Repository читает автомобили и бронирования напрямую из БД парка
type Repository struct {
	db  DBExecutor
	log Logger
}

// NewRepository создает новый экземпляр репозитория парка
func NewRepository(db DBExecutor, log Logger) *Repository {
	return &Repository{db: db, log: log}
}

// ListResources получает страницу автомобилей, упорядоченных по id
func (r *Repository) ListResources(ctx context.Context, page, pageSize int) (domain.Page[domain.Resource], error) {
	query, args, err := listCarsQuery(page, pageSize).ToSql()
	if err != nil {
		return domain.Page[domain.Resource]{}, fmt.Errorf("%w: ListResources - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Page[domain.Resource]{}, fmt.Errorf("%w: ListResources - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCars(rows)
}

// ListReservations получает страницу бронирований, пересекающихся с годом запроса
func (r *Repository) ListReservations(ctx context.Context, q domain.ReservationQuery, page, pageSize int) (domain.Page[domain.Reservation], error) {
	query, args, err := listBookingsQuery(q, page, pageSize).ToSql()
	if err != nil {
		return domain.Page[domain.Reservation]{}, fmt.Errorf("%w: ListReservations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Page[domain.Reservation]{}, fmt.Errorf("%w: ListReservations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetReservationDetail получает карточку бронирования вместе с данными автомобиля
func (r *Repository) GetReservationDetail(ctx context.Context, id string) (*domain.ReservationDetail, error) {
	bookingID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrReservationNotFound
	}

	query, args, err := detailQuery(bookingID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservationDetail - build select query: %v", ErrBuildQuery, err)
	}

	var (
		row                          bookingRow
		carName, plate, note         sql.NullString
		pricePerDay, subTotal, total sql.NullFloat64
	)
	dest := append(row.dest(), &carName, &plate, &pricePerDay, &subTotal, &total, &note)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservationDetail - scan booking: %v", ErrScanRow, err)
	}

	reservation, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservationDetail - booking %d: %v", ErrScanRow, bookingID, err)
	}

	return &domain.ReservationDetail{
		Reservation:   reservation,
		ResourceName:  carName.String,
		ResourcePlate: plate.String,
		PricePerDay:   pricePerDay.Float64,
		SubTotal:      subTotal.Float64,
		Total:         total.Float64,
		Note:          note.String,
		Raw: map[string]interface{}{
			"id":       reservation.ID,
			"car_id":   reservation.ResourceID,
			"car_name": carName.String,
		},
	}, nil
}

func offset(page, pageSize int) uint64 {
	if page < 1 {
		page = 1
	}
	return uint64((page - 1) * pageSize)
}

func listCarsQuery(page, pageSize int) squirrel.SelectBuilder {
	return psqlbuilder.Select(carColumns...).
		From("cars").
		OrderBy("id ASC").
		Limit(uint64(pageSize)).
		Offset(offset(page, pageSize))
}

// listBookingsQuery отбирает бронирования, пересекающиеся с окном года
func listBookingsQuery(q domain.ReservationQuery, page, pageSize int) squirrel.SelectBuilder {
	yearEnd := q.YearEnd.AddDate(0, 0, 1)

	sb := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Lt{"b.rental_start_date": yearEnd}).
		Where(squirrel.GtOrEq{"b.rental_end_date": q.YearStart})

	if len(q.Statuses) > 0 {
		sb = sb.Where(squirrel.Eq{"b.status": q.Statuses})
	}

	return sb.OrderBy("b.id ASC").
		Limit(uint64(pageSize)).
		Offset(offset(page, pageSize))
}

func detailQuery(id int64) squirrel.SelectBuilder {
	columns := append(append([]string{}, bookingColumns...),
		"c.name",
		"c.license_plate",
		"b.price_per_day",
		"b.sub_total",
		"b.total",
		"b.note",
	)
	return psqlbuilder.Select(columns...).
		From("bookings b").
		LeftJoin("cars c ON c.id = b.car_id").
		Where(squirrel.Eq{"b.id": id})
}

// scanCars сканирует автомобили; битые записи отбрасываются по одной
func (r *Repository) scanCars(rows *sql.Rows) (domain.Page[domain.Resource], error) {
	page := domain.Page[domain.Resource]{Items: make([]domain.Resource, 0)}

	for rows.Next() {
		var (
			id                                                     int64
			name, plate, image, transmission, fuel, carType, color sql.NullString
			year                                                   sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &plate, &image, &transmission, &fuel, &year, &carType, &color); err != nil {
			return domain.Page[domain.Resource]{}, fmt.Errorf("%w: scanCars - scan row: %v", ErrScanRow, err)
		}
		page.Received++

		res := domain.Resource{
			ID:           strconv.FormatInt(id, 10),
			Label:        name.String,
			Plate:        plate.String,
			Image:        image.String,
			Transmission: transmission.String,
			Fuel:         fuel.String,
			Year:         int(year.Int64),
			Type:         carType.String,
			Color:        color.String,
		}
		if err := res.Validate(); err != nil {
			r.log.Warn("fleet.repository: dropped car %d: %v", id, err)
			continue
		}
		page.Items = append(page.Items, res)
	}

	if err := rows.Err(); err != nil {
		return domain.Page[domain.Resource]{}, fmt.Errorf("%w: scanCars - rows error: %v", ErrScanRow, err)
	}
	return page, nil
}

// scanBookings сканирует бронирования; битые записи отбрасываются по одной
func (r *Repository) scanBookings(rows *sql.Rows) (domain.Page[domain.Reservation], error) {
	page := domain.Page[domain.Reservation]{Items: make([]domain.Reservation, 0)}

	for rows.Next() {
		var row bookingRow
		if err := rows.Scan(row.dest()...); err != nil {
			return domain.Page[domain.Reservation]{}, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		page.Received++

		reservation, err := row.toDomain()
		if err != nil {
			r.log.Warn("fleet.repository: dropped booking %d: %v", row.id, err)
			continue
		}
		page.Items = append(page.Items, reservation)
	}

	if err := rows.Err(); err != nil {
		return domain.Page[domain.Reservation]{}, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}
	return page, nil
}
