package fleetservice

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// listResponse обертка списочных ответов сервиса парка
type listResponse struct {
	Data []json.RawMessage `json:"data"`
}

// itemResponse обертка ответа с одной записью
type itemResponse struct {
	Data json.RawMessage `json:"data"`
}

// Car автомобиль в ответе сервиса парка
type Car struct {
	ID               flexString `json:"id"`
	Name             string     `json:"name"`
	LicensePlate     string     `json:"license_plate"`
	ImagePreview     string     `json:"image_preview"`
	Image            string     `json:"image"`
	Transmission     namedField `json:"transmission"`
	TransmissionName string     `json:"transmission_name"`
	Fuel             namedField `json:"fuel"`
	FuelName         string     `json:"fuel_name"`
	Year             flexString `json:"year"`
	Type             namedField `json:"type"`
	Color            string     `json:"color"`
}

// Booking бронирование в ответе сервиса парка
type Booking struct {
	ID              flexString `json:"id"`
	BookingNumber   string     `json:"booking_number"`
	CarID           flexString `json:"car_id"`
	RentalStartDate string     `json:"rental_start_date"`
	RentalEndDate   string     `json:"rental_end_date"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	CustomerEmail   string     `json:"customer_email"`
	Status          string     `json:"status"`
	Days            int        `json:"days"`
}

// BookingInfo полная карточка бронирования
type BookingInfo struct {
	Booking
	CarName      string        `json:"car_name"`
	CarImage     string        `json:"car_image"`
	LicensePlate string        `json:"license_plate"`
	Car          *bookingCar   `json:"car"`
	PricePerDay  float64       `json:"price_per_day"`
	SubTotal     float64       `json:"sub_total"`
	Total        float64       `json:"total"`
	Note         string        `json:"note"`
	ServiceIDs   []int64       `json:"service_ids"`
	Services     []serviceItem `json:"services"`
}

type bookingCar struct {
	LicensePlate string `json:"license_plate"`
}

type serviceItem struct {
	ID int64 `json:"id"`
}

// flexString принимает и число, и строку
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) Int() int {
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0
	}
	return n
}

// namedField принимает строку или объект вида {"name": "..."}
type namedField string

func (n *namedField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = namedField(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*n = namedField(obj.Name)
	return nil
}
