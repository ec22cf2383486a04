package fleetservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Client клиент для работы с сервисом парка
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса парка
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListResources получает страницу автомобилей
func (c *Client) ListResources(ctx context.Context, page, pageSize int) (domain.Page[domain.Resource], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(pageSize))

	var body listResponse
	if err := c.get(ctx, "/cars", params, &body); err != nil {
		return domain.Page[domain.Resource]{}, err
	}

	return domain.Page[domain.Resource]{
		Items:    c.mapCars(body.Data),
		Received: len(body.Data),
	}, nil
}

// ListReservations получает страницу бронирований за год
func (c *Client) ListReservations(ctx context.Context, query domain.ReservationQuery, page, pageSize int) (domain.Page[domain.Reservation], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(pageSize))
	params.Set("status", strings.Join(query.Statuses, ","))
	params.Set("start_date", query.YearStart.Format(domain.DateFormat))
	params.Set("end_date", query.YearEnd.Format(domain.DateFormat))

	var body listResponse
	if err := c.get(ctx, "/bookings", params, &body); err != nil {
		return domain.Page[domain.Reservation]{}, err
	}

	return domain.Page[domain.Reservation]{
		Items:    c.mapBookings(body.Data),
		Received: len(body.Data),
	}, nil
}

// GetReservationDetail получает полную карточку бронирования
func (c *Client) GetReservationDetail(ctx context.Context, id string) (*domain.ReservationDetail, error) {
	var body itemResponse
	if err := c.get(ctx, "/bookings/"+url.PathEscape(id), nil, &body); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if len(body.Data) == 0 || string(body.Data) == "null" {
		return nil, ErrReservationNotFound
	}

	var info BookingInfo
	if err := json.Unmarshal(body.Data, &info); err != nil {
		return nil, fmt.Errorf("%w: failed to decode booking %s: %v", ErrInvalidResponse, id, err)
	}
	if info.ID == "" {
		info.ID = flexString(id)
	}

	detail, err := info.toDomain(body.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s: %v", ErrInvalidResponse, id, err)
	}

	c.log.Info("Successfully fetched booking %s for car %s", detail.ID, detail.ResourceID)
	return detail, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", errNotFound, path)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
