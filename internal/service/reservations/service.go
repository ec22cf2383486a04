package reservations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
	fleetRepo "github.com/m04kA/SMC-FleetCalendar/internal/infra/storage/fleet"
	fleetServiceClient "github.com/m04kA/SMC-FleetCalendar/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/reservations/models"
)

// Ограничение чтения года по страницам
const maxPages = 100

// Service сервис чтения бронирований для формы редактирования
type Service struct {
	source   ReservationSource
	pageSize int
	logger   Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(source ReservationSource, pageSize int, logger Logger) *Service {
	if pageSize <= 0 {
		pageSize = domain.DefaultReservationPageSize
	}
	return &Service{
		source:   source,
		pageSize: pageSize,
		logger:   logger,
	}
}

// GetByID получает полную карточку бронирования
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationDetailResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s", id)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty reservation id", ErrInvalidInput)
	}

	detail, err := s.source.GetReservationDetail(ctx, id)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: source error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - source error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%s", id)
	return models.FromDomainDetail(detail), nil
}

// GetResourceReservations читает все бронирования года и оставляет
// бронирования одного автомобиля, по дате выдачи
func (s *Service) GetResourceReservations(ctx context.Context, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetResourceReservations: fetching reservations for car=%s, year=%d", req.ResourceID, req.Year)

	if req.ResourceID == "" {
		return nil, fmt.Errorf("%w: empty car id", ErrInvalidInput)
	}
	if req.Year < domain.MinCalendarYear || req.Year > domain.MaxCalendarYear {
		s.logger.Warn("GetResourceReservations: year=%d out of range", req.Year)
		return nil, fmt.Errorf("%w: year %d", ErrInvalidInput, req.Year)
	}

	query := domain.YearQuery(req.Year, req.Statuses)
	seen := make(map[string]struct{})
	result := make([]domain.Reservation, 0)

	for page := 1; ; page++ {
		if page > maxPages {
			s.logger.Error("GetResourceReservations: car=%s year=%d exceeded %d pages", req.ResourceID, req.Year, maxPages)
			return nil, ErrTooManyPages
		}

		batch, err := s.source.ListReservations(ctx, query, page, s.pageSize)
		if err != nil {
			s.logger.Error("GetResourceReservations: source error on page=%d: %v", page, err)
			return nil, fmt.Errorf("%w: GetResourceReservations - source error: %v", ErrInternal, err)
		}

		for _, r := range batch.Items {
			if r.ResourceID != req.ResourceID {
				continue
			}
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			result = append(result, r)
		}

		if batch.Received < s.pageSize {
			break
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})

	response := &models.ReservationListResponse{
		ResourceID:   req.ResourceID,
		Year:         req.Year,
		Reservations: make([]models.ReservationResponse, 0, len(result)),
	}
	for _, r := range result {
		response.Reservations = append(response.Reservations, models.FromDomainReservation(r))
	}

	s.logger.Info("GetResourceReservations: found %d reservations for car=%s", len(result), req.ResourceID)
	return response, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, fleetServiceClient.ErrReservationNotFound) ||
		errors.Is(err, fleetRepo.ErrReservationNotFound)
}
