package get_resource_reservations

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос из пути и query параметров
// year - год календаря (по умолчанию текущий), status - список через запятую
func ToServiceRequest(resourceID, yearStr, statusStr string, now time.Time) (*models.GetResourceReservationsRequest, error) {
	req := &models.GetResourceReservationsRequest{
		ResourceID: resourceID,
		Year:       now.Year(),
	}

	if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", yearStr, err)
		}
		req.Year = year
	}

	for _, s := range strings.Split(statusStr, ",") {
		if s = strings.TrimSpace(s); s != "" {
			req.Statuses = append(req.Statuses, s)
		}
	}
	return req, nil
}
