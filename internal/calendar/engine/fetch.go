package engine

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/pagination"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// resetResourcesLocked новое поколение автомобилей и запрос первой страницы
func (e *Engine) resetResourcesLocked() effects {
	var fx effects
	req := e.resourcePager.Reset()
	fx.fetch(e.resourceFetch(req))
	return fx
}

// resetBookingsLocked новое поколение бронирований и запрос стартовой страницы
// clear=true сразу убирает бронирования прошлого года
func (e *Engine) resetBookingsLocked(clear bool) effects {
	var fx effects
	if clear {
		e.reservations = nil
		e.reservationIDs = make(map[string]struct{})
		e.relayoutLocked()
	}
	req := e.bookingPager.Reset(1)
	fx.fetch(e.reservationFetch(req, domain.YearQuery(e.year, e.cfg.StatusFilter)))
	return fx
}

func (e *Engine) maybeLoadResourcesLocked(top float64) effects {
	var fx effects
	req, ok := e.resourcePager.OnScroll(pagination.VerticalViewport{
		ScrollTop:    top,
		ClientHeight: e.viewportHeight,
		ScrollHeight: e.totalHeightLocked(),
	})
	if ok {
		fx.fetch(e.resourceFetch(req))
	}
	return fx
}

func (e *Engine) maybeLoadBookingsLocked(left float64) effects {
	var fx effects
	reqs := e.bookingPager.OnScroll(pagination.HorizontalViewport{
		ScrollLeft:  left,
		ClientWidth: e.viewportWidth,
		ScrollWidth: e.axis.TotalWidth(e.axis.CellWidth(e.zoom)),
	})
	query := domain.YearQuery(e.year, e.cfg.StatusFilter)
	for _, req := range reqs {
		fx.fetch(e.reservationFetch(req, query))
	}
	return fx
}

func (e *Engine) fetchContext() (context.Context, context.CancelFunc) {
	if e.cfg.FetchTimeout > 0 {
		return context.WithTimeout(e.ctx, e.cfg.FetchTimeout)
	}
	return context.WithCancel(e.ctx)
}

func (e *Engine) observe(kind string, started time.Time, err error) {
	if e.metrics != nil {
		e.metrics.ObserveFetch(kind, time.Since(started), err)
	}
}

func (e *Engine) resourceFetch(req pagination.Request) func() {
	return func() {
		ctx, cancel := e.fetchContext()
		defer cancel()

		started := time.Now()
		page, err := e.source.ListResources(ctx, req.Page, req.PageSize)
		e.observe(fetchResources, started, err)
		e.applyResources(req, page, err)
	}
}

func (e *Engine) reservationFetch(req pagination.Request, query domain.ReservationQuery) func() {
	return func() {
		ctx, cancel := e.fetchContext()
		defer cancel()

		started := time.Now()
		page, err := e.source.ListReservations(ctx, query, req.Page, req.PageSize)
		e.observe(fetchReservations, started, err)
		e.applyReservations(req, page, err)
	}
}

func (e *Engine) detailFetch(seq uint64, id string) func() {
	return func() {
		ctx, cancel := e.fetchContext()
		defer cancel()

		started := time.Now()
		detail, err := e.source.GetReservationDetail(ctx, id)
		e.observe(fetchDetail, started, err)
		e.applyDetail(seq, id, detail, err)
	}
}

// applyResources вливает страницу автомобилей
func (e *Engine) applyResources(req pagination.Request, page domain.Page[domain.Resource], err error) {
	e.mu.Lock()
	if !e.resourcePager.Complete(req, page.Received, err) {
		if err != nil {
			e.logger.Warn("engine: failed to load resources page %d: %v", req.Page, err)
		}
		e.mu.Unlock()
		return
	}

	if req.Direction == pagination.DirectionInitial {
		e.resources = nil
		e.resourceIndex = make(map[string]int)
	}

	added := 0
	for i := range page.Items {
		res := page.Items[i]
		if err := res.Validate(); err != nil {
			e.logger.Warn("engine: dropped resource on page %d: %v", req.Page, err)
			continue
		}
		if _, dup := e.resourceIndex[res.ID]; dup {
			continue
		}
		e.resourceIndex[res.ID] = len(e.resources)
		e.resources = append(e.resources, res)
		added++
	}
	e.relayoutLocked()
	e.logger.Info("engine: resources page %d loaded: received=%d, added=%d", req.Page, page.Received, added)
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{{Kind: EventDataChanged}}})
}

// applyReservations вливает страницу бронирований
// next и initial дописываются в конец, prev - в начало; дубли по ID пропускаются
func (e *Engine) applyReservations(req pagination.Request, page domain.Page[domain.Reservation], err error) {
	e.mu.Lock()
	if !e.bookingPager.Complete(req, page.Received, err) {
		if err != nil {
			e.logger.Warn("engine: failed to load reservations page %d (%s): %v", req.Page, req.Direction, err)
		}
		e.mu.Unlock()
		return
	}

	if req.Direction == pagination.DirectionInitial {
		e.reservations = nil
		e.reservationIDs = make(map[string]struct{})
	}

	fresh := make([]domain.Reservation, 0, len(page.Items))
	for i := range page.Items {
		r := page.Items[i]
		if err := r.Validate(); err != nil {
			e.logger.Warn("engine: dropped reservation on page %d: %v", req.Page, err)
			continue
		}
		if _, dup := e.reservationIDs[r.ID]; dup {
			continue
		}
		e.reservationIDs[r.ID] = struct{}{}
		fresh = append(fresh, r)
	}

	if req.Direction == pagination.DirectionPrev {
		e.reservations = append(fresh, e.reservations...)
	} else {
		e.reservations = append(e.reservations, fresh...)
	}
	e.relayoutLocked()
	e.logger.Info("engine: reservations page %d (%s) loaded: received=%d, added=%d",
		req.Page, req.Direction, page.Received, len(fresh))
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{{Kind: EventDataChanged}}})
}

// applyDetail открывает форму редактирования, если клик еще актуален
func (e *Engine) applyDetail(seq uint64, id string, detail *domain.ReservationDetail, err error) {
	if err != nil {
		e.logger.Error("engine: failed to fetch reservation %s: %v", id, err)
		return
	}

	e.mu.Lock()
	if seq != e.detailSeq {
		e.mu.Unlock()
		return
	}
	e.opened = detail
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{{Kind: EventReservationOpened, Reservation: detail}}})
}
