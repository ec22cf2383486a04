package pagination

import "sort"

// BookingPager двунаправленная подгрузка бронирований
//
// Держит множество загруженных страниц и окно [minPage, maxPage].
// У каждого направления своя защелка, поэтому одна прокрутка может
// запросить и следующую, и предыдущую страницу.
type BookingPager struct {
	pageSize   int
	nextRatio  float64
	prevRatio  float64
	generation uint64

	loaded  map[int]struct{}
	minPage int
	maxPage int

	hasMoreNext  bool
	hasMorePrev  bool
	inFlightNext bool
	inFlightPrev bool
}

// BookingStatus снимок состояния пейджера
type BookingStatus struct {
	Generation  uint64 `json:"generation"`
	MinPage     int    `json:"minPage"`
	MaxPage     int    `json:"maxPage"`
	LoadedPages []int  `json:"loadedPages"`
	HasMoreNext bool   `json:"hasMoreNext"`
	HasMorePrev bool   `json:"hasMorePrev"`
	LoadingNext bool   `json:"loadingNext"`
	LoadingPrev bool   `json:"loadingPrev"`
}

func NewBookingPager(pageSize int, nextRatio, prevRatio float64) *BookingPager {
	if pageSize <= 0 {
		pageSize = 1
	}
	return &BookingPager{
		pageSize:  pageSize,
		nextRatio: nextRatio,
		prevRatio: prevRatio,
		loaded:    make(map[int]struct{}),
		minPage:   1,
		maxPage:   1,
	}
}

// Reset сбрасывает окно в [startPage, startPage], забывает загруженные
// страницы и возвращает запрос стартовой страницы
func (p *BookingPager) Reset(startPage int) Request {
	if startPage < 1 {
		startPage = 1
	}
	p.generation++
	p.loaded = make(map[int]struct{})
	p.minPage, p.maxPage = startPage, startPage
	p.hasMoreNext = true
	p.hasMorePrev = startPage > 1
	p.inFlightNext = true
	p.inFlightPrev = false

	return Request{Generation: p.generation, Page: startPage, PageSize: p.pageSize, Direction: DirectionInitial}
}

// OnScroll возвращает запросы страниц для текущего положения прокрутки
func (p *BookingPager) OnScroll(v HorizontalViewport) []Request {
	if v.ScrollWidth <= 0 {
		return nil
	}

	var reqs []Request

	if v.RightRatio() >= p.nextRatio && p.hasMoreNext && !p.inFlightNext {
		page := p.maxPage + 1
		// стартовая страница еще не загружена (прошлая попытка упала)
		if len(p.loaded) == 0 {
			page = p.maxPage
		}
		if _, done := p.loaded[page]; !done {
			p.inFlightNext = true
			reqs = append(reqs, Request{Generation: p.generation, Page: page, PageSize: p.pageSize, Direction: DirectionNext})
		}
	}

	if v.LeftRatio() <= p.prevRatio && p.hasMorePrev && p.minPage > 1 && !p.inFlightPrev {
		page := p.minPage - 1
		if _, done := p.loaded[page]; !done {
			p.inFlightPrev = true
			reqs = append(reqs, Request{Generation: p.generation, Page: page, PageSize: p.pageSize, Direction: DirectionPrev})
		}
	}

	return reqs
}

// Complete фиксирует результат запроса
// Возвращает true, если страницу нужно влить в данные: append для
// next/initial, prepend для prev. Ответы старого поколения игнорируются.
func (p *BookingPager) Complete(req Request, count int, err error) bool {
	if req.Generation != p.generation {
		return false
	}

	switch req.Direction {
	case DirectionPrev:
		p.inFlightPrev = false
	default:
		p.inFlightNext = false
	}
	if err != nil {
		return false
	}
	if _, dup := p.loaded[req.Page]; dup {
		return false
	}

	p.loaded[req.Page] = struct{}{}
	switch req.Direction {
	case DirectionPrev:
		if req.Page < p.minPage {
			p.minPage = req.Page
		}
		p.hasMorePrev = p.minPage > 1
	default:
		if req.Page > p.maxPage {
			p.maxPage = req.Page
		}
		if req.Page < p.minPage {
			p.minPage = req.Page
		}
		p.hasMoreNext = count >= p.pageSize
	}
	return true
}

func (p *BookingPager) HasMoreNext() bool  { return p.hasMoreNext }
func (p *BookingPager) HasMorePrev() bool  { return p.hasMorePrev }
func (p *BookingPager) Generation() uint64 { return p.generation }
func (p *BookingPager) PageSize() int      { return p.pageSize }

// Window текущее окно загруженных страниц
func (p *BookingPager) Window() (minPage, maxPage int) {
	return p.minPage, p.maxPage
}

// Loaded загружена ли страница в текущем поколении
func (p *BookingPager) Loaded(page int) bool {
	_, ok := p.loaded[page]
	return ok
}

func (p *BookingPager) Status() BookingStatus {
	pages := make([]int, 0, len(p.loaded))
	for page := range p.loaded {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	return BookingStatus{
		Generation:  p.generation,
		MinPage:     p.minPage,
		MaxPage:     p.maxPage,
		LoadedPages: pages,
		HasMoreNext: p.hasMoreNext,
		HasMorePrev: p.hasMorePrev,
		LoadingNext: p.inFlightNext,
		LoadingPrev: p.inFlightPrev,
	}
}
