package pagination

// ResourcePager подгрузка автомобилей только вперед
type ResourcePager struct {
	pageSize  int
	threshold float64

	generation uint64
	nextPage   int
	hasMore    bool
	inFlight   bool
}

// ResourceStatus снимок состояния пейджера
type ResourceStatus struct {
	Generation  uint64 `json:"generation"`
	LoadedPages int    `json:"loadedPages"`
	HasMore     bool   `json:"hasMore"`
	Loading     bool   `json:"loading"`
}

func NewResourcePager(pageSize int, thresholdPx float64) *ResourcePager {
	if pageSize <= 0 {
		pageSize = 1
	}
	return &ResourcePager{
		pageSize:  pageSize,
		threshold: thresholdPx,
		nextPage:  1,
	}
}

// Reset начинает новое поколение и возвращает запрос первой страницы
func (p *ResourcePager) Reset() Request {
	p.generation++
	p.nextPage = 1
	p.hasMore = true
	p.inFlight = true
	return Request{Generation: p.generation, Page: 1, PageSize: p.pageSize, Direction: DirectionInitial}
}

// OnScroll возвращает запрос следующей страницы, если низ списка близко
func (p *ResourcePager) OnScroll(v VerticalViewport) (Request, bool) {
	if p.inFlight || !p.hasMore {
		return Request{}, false
	}
	if v.ScrollTop+v.ClientHeight < v.ScrollHeight-p.threshold {
		return Request{}, false
	}

	p.inFlight = true
	return Request{Generation: p.generation, Page: p.nextPage, PageSize: p.pageSize, Direction: DirectionNext}, true
}

// Complete фиксирует результат запроса
// Возвращает true, если страницу нужно добавить к данным
func (p *ResourcePager) Complete(req Request, count int, err error) bool {
	if req.Generation != p.generation {
		return false
	}
	p.inFlight = false
	if err != nil {
		return false
	}

	p.nextPage = req.Page + 1
	p.hasMore = count >= p.pageSize
	return true
}

func (p *ResourcePager) HasMore() bool      { return p.hasMore }
func (p *ResourcePager) Loading() bool      { return p.inFlight }
func (p *ResourcePager) Generation() uint64 { return p.generation }
func (p *ResourcePager) PageSize() int      { return p.pageSize }

func (p *ResourcePager) Status() ResourceStatus {
	return ResourceStatus{
		Generation:  p.generation,
		LoadedPages: p.nextPage - 1,
		HasMore:     p.hasMore,
		Loading:     p.inFlight,
	}
}
