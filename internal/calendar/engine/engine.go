// Package engine собирает ось, раскладку, пагинацию, синхронизацию
// прокрутки и выбор в один движок календаря.
//
// Все изменения состояния идут под одним мьютексом, который играет роль
// цикла событий. Загрузки выполняются вне блокировки и возвращаются в цикл
// через apply-методы. Уведомления рассылаются после снятия блокировки.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/axis"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/geometry"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/lanes"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/pagination"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/selection"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/viewport"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

// Виды загрузок для метрик и логов
const (
	fetchResources    = "resources"
	fetchReservations = "reservations"
	fetchDetail       = "detail"
)

type rowLayout struct {
	assignment lanes.Assignment
	spans      map[string][2]int
	bars       []*domain.Reservation
}

// Engine состояние календаря одного оператора
type Engine struct {
	mu sync.Mutex

	source    Source
	logger    Logger
	metrics   MetricsRecorder
	run       Runner
	now       Clock
	scheduler viewport.FrameScheduler
	cfg       Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool

	year int
	mode domain.ViewMode
	zoom float64
	axis *axis.Axis

	resources      []domain.Resource
	resourceIndex  map[string]int
	reservations   []domain.Reservation
	reservationIDs map[string]struct{}
	rows           map[string]*rowLayout

	resourcePager *pagination.ResourcePager
	bookingPager  *pagination.BookingPager
	sync          *viewport.Sync
	selection     *selection.Machine
	heights       *geometry.HeightAnimator
	animating     bool

	viewportWidth  float64
	viewportHeight float64
	mounted        bool

	opened    *domain.ReservationDetail
	detailSeq uint64

	listeners    map[int]Listener
	nextListener int
}

// effects то, что нужно сделать после снятия блокировки
type effects struct {
	events  []Event
	fetches []func()
}

func (fx *effects) emit(ev Event)   { fx.events = append(fx.events, ev) }
func (fx *effects) fetch(fn func()) { fx.fetches = append(fx.fetches, fn) }

func (fx *effects) merge(o effects) {
	fx.events = append(fx.events, o.events...)
	fx.fetches = append(fx.fetches, o.fetches...)
}

// New создает движок
// Данные не загружаются до вызова Mount
func New(source Source, cfg Config, logger Logger, opts ...Option) (*Engine, error) {
	cfg = cfg.withDefaults()

	ax, err := axis.Generate(cfg.Year, axis.ForViewMode(cfg.ViewMode))
	if err != nil {
		return nil, fmt.Errorf("engine: New - %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		source:         source,
		logger:         logger,
		cfg:            cfg,
		ctx:            ctx,
		cancel:         cancel,
		year:           cfg.Year,
		mode:           cfg.ViewMode,
		zoom:           cfg.Zoom,
		axis:           ax,
		resourceIndex:  make(map[string]int),
		reservationIDs: make(map[string]struct{}),
		rows:           make(map[string]*rowLayout),
		resourcePager:  pagination.NewResourcePager(cfg.ResourcePageSize, cfg.ResourceScrollThreshold),
		bookingPager:   pagination.NewBookingPager(cfg.ReservationPageSize, cfg.NextPageRatio, cfg.PrevPageRatio),
		heights:        geometry.NewHeightAnimator(),
		listeners:      make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.run == nil {
		e.run = func(fn func()) { go fn() }
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.scheduler == nil {
		e.scheduler = viewport.NewTimerScheduler(viewport.DefaultFrameInterval)
	}
	e.sync = viewport.NewSync(e.scheduler)
	e.selection = selection.NewMachine(ax, cfg.DragThreshold)

	return e, nil
}

// Mount первый показ календаря
// Запускает загрузку первых страниц, центрирует сегодняшний день и
// выбирает его, если он попадает в отображаемый год
func (e *Engine) Mount(viewportWidth, viewportHeight float64) ([]viewport.Update, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}

	var fx effects
	e.viewportWidth, e.viewportHeight = viewportWidth, viewportHeight
	e.mounted = true

	fx.merge(e.resetResourcesLocked())
	fx.merge(e.resetBookingsLocked(true))

	updates := e.centerTodayLocked()
	if e.selection.SeedToday(e.now()) {
		fx.emit(e.selectionEventLocked())
	}
	e.mu.Unlock()

	e.dispatch(fx)
	return updates, nil
}

// Resize новый размер окна
func (e *Engine) Resize(viewportWidth, viewportHeight float64) {
	e.mu.Lock()
	e.viewportWidth, e.viewportHeight = viewportWidth, viewportHeight
	e.mu.Unlock()
}

// ViewportSize текущий размер окна
func (e *Engine) ViewportSize() (width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewportWidth, e.viewportHeight
}

// SetYear переключает год: новая ось и полная перезагрузка бронирований
func (e *Engine) SetYear(year int) ([]viewport.Update, error) {
	ax, err := axis.Generate(year, e.granularity())
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	var fx effects
	e.year = year
	e.applyAxisLocked(ax)
	if e.mounted {
		fx.merge(e.resetBookingsLocked(true))
	}
	updates := e.centerTodayLocked()
	fx.emit(Event{Kind: EventDataChanged})
	e.mu.Unlock()

	e.dispatch(fx)
	return updates, nil
}

// SetViewMode меняет гранулярность оси; данные не перезагружаются
func (e *Engine) SetViewMode(mode domain.ViewMode) ([]viewport.Update, error) {
	if _, err := domain.ParseViewMode(string(mode)); err != nil {
		return nil, err
	}

	e.mu.Lock()
	ax, err := axis.Generate(e.year, axis.ForViewMode(mode))
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}
	e.mode = mode
	e.applyAxisLocked(ax)
	updates := e.centerTodayLocked()
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{{Kind: EventDataChanged}}})
	return updates, nil
}

// SetZoom меняет масштаб, сохраняя колонку в центре окна
func (e *Engine) SetZoom(zoom float64) []viewport.Update {
	e.mu.Lock()
	oldWidth := e.axis.CellWidth(e.zoom)
	left := e.sync.Position(viewport.PaneGrid).Left
	center := e.axis.IndexAtOffset(left+e.viewportWidth/2, oldWidth)

	e.zoom = axis.ClampZoom(zoom)
	updates := e.sync.CenterOn(center, e.axis.CellWidth(e.zoom), e.viewportWidth)
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{{Kind: EventDataChanged}}})
	return updates
}

// Reload перезагружает бронирования (после сохранения во внешней форме)
func (e *Engine) Reload() {
	e.mu.Lock()
	var fx effects
	if e.mounted {
		fx.merge(e.resetBookingsLocked(false))
	}
	e.mu.Unlock()

	e.dispatch(fx)
}

// ReloadAll перезагружает автомобили и бронирования
func (e *Engine) ReloadAll() {
	e.mu.Lock()
	var fx effects
	if e.mounted {
		fx.merge(e.resetResourcesLocked())
		fx.merge(e.resetBookingsLocked(false))
	}
	e.mu.Unlock()

	e.dispatch(fx)
}

// Scroll прокрутка панели
// Возвращает положения соседних панелей; эхо в пределах кадра
// не распространяется и не запускает подгрузку
func (e *Engine) Scroll(pane viewport.Pane, pos viewport.Position) []viewport.Update {
	e.mu.Lock()
	var fx effects

	updates := e.sync.OnScroll(pane, pos)
	if len(updates) > 0 && e.mounted {
		if pane == viewport.PaneResources || pane == viewport.PaneGrid {
			fx.merge(e.maybeLoadResourcesLocked(pos.Top))
		}
		if pane != viewport.PaneResources {
			fx.merge(e.maybeLoadBookingsLocked(pos.Left))
		}
	}
	e.mu.Unlock()

	e.dispatch(fx)
	return updates
}

// ScrollBy сдвигает сетку относительно текущего положения
func (e *Engine) ScrollBy(dx, dy float64) []viewport.Update {
	e.mu.Lock()
	cur := e.sync.Position(viewport.PaneGrid)
	maxLeft := e.axis.TotalWidth(e.axis.CellWidth(e.zoom)) - e.viewportWidth
	maxTop := e.totalHeightLocked() - e.viewportHeight
	e.mu.Unlock()

	next := viewport.Position{
		Left: clamp(cur.Left+dx, 0, maxLeft),
		Top:  clamp(cur.Top+dy, 0, maxTop),
	}
	return e.Scroll(viewport.PaneGrid, next)
}

// AnimateFrame продвигает анимацию высот строк на кадр вне очереди
// планировщика
func (e *Engine) AnimateFrame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.heights.Step()
}

// Animating идет ли анимация высот строк
func (e *Engine) Animating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.heights.Animating()
}

// startAnimationLocked ставит кадр анимации высот, если цикл кадров не запущен
func (e *Engine) startAnimationLocked() {
	if e.animating || e.closed || !e.heights.Animating() {
		return
	}
	e.animating = true
	e.scheduler.Schedule(e.animationFrame)
}

// animationFrame один кадр анимации; по завершении сообщает о смене раскладки
func (e *Engine) animationFrame() {
	e.mu.Lock()
	if e.closed {
		e.animating = false
		e.mu.Unlock()
		return
	}
	if e.heights.Step() {
		e.scheduler.Schedule(e.animationFrame)
		e.mu.Unlock()
		return
	}
	e.animating = false
	e.mu.Unlock()

	e.dispatch(effects{events: []Event{{Kind: EventDataChanged}}})
}

// Subscribe подписка на уведомления; возвращает функцию отписки
func (e *Engine) Subscribe(l Listener) func() {
	e.mu.Lock()
	id := e.nextListener
	e.nextListener++
	e.listeners[id] = l
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// Wait ждет завершения всех запущенных загрузок
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Close отменяет загрузки и ждет их завершения
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
}

func (e *Engine) granularity() axis.Granularity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.axis.Granularity()
}

func (e *Engine) applyAxisLocked(ax *axis.Axis) {
	e.axis = ax
	e.selection.SetAxis(ax)
	e.relayoutLocked()
}

func (e *Engine) centerTodayLocked() []viewport.Update {
	cw := e.axis.CellWidth(e.zoom)
	today := e.now()
	if !e.axis.Contains(today) {
		return e.sync.ScrollLeft(0)
	}
	return e.sync.CenterOn(e.axis.IndexOf(today), cw, e.viewportWidth)
}

func (e *Engine) selectionEventLocked() Event {
	return Event{Kind: EventSelectionChanged, Selection: e.selection.Snapshot()}
}

func (e *Engine) dispatch(fx effects) {
	if len(fx.events) > 0 {
		e.mu.Lock()
		listeners := make([]Listener, 0, len(e.listeners))
		for _, l := range e.listeners {
			listeners = append(listeners, l)
		}
		e.mu.Unlock()

		for _, ev := range fx.events {
			for _, l := range listeners {
				l(ev)
			}
		}
	}

	if len(fx.fetches) == 0 {
		return
	}
	// wg.Add под мьютексом: Close выставляет closed до wg.Wait
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.wg.Add(len(fx.fetches))
	e.mu.Unlock()

	for _, fn := range fx.fetches {
		fn := fn
		e.run(func() {
			defer e.wg.Done()
			fn()
		})
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
