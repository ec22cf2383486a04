// Package sessions держит открытые календари операторов: у каждой сессии
// свой движок со своей прокруткой, выбором и загруженными страницами.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/engine"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/selection"
	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/viewport"
	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
	"github.com/m04kA/SMC-FleetCalendar/internal/service/sessions/models"
)

// Config параметры сервиса сессий
type Config struct {
	TTL        time.Duration // время жизни сессии без обращений
	MaxPerUser int           // 0 - без ограничения
	Defaults   engine.Config
}

type session struct {
	id          string
	userID      int64
	engine      *engine.Engine
	unsubscribe func()

	// растет на каждое уведомление движка; клиент сравнивает его при опросе
	version atomic.Uint64

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *session) expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

// Option настройка сервиса
type Option func(*Service)

// WithClock подменяет часы
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service сервис сессий календаря
type Service struct {
	factory EngineFactory
	cfg     Config
	metrics MetricsRecorder
	logger  Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewService создает новый экземпляр сервиса сессий
// metrics может быть nil
func NewService(factory EngineFactory, cfg Config, metrics MetricsRecorder, logger Logger, opts ...Option) *Service {
	s := &Service{
		factory:  factory,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create открывает календарь: создает движок, монтирует его и запускает
// загрузку первых страниц
func (s *Service) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Create: opening calendar for user=%d, year=%d, view=%s", req.UserID, req.Year, req.ViewMode)

	mode, err := domain.ParseViewMode(req.ViewMode)
	if err != nil {
		s.logger.Warn("Create: invalid view mode=%q for user=%d", req.ViewMode, req.UserID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.ViewportWidth <= 0 || req.ViewportHeight < 0 {
		s.logger.Warn("Create: invalid viewport %.0fx%.0f for user=%d", req.ViewportWidth, req.ViewportHeight, req.UserID)
		return nil, fmt.Errorf("%w: viewport size", ErrInvalidInput)
	}
	if s.cfg.MaxPerUser > 0 && s.countByUser(req.UserID) >= s.cfg.MaxPerUser {
		s.logger.Warn("Create: user=%d reached session limit %d", req.UserID, s.cfg.MaxPerUser)
		return nil, ErrTooManySessions
	}

	cfg := s.cfg.Defaults
	cfg.Year = req.Year
	if cfg.Year == 0 {
		cfg.Year = s.now().Year()
	}
	if cfg.Year < domain.MinCalendarYear || cfg.Year > domain.MaxCalendarYear {
		s.logger.Warn("Create: year=%d out of range for user=%d", cfg.Year, req.UserID)
		return nil, fmt.Errorf("%w: year %d", ErrInvalidInput, cfg.Year)
	}
	cfg.ViewMode = mode
	if req.Zoom > 0 {
		cfg.Zoom = req.Zoom
	}

	eng, err := s.factory(cfg)
	if err != nil {
		s.logger.Error("Create: failed to build engine for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - engine: %v", ErrInternal, err)
	}

	sess := &session{
		id:       uuid.NewString(),
		userID:   req.UserID,
		engine:   eng,
		lastSeen: s.now(),
	}
	sess.unsubscribe = eng.Subscribe(func(engine.Event) {
		sess.version.Add(1)
	})

	updates, err := eng.Mount(req.ViewportWidth, req.ViewportHeight)
	if err != nil {
		sess.unsubscribe()
		eng.Close()
		s.logger.Error("Create: failed to mount calendar for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - mount: %v", ErrInternal, err)
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	active := len(s.sessions)
	s.mu.Unlock()
	s.reportActive(active)

	s.logger.Info("Create: session=%s opened for user=%d", sess.id, req.UserID)
	return &models.SessionResponse{
		SessionID: sess.id,
		ExpiresAt: s.expiresAt(sess).Format(time.RFC3339),
		Updates:   nonNilUpdates(updates),
	}, nil
}

// Close закрывает сессию и отменяет ее загрузки
func (s *Service) Close(ctx context.Context, userID int64, sessionID string) error {
	sess, err := s.get(sessionID, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	active := len(s.sessions)
	s.mu.Unlock()

	s.closeSession(sess)
	s.reportActive(active)

	s.logger.Info("Close: session=%s closed by user=%d", sessionID, userID)
	return nil
}

// GetLayout модель отрисовки
func (s *Service) GetLayout(ctx context.Context, userID int64, sessionID string) (*models.LayoutResponse, error) {
	sess, err := s.get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return models.FromLayout(sess.id, sess.version.Load(), sess.engine.Layout()), nil
}

// Scroll прокрутка панели
func (s *Service) Scroll(ctx context.Context, req *models.ScrollRequest) (*models.ScrollResponse, error) {
	sess, err := s.get(req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	pane, err := viewport.ParsePane(req.Pane)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updates := sess.engine.Scroll(pane, viewport.Position{Left: req.Left, Top: req.Top})
	return &models.ScrollResponse{Updates: nonNilUpdates(updates)}, nil
}

// Pointer клики, перетаскивание и очистка выбора
func (s *Service) Pointer(ctx context.Context, req *models.PointerRequest) (*models.PointerResponse, error) {
	sess, err := s.get(req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	eng := sess.engine
	mods := req.Modifiers()
	resp := &models.PointerResponse{}

	switch req.Action {
	case models.ActionClick:
		hit := eng.HitTest(req.X, req.Y)
		resp.Hit = models.FromHit(hit)
		switch hit.Kind {
		case engine.HitReservation:
			eng.ClickReservation(hit.ReservationID, mods)
			resp.Handled = true
		case engine.HitCell:
			err = eng.ClickCell(hit.ResourceID, hit.DateKey, mods)
			resp.Handled = err == nil
		default:
			resp.Handled = eng.ClickEmpty(mods, req.InsideSelected)
		}
	case models.ActionClickResource:
		if req.ResourceID == "" {
			return nil, fmt.Errorf("%w: resourceId is required", ErrInvalidInput)
		}
		eng.ClickResource(req.ResourceID, mods)
		resp.Handled = true
	case models.ActionClickDate:
		err = eng.ClickDate(req.DateKey, mods)
		resp.Handled = err == nil
	case models.ActionClickReservation:
		if req.ReservationID == "" {
			return nil, fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
		}
		eng.ClickReservation(req.ReservationID, mods)
		resp.Handled = true
	case models.ActionClickCell:
		err = eng.ClickCell(req.ResourceID, req.DateKey, mods)
		resp.Handled = err == nil
	case models.ActionClickEmpty:
		resp.Handled = eng.ClickEmpty(mods, req.InsideSelected)
	case models.ActionDown:
		err = eng.PointerDown(s.dateKeyAt(eng, req), req.X)
		resp.Handled = err == nil
	case models.ActionMove:
		resp.Handled = eng.PointerMove(s.dateKeyAt(eng, req), req.X)
	case models.ActionUp:
		resp.Handled = eng.PointerUp()
	case models.ActionClear:
		eng.ClearSelection()
		resp.Handled = true
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}
	if err != nil {
		s.logger.Warn("Pointer: session=%s action=%s rejected: %v", req.SessionID, req.Action, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resp.Selection = s.selection(eng)
	return resp, nil
}

// UpdateView смена года, режима, масштаба или размера окна
func (s *Service) UpdateView(ctx context.Context, req *models.UpdateViewRequest) (*models.ScrollResponse, error) {
	sess, err := s.get(req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}
	eng := sess.engine

	var updates []viewport.Update
	if req.ViewportWidth != nil || req.ViewportHeight != nil {
		w, h := eng.ViewportSize()
		if req.ViewportWidth != nil {
			w = *req.ViewportWidth
		}
		if req.ViewportHeight != nil {
			h = *req.ViewportHeight
		}
		eng.Resize(w, h)
	}
	if req.ViewMode != nil {
		mode, err := domain.ParseViewMode(*req.ViewMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if updates, err = eng.SetViewMode(mode); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if req.Year != nil {
		if updates, err = eng.SetYear(*req.Year); err != nil {
			s.logger.Warn("UpdateView: session=%s invalid year=%d: %v", req.SessionID, *req.Year, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if req.Zoom != nil {
		updates = eng.SetZoom(*req.Zoom)
	}

	s.logger.Info("UpdateView: session=%s updated", req.SessionID)
	return &models.ScrollResponse{Updates: nonNilUpdates(updates)}, nil
}

// Reload перезагрузка данных после сохранения во внешней форме
func (s *Service) Reload(ctx context.Context, req *models.ReloadRequest) error {
	sess, err := s.get(req.SessionID, req.UserID)
	if err != nil {
		return err
	}

	if req.All {
		sess.engine.ReloadAll()
	} else {
		sess.engine.Reload()
	}
	s.logger.Info("Reload: session=%s all=%t", req.SessionID, req.All)
	return nil
}

// GetSelection текущий выбор, заготовка новой брони и открытая бронь
func (s *Service) GetSelection(ctx context.Context, userID int64, sessionID string) (*models.SelectionResponse, error) {
	sess, err := s.get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	resp := s.selection(sess.engine)
	return &resp, nil
}

// Sweep закрывает сессии без обращений дольше TTL
func (s *Service) Sweep() int {
	now := s.now()

	s.mu.Lock()
	var expired []*session
	for id, sess := range s.sessions {
		if sess.expired(now, s.cfg.TTL) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	active := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range expired {
		s.closeSession(sess)
		s.logger.Info("Sweep: session=%s of user=%d expired", sess.id, sess.userID)
	}
	if len(expired) > 0 {
		s.reportActive(active)
	}
	return len(expired)
}

// RunJanitor периодически вызывает Sweep до отмены контекста
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Shutdown закрывает все сессии
func (s *Service) Shutdown() {
	s.mu.Lock()
	all := make([]*session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		all = append(all, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, sess := range all {
		s.closeSession(sess)
	}
	s.reportActive(0)
}

// Active число открытых сессий
func (s *Service) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) get(sessionID string, userID int64) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	now := s.now()
	if !ok || sess.expired(now, s.cfg.TTL) {
		s.logger.Warn("session=%s not found", sessionID)
		return nil, ErrSessionNotFound
	}
	if sess.userID != userID {
		s.logger.Warn("session=%s access denied for user=%d", sessionID, userID)
		return nil, ErrAccessDenied
	}

	sess.touch(now)
	return sess, nil
}

func (s *Service) countByUser(userID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, sess := range s.sessions {
		if sess.userID == userID {
			n++
		}
	}
	return n
}

func (s *Service) selection(eng *engine.Engine) models.SelectionResponse {
	resp := models.SelectionResponse{
		Selection: eng.Selection(),
		Opened:    models.FromDomainDetail(eng.OpenedReservation()),
	}

	prefill, err := eng.Prefill()
	switch {
	case err == nil:
		resp.Prefill = &prefill
	case errors.Is(err, selection.ErrNothingToPrefill):
	default:
		s.logger.Warn("selection: prefill failed: %v", err)
	}
	return resp
}

// dateKeyAt ключ колонки из запроса или по координате X
func (s *Service) dateKeyAt(eng *engine.Engine, req *models.PointerRequest) string {
	if req.DateKey != "" {
		return req.DateKey
	}
	return eng.ColumnAt(req.X)
}

func (s *Service) expiresAt(sess *session) time.Time {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.lastSeen.Add(s.cfg.TTL)
}

func (s *Service) closeSession(sess *session) {
	if sess.unsubscribe != nil {
		sess.unsubscribe()
	}
	sess.engine.Close()
}

func (s *Service) reportActive(n int) {
	if s.metrics != nil {
		s.metrics.SetActiveSessions(n)
	}
}

func nonNilUpdates(updates []viewport.Update) []viewport.Update {
	if updates == nil {
		return []viewport.Update{}
	}
	return updates
}
