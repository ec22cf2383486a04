package viewport

import (
	"sync"
	"time"
)

// DefaultFrameInterval длительность одного кадра (~60 FPS)
const DefaultFrameInterval = 16 * time.Millisecond

// FrameScheduler откладывает вызов до следующего кадра
type FrameScheduler interface {
	Schedule(fn func())
}

// TimerScheduler следующий кадр по таймеру
type TimerScheduler struct {
	interval time.Duration
}

func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TimerScheduler{interval: interval}
}

func (s *TimerScheduler) Schedule(fn func()) {
	time.AfterFunc(s.interval, fn)
}

// ManualScheduler кадр наступает по явному вызову Tick
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(fn func()) {
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
}

// Tick выполняет все отложенные вызовы, возвращает их число
func (s *ManualScheduler) Tick() int {
	s.mu.Lock()
	fns := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Pending число ожидающих вызовов
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
