package geometry

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	animationFPS      = 60
	springFrequency   = 8.0
	springDamping     = 1.0 // критическое демпфирование: без перелета
	settleEpsilon     = 0.5
	settleVelocityEps = 0.5
)

type rowMotion struct {
	pos    float64
	vel    float64
	target float64
}

// HeightAnimator плавно доводит высоты строк до целевых значений
// Новая строка сразу получает целевую высоту, меняющаяся строка
// движется к ней пружиной. Не потокобезопасен: владелец держит свой мьютекс.
type HeightAnimator struct {
	spring harmonica.Spring
	rows   map[string]*rowMotion
}

func NewHeightAnimator() *HeightAnimator {
	return &HeightAnimator{
		spring: harmonica.NewSpring(harmonica.FPS(animationFPS), springFrequency, springDamping),
		rows:   make(map[string]*rowMotion),
	}
}

// Target задает целевую высоту строки
func (a *HeightAnimator) Target(id string, height float64) {
	m, ok := a.rows[id]
	if !ok {
		a.rows[id] = &rowMotion{pos: height, target: height}
		return
	}
	m.target = height
}

// Height текущая (анимируемая) высота строки
func (a *HeightAnimator) Height(id string) float64 {
	if m, ok := a.rows[id]; ok {
		return m.pos
	}
	return 0
}

// Step продвигает все строки на один кадр
// Возвращает true, пока хотя бы одна строка в движении
func (a *HeightAnimator) Step() bool {
	moving := false
	for _, m := range a.rows {
		if m.pos == m.target && m.vel == 0 {
			continue
		}
		m.pos, m.vel = a.spring.Update(m.pos, m.vel, m.target)
		if math.Abs(m.pos-m.target) < settleEpsilon && math.Abs(m.vel) < settleVelocityEps {
			m.pos, m.vel = m.target, 0
			continue
		}
		moving = true
	}
	return moving
}

// Settle мгновенно завершает анимацию
func (a *HeightAnimator) Settle() {
	for _, m := range a.rows {
		m.pos, m.vel = m.target, 0
	}
}

// Animating есть ли строки в движении
func (a *HeightAnimator) Animating() bool {
	for _, m := range a.rows {
		if m.pos != m.target || m.vel != 0 {
			return true
		}
	}
	return false
}

// Retain забывает строки, которых больше нет
func (a *HeightAnimator) Retain(ids map[string]struct{}) {
	for id := range a.rows {
		if _, ok := ids[id]; !ok {
			delete(a.rows, id)
		}
	}
}

// Reset забывает все строки
func (a *HeightAnimator) Reset() {
	a.rows = make(map[string]*rowMotion)
}
