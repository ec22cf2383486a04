package tui

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Масштаб: одна колонка терминала - cellPx пикселей сетки, одна строка - linePx
const (
	cellPx = 8.0
	linePx = 17.0
)

type cell struct {
	text  string // "" - продолжение широкого символа
	style styleID
}

type line []cell

func newLine(width int) line {
	if width < 0 {
		width = 0
	}
	l := make(line, width)
	for i := range l {
		l[i] = cell{text: " "}
	}
	return l
}

// put пишет текст с колонки col, учитывая ширину символов
func (l line) put(col int, text string, style styleID) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > len(l) {
			return
		}
		if col >= 0 {
			l[col] = cell{text: string(r), style: style}
			for k := 1; k < w; k++ {
				l[col+k] = cell{style: style}
			}
		}
		col += w
	}
}

// fill заполняет [from, to) символом ch
func (l line) fill(from, to int, ch string, style styleID) {
	from, to = clampRange(from, to, len(l))
	for i := from; i < to; i++ {
		l[i] = cell{text: ch, style: style}
	}
}

// paint меняет стиль [from, to), не трогая текст
func (l line) paint(from, to int, style styleID) {
	from, to = clampRange(from, to, len(l))
	for i := from; i < to; i++ {
		l[i].style = style
	}
}

func (l line) render() string {
	var b strings.Builder
	var run strings.Builder
	current := styleNone
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if current == styleNone {
			b.WriteString(run.String())
		} else {
			b.WriteString(palette[current].Render(run.String()))
		}
		run.Reset()
	}
	for _, c := range l {
		if c.style != current {
			flush()
			current = c.style
		}
		run.WriteString(c.text)
	}
	flush()
	return b.String()
}

func clampRange(from, to, n int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if to < from {
		to = from
	}
	return from, to
}

// toCols переводит отрезок сетки [left, left+width) в колонки терминала
func toCols(left, width, scrollLeft float64) (int, int) {
	from := int(math.Round((left - scrollLeft) / cellPx))
	to := int(math.Round((left + width - scrollLeft) / cellPx))
	if to <= from {
		to = from + 1
	}
	return from, to
}

// fitLabel подпись под count колонок; у дневных подписей остается число
func fitLabel(text string, count int) string {
	if runewidth.StringWidth(text) <= count {
		return text
	}
	if i := strings.LastIndexByte(text, ' '); i >= 0 && runewidth.StringWidth(text[i+1:]) <= count {
		return text[i+1:]
	}
	return runewidth.Truncate(text, count, "")
}
