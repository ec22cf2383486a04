package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetCalendar/internal/calendar/axis"
)

var (
	plain = Modifiers{}
	ctrl  = Modifiers{Ctrl: true}
	meta  = Modifiers{Meta: true}
	shift = Modifiers{Shift: true}
)

func newMachine(t *testing.T) *Machine {
	t.Helper()
	ax, err := axis.Generate(2025, axis.Daily)
	require.NoError(t, err)
	return NewMachine(ax, 3)
}

func TestSet_NoDuplicates(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Add(Date("2025-01-10")))
	assert.False(t, s.Add(Date("2025-01-10")))
	// тот же ключ другого вида - другой элемент
	assert.True(t, s.Add(Resource("2025-01-10")))
	assert.Equal(t, 2, s.Len())

	assert.False(t, s.Toggle(Date("2025-01-10")))
	assert.True(t, s.Toggle(Date("2025-01-11")))
	assert.Equal(t, []string{"2025-01-11"}, s.Keys(KindDate))

	s.ReplaceKind(KindDate, Date("2025-02-01"), Date("2025-02-01"), Resource("ignored"))
	assert.Equal(t, []string{"2025-02-01"}, s.Keys(KindDate))
	assert.Equal(t, []string{"2025-01-10"}, s.Keys(KindResource))
}

func TestPlainClickReplacesEverything(t *testing.T) {
	m := newMachine(t)
	m.ClickResource("car1", plain)
	require.NoError(t, m.ClickDate("2025-01-10", ctrl))

	assert.True(t, m.ClickReservation("b1", plain))

	snap := m.Snapshot()
	assert.Empty(t, snap.Resources)
	assert.Empty(t, snap.Dates)
	assert.Equal(t, []string{"b1"}, snap.Reservations)
}

func TestShiftClickDateRange(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.ClickDate("2025-01-10", plain))
	require.NoError(t, m.ClickDate("2025-01-15", shift))

	assert.Equal(t, []string{
		"2025-01-10", "2025-01-11", "2025-01-12",
		"2025-01-13", "2025-01-14", "2025-01-15",
	}, m.Snapshot().Dates)
	assert.Equal(t, "2025-01-10", m.Anchor())

	// повторный shift от того же якоря в обратную сторону
	require.NoError(t, m.ClickDate("2025-01-08", shift))
	assert.Equal(t, []string{"2025-01-08", "2025-01-09", "2025-01-10"}, m.Snapshot().Dates)
}

func TestShiftClickWithoutAnchorIsPlain(t *testing.T) {
	m := newMachine(t)
	m.ClickResource("car1", plain)
	require.NoError(t, m.ClickDate("2025-03-01", shift))

	snap := m.Snapshot()
	assert.Equal(t, []string{"2025-03-01"}, snap.Dates)
	assert.Empty(t, snap.Resources)
}

func TestCtrlClickTogglesDateKeepsResource(t *testing.T) {
	m := newMachine(t)
	m.ClickResource("car7", plain)

	require.NoError(t, m.ClickDate("2025-05-05", ctrl))
	snap := m.Snapshot()
	assert.Equal(t, []string{"car7"}, snap.Resources)
	assert.Equal(t, []string{"2025-05-05"}, snap.Dates)

	require.NoError(t, m.ClickDate("2025-05-05", meta))
	snap = m.Snapshot()
	assert.Equal(t, []string{"car7"}, snap.Resources)
	assert.Empty(t, snap.Dates)
}

func TestShiftClickResourceKeepsDates(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.ClickDate("2025-01-10", plain))
	m.ClickResource("car1", ctrl)
	assert.False(t, m.ClickReservation("b1", ctrl))

	m.ClickResource("car2", shift)
	snap := m.Snapshot()
	assert.Equal(t, []string{"car2"}, snap.Resources)
	assert.Equal(t, []string{"2025-01-10"}, snap.Dates)
	assert.Empty(t, snap.Reservations)
}

func TestClickCellSeedsThreeItems(t *testing.T) {
	m := newMachine(t)
	m.ClickResource("car9", plain)
	require.NoError(t, m.ClickCell("car1", "2025-07-04", plain))

	snap := m.Snapshot()
	assert.Equal(t, []string{"car1"}, snap.Resources)
	assert.Equal(t, []string{"2025-07-04"}, snap.Dates)
	require.Len(t, snap.Cells, 1)
	assert.Equal(t, "car1", snap.Cells[0].ResourceKey)
	assert.Equal(t, "2025-07-04", snap.Cells[0].DateKey)

	// ctrl трогает только ячейки
	require.NoError(t, m.ClickCell("car1", "2025-07-05", ctrl))
	snap = m.Snapshot()
	assert.Len(t, snap.Cells, 2)
	assert.Equal(t, []string{"2025-07-04"}, snap.Dates)

	require.NoError(t, m.ClickCell("car2", "2025-07-06", shift))
	snap = m.Snapshot()
	assert.Equal(t, []string{"car2"}, snap.Resources)
	assert.Equal(t, []string{"2025-07-04", "2025-07-05", "2025-07-06"}, snap.Dates)
	assert.Len(t, snap.Cells, 1)
}

func TestClickInvalidDate(t *testing.T) {
	m := newMachine(t)
	assert.Error(t, m.ClickDate("10/01/2025", plain))
	assert.Error(t, m.ClickCell("car1", "", plain))
	assert.Error(t, m.PointerDown("nope", 0))
}

func TestClickEmpty(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.ClickCell("car1", "2025-07-04", plain))

	assert.False(t, m.ClickEmpty(ctrl, false))
	assert.False(t, m.ClickEmpty(plain, true))
	assert.False(t, m.Snapshot().Empty())

	assert.True(t, m.ClickEmpty(plain, false))
	assert.True(t, m.Snapshot().Empty())
	assert.False(t, m.ClickEmpty(plain, false))
}

func TestClickEmpty_ForgetsAnchor(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.ClickDate("2025-03-01", plain))
	require.True(t, m.ClickEmpty(plain, false))
	assert.Empty(t, m.Anchor())

	// shift без опорной даты выбирает одну дату
	require.NoError(t, m.ClickDate("2025-03-05", shift))
	assert.Equal(t, []string{"2025-03-05"}, m.Snapshot().Dates)
}

func TestDrag_SimpleClickStaysSimple(t *testing.T) {
	m := newMachine(t)
	require.NoError(t, m.PointerDown("2025-02-01", 100))
	assert.False(t, m.PointerMove("2025-02-01", 102))
	assert.True(t, m.Snapshot().Empty())

	assert.False(t, m.PointerUp())
}

func TestDrag_SelectsRangeAndCommits(t *testing.T) {
	m := newMachine(t)
	m.ClickResource("car1", plain)

	require.NoError(t, m.PointerDown("2025-02-01", 100))
	assert.True(t, m.PointerMove("2025-02-02", 140))
	assert.True(t, m.Dragging())
	assert.Equal(t, []string{"2025-02-01", "2025-02-02"}, m.Snapshot().Dates)

	// та же колонка - ничего не пересчитывается
	assert.False(t, m.PointerMove("2025-02-02", 150))

	assert.True(t, m.PointerMove("2025-02-04", 230))
	assert.Equal(t, []string{"2025-02-01", "2025-02-02", "2025-02-03", "2025-02-04"}, m.Snapshot().Dates)

	// назад за точку старта
	assert.True(t, m.PointerMove("2025-01-31", 60))
	assert.Equal(t, []string{"2025-01-31", "2025-02-01"}, m.Snapshot().Dates)

	assert.True(t, m.PointerUp())
	assert.False(t, m.Dragging())
	assert.Equal(t, "2025-02-01", m.Anchor())
	// перетаскивание меняет только даты
	assert.Equal(t, []string{"car1"}, m.Snapshot().Resources)

	// после отпускания движение ничего не меняет
	assert.False(t, m.PointerMove("2025-03-01", 900))
}

func TestSeedToday(t *testing.T) {
	m := newMachine(t)
	assert.True(t, m.SeedToday(time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"2025-06-01"}, m.Snapshot().Dates)
	assert.Equal(t, "2025-06-01", m.Anchor())

	assert.False(t, m.SeedToday(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPrefill(t *testing.T) {
	m := newMachine(t)
	_, err := m.Prefill()
	assert.ErrorIs(t, err, ErrNothingToPrefill)

	require.NoError(t, m.ClickCell("car3", "2025-04-10", plain))
	require.NoError(t, m.ClickDate("2025-04-13", shift))

	p, err := m.Prefill()
	require.NoError(t, err)
	assert.Equal(t, "car3", p.ResourceID)
	assert.Equal(t, "2025-04-10T10:00", p.StartInput())
	assert.Equal(t, "2025-04-13T10:00", p.EndInput())

	m.Clear()
	m.ClickResource("car4", plain)
	p, err = m.Prefill()
	require.NoError(t, err)
	assert.Equal(t, "car4", p.ResourceID)
	assert.Equal(t, "", p.StartInput())
}

func TestWeeklyAxisRange(t *testing.T) {
	ax, err := axis.Generate(2025, axis.Weekly)
	require.NoError(t, err)
	m := NewMachine(ax, 3)

	require.NoError(t, m.ClickDate("2025-01-01", plain))
	require.NoError(t, m.ClickDate("2025-01-22", shift))
	assert.Equal(t, []string{"2025-01-01", "2025-01-08", "2025-01-15", "2025-01-22"}, m.Snapshot().Dates)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("cell")
	require.NoError(t, err)
	assert.Equal(t, KindCell, k)

	_, err = ParseKind("car")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
