package axis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetCalendar/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_BucketCounts(t *testing.T) {
	tests := []struct {
		name string
		year int
		g    Granularity
		want int
	}{
		{"daily common year", 2025, Daily, 365},
		{"daily leap year", 2024, Daily, 366},
		{"weekly", 2025, Weekly, 52},
		{"weekly leap year", 2024, Weekly, 52},
		{"monthly", 2025, Monthly, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Generate(tt.year, tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Len())
			assert.Equal(t, day(tt.year, time.January, 1), a.At(0))
		})
	}
}

func TestGenerate_Invalid(t *testing.T) {
	_, err := Generate(2025, Granularity("hourly"))
	assert.ErrorIs(t, err, ErrInvalidGranularity)

	_, err = Generate(1800, Daily)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestIndexOf_DailyBijection(t *testing.T) {
	a, err := Generate(2024, Daily)
	require.NoError(t, err)

	for i := 0; i < a.Len(); i++ {
		require.Equal(t, i, a.IndexOf(a.At(i)))
		idx, ok := a.IndexOfKey(a.Key(i))
		require.True(t, ok)
		require.Equal(t, i, idx)
	}
}

func TestIndexOf_IgnoresClock(t *testing.T) {
	a, err := Generate(2025, Daily)
	require.NoError(t, err)

	noon := time.Date(2025, time.March, 3, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, a.IndexOf(day(2025, time.March, 3)), a.IndexOf(noon))
}

func TestIndexOf_ClampsOutsideYear(t *testing.T) {
	for _, g := range []Granularity{Daily, Weekly, Monthly} {
		a, err := Generate(2025, g)
		require.NoError(t, err)

		assert.Equal(t, 0, a.IndexOf(day(2024, time.December, 20)), g)
		assert.Equal(t, a.Len()-1, a.IndexOf(day(2026, time.January, 5)), g)
	}
}

func TestIndexOf_WeeklyAndMonthlyBuckets(t *testing.T) {
	weekly, err := Generate(2025, Weekly)
	require.NoError(t, err)
	assert.Equal(t, 0, weekly.IndexOf(day(2025, time.January, 7)))
	assert.Equal(t, 1, weekly.IndexOf(day(2025, time.January, 8)))
	// хвост года попадает в последнюю корзину
	assert.Equal(t, 51, weekly.IndexOf(day(2025, time.December, 31)))

	monthly, err := Generate(2025, Monthly)
	require.NoError(t, err)
	assert.Equal(t, 1, monthly.IndexOf(day(2025, time.February, 28)))
	assert.Equal(t, 11, monthly.IndexOf(day(2025, time.December, 31)))
}

func TestSpanOf_BackToBackIsAdjacent(t *testing.T) {
	a, err := Generate(2025, Daily)
	require.NoError(t, err)

	first := &domain.Reservation{ID: "1", ResourceID: "r1", Start: day(2025, time.March, 1), End: day(2025, time.March, 3)}
	second := &domain.Reservation{ID: "2", ResourceID: "r1", Start: day(2025, time.March, 3), End: day(2025, time.March, 5)}

	s1, e1, ok := a.SpanOf(first)
	require.True(t, ok)
	s2, _, ok := a.SpanOf(second)
	require.True(t, ok)

	assert.Equal(t, a.IndexOf(day(2025, time.March, 1)), s1)
	assert.Equal(t, s2, e1)
}

func TestSpanOf_SameDayRentalTakesOneCell(t *testing.T) {
	a, err := Generate(2025, Daily)
	require.NoError(t, err)

	r := &domain.Reservation{ID: "1", ResourceID: "r1", Start: day(2025, time.June, 10), End: day(2025, time.June, 10)}
	s, e, ok := a.SpanOf(r)
	require.True(t, ok)
	assert.Equal(t, 1, e-s)
}

func TestSpanOf_CrossingYearEdges(t *testing.T) {
	a, err := Generate(2025, Daily)
	require.NoError(t, err)

	r := &domain.Reservation{ID: "1", ResourceID: "r1", Start: day(2024, time.December, 28), End: day(2025, time.January, 3)}
	s, e, ok := a.SpanOf(r)
	require.True(t, ok)
	assert.Equal(t, 0, s)
	assert.Equal(t, 2, e)

	r = &domain.Reservation{ID: "2", ResourceID: "r1", Start: day(2025, time.December, 30), End: day(2026, time.January, 4)}
	s, e, ok = a.SpanOf(r)
	require.True(t, ok)
	assert.Equal(t, a.Len()-2, s)
	assert.Equal(t, a.Len(), e)

	r = &domain.Reservation{ID: "3", ResourceID: "r1", Start: day(2026, time.February, 1), End: day(2026, time.February, 4)}
	_, _, ok = a.SpanOf(r)
	assert.False(t, ok)
}

func TestRange_OrderIndependent(t *testing.T) {
	a, err := Generate(2025, Daily)
	require.NoError(t, err)

	x, y := day(2025, time.January, 10), day(2025, time.January, 15)
	forward := a.Range(x, y)
	backward := a.Range(y, x)

	assert.Equal(t, forward, backward)
	assert.Len(t, forward, 6)
	assert.Equal(t, x, forward[0])
	assert.Equal(t, y, forward[5])
	assert.Equal(t, a.RangeKeys(x, y), a.RangeKeys(y, x))
}

func TestCellWidth(t *testing.T) {
	assert.Equal(t, 40.0, CellWidth(Daily, 1))
	assert.Equal(t, 80.0, CellWidth(Weekly, 1))
	assert.Equal(t, 120.0, CellWidth(Monthly, 1))

	// масштаб зажимается в [0.6, 2.0]
	assert.Equal(t, 24.0, CellWidth(Daily, 0.1))
	assert.Equal(t, 80.0, CellWidth(Daily, 5))
	assert.Equal(t, 240.0, CellWidth(Monthly, 2))
	assert.Equal(t, 72.0, CellWidth(Monthly, 0.6))
	assert.Equal(t, 40.0, CellWidth(Daily, 0))
}

func TestIndexAtOffsetAndCenter(t *testing.T) {
	a, err := Generate(2025, Daily)
	require.NoError(t, err)

	assert.Equal(t, 0, a.IndexAtOffset(-5, 40))
	assert.Equal(t, 2, a.IndexAtOffset(119, 40))
	assert.Equal(t, a.Len()-1, a.IndexAtOffset(1e9, 40))

	assert.Equal(t, 0.0, CenterOffset(3, 40, 1000))
	assert.Equal(t, 100*40-(500-20.0), CenterOffset(100, 40, 1000))
}

func TestMonthGroups(t *testing.T) {
	for _, g := range []Granularity{Daily, Weekly, Monthly} {
		a, err := Generate(2024, g)
		require.NoError(t, err)

		groups := a.MonthGroups()
		require.Len(t, groups, 12, g)

		total := 0
		for _, mg := range groups {
			total += mg.Buckets
		}
		assert.Equal(t, a.Len(), total, g)
	}

	daily, _ := Generate(2024, Daily)
	assert.Equal(t, 29, daily.MonthGroups()[1].Buckets)
	assert.Equal(t, "February", daily.MonthGroups()[1].Name)
}

func TestForViewMode(t *testing.T) {
	assert.Equal(t, Daily, ForViewMode(domain.ViewYear))
	assert.Equal(t, Weekly, ForViewMode(domain.ViewQuarter))
	assert.Equal(t, Monthly, ForViewMode(domain.ViewMonth))
}
