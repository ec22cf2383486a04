package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNetwork = errors.New("network down")

// прокрутка к правому краю сетки шириной 10000px
var atRight = HorizontalViewport{ScrollLeft: 8500, ClientWidth: 1000, ScrollWidth: 10000}
var atMiddle = HorizontalViewport{ScrollLeft: 4000, ClientWidth: 1000, ScrollWidth: 10000}
var atLeft = HorizontalViewport{ScrollLeft: 500, ClientWidth: 1000, ScrollWidth: 10000}

func TestResourcePager_ForwardOnly(t *testing.T) {
	p := NewResourcePager(50, 100)

	req := p.Reset()
	assert.Equal(t, Request{Generation: 1, Page: 1, PageSize: 50, Direction: DirectionInitial}, req)

	// пока первая страница в полете, прокрутка ничего не запрашивает
	_, ok := p.OnScroll(VerticalViewport{ScrollTop: 1000, ClientHeight: 500, ScrollHeight: 1500})
	assert.False(t, ok)

	require.True(t, p.Complete(req, 50, nil))
	assert.True(t, p.HasMore())

	// далеко от низа
	_, ok = p.OnScroll(VerticalViewport{ScrollTop: 0, ClientHeight: 500, ScrollHeight: 1700})
	assert.False(t, ok)

	// в пределах 100px от низа
	req, ok = p.OnScroll(VerticalViewport{ScrollTop: 1150, ClientHeight: 500, ScrollHeight: 1700})
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, DirectionNext, req.Direction)

	require.True(t, p.Complete(req, 12, nil))
	assert.False(t, p.HasMore())

	_, ok = p.OnScroll(VerticalViewport{ScrollTop: 1200, ClientHeight: 500, ScrollHeight: 1700})
	assert.False(t, ok)
	assert.Equal(t, 2, p.Status().LoadedPages)
}

func TestResourcePager_FailureReleasesLatch(t *testing.T) {
	p := NewResourcePager(50, 100)
	require.True(t, p.Complete(p.Reset(), 50, nil))

	bottom := VerticalViewport{ScrollTop: 1200, ClientHeight: 500, ScrollHeight: 1700}

	req, ok := p.OnScroll(bottom)
	require.True(t, ok)
	assert.False(t, p.Complete(req, 0, errNetwork))
	assert.False(t, p.Loading())
	assert.True(t, p.HasMore())

	retry, ok := p.OnScroll(bottom)
	require.True(t, ok)
	assert.Equal(t, req.Page, retry.Page)
}

func TestResourcePager_StaleGenerationIgnored(t *testing.T) {
	p := NewResourcePager(50, 100)
	old := p.Reset()
	fresh := p.Reset()

	assert.False(t, p.Complete(old, 50, nil))
	assert.True(t, p.Loading())
	assert.True(t, p.Complete(fresh, 10, nil))
	assert.False(t, p.HasMore())
}

func TestBookingPager_TwoFullPagesThenShort(t *testing.T) {
	p := NewBookingPager(200, 0.8, 0.2)

	req := p.Reset(1)
	require.True(t, p.Complete(req, 200, nil))
	assert.True(t, p.HasMoreNext())
	assert.False(t, p.HasMorePrev())

	reqs := p.OnScroll(atRight)
	require.Len(t, reqs, 1)
	assert.Equal(t, 2, reqs[0].Page)
	require.True(t, p.Complete(reqs[0], 200, nil))
	assert.True(t, p.HasMoreNext())
	assert.False(t, p.HasMorePrev())

	reqs = p.OnScroll(atRight)
	require.Len(t, reqs, 1)
	assert.Equal(t, 3, reqs[0].Page)
	require.True(t, p.Complete(reqs[0], 50, nil))
	assert.False(t, p.HasMoreNext())
	assert.False(t, p.HasMorePrev())

	assert.Empty(t, p.OnScroll(atRight))

	minPage, maxPage := p.Window()
	assert.Equal(t, 1, minPage)
	assert.Equal(t, 3, maxPage)
	assert.Equal(t, []int{1, 2, 3}, p.Status().LoadedPages)
}

func TestBookingPager_ThresholdsAndLatch(t *testing.T) {
	p := NewBookingPager(200, 0.8, 0.2)
	req := p.Reset(1)

	// стартовая страница держит защелку next
	assert.Empty(t, p.OnScroll(atRight))
	require.True(t, p.Complete(req, 200, nil))

	assert.Empty(t, p.OnScroll(atMiddle))

	reqs := p.OnScroll(atRight)
	require.Len(t, reqs, 1)
	// повторная прокрутка, пока запрос в полете
	assert.Empty(t, p.OnScroll(atRight))
	assert.True(t, p.Status().LoadingNext)
}

func TestBookingPager_PrevFromLaterStart(t *testing.T) {
	p := NewBookingPager(200, 0.8, 0.2)

	req := p.Reset(3)
	require.True(t, p.Complete(req, 200, nil))
	assert.True(t, p.HasMorePrev())

	// узкая сетка: оба порога сразу
	both := HorizontalViewport{ScrollLeft: 0, ClientWidth: 900, ScrollWidth: 1000}
	reqs := p.OnScroll(both)
	require.Len(t, reqs, 2)
	assert.Equal(t, DirectionNext, reqs[0].Direction)
	assert.Equal(t, 4, reqs[0].Page)
	assert.Equal(t, DirectionPrev, reqs[1].Direction)
	assert.Equal(t, 2, reqs[1].Page)

	require.True(t, p.Complete(reqs[1], 200, nil))
	require.True(t, p.Complete(reqs[0], 200, nil))
	minPage, maxPage := p.Window()
	assert.Equal(t, 2, minPage)
	assert.Equal(t, 4, maxPage)
	assert.True(t, p.HasMorePrev())

	reqs = p.OnScroll(atLeft)
	require.Len(t, reqs, 1)
	assert.Equal(t, 1, reqs[0].Page)
	require.True(t, p.Complete(reqs[0], 200, nil))
	assert.False(t, p.HasMorePrev())
	assert.Empty(t, p.OnScroll(atLeft))
}

func TestBookingPager_FailureKeepsHasMore(t *testing.T) {
	p := NewBookingPager(200, 0.8, 0.2)
	require.True(t, p.Complete(p.Reset(1), 200, nil))

	reqs := p.OnScroll(atRight)
	require.Len(t, reqs, 1)
	assert.False(t, p.Complete(reqs[0], 0, errNetwork))
	assert.True(t, p.HasMoreNext())
	assert.False(t, p.Loaded(2))

	retry := p.OnScroll(atRight)
	require.Len(t, retry, 1)
	assert.Equal(t, 2, retry[0].Page)
}

func TestBookingPager_FailedInitialRetriesStartPage(t *testing.T) {
	p := NewBookingPager(200, 0.8, 0.2)
	assert.False(t, p.Complete(p.Reset(1), 0, errNetwork))

	reqs := p.OnScroll(atRight)
	require.Len(t, reqs, 1)
	assert.Equal(t, 1, reqs[0].Page)
}

func TestBookingPager_ResetDropsLateResponses(t *testing.T) {
	p := NewBookingPager(200, 0.8, 0.2)
	require.True(t, p.Complete(p.Reset(1), 200, nil))

	inFlight := p.OnScroll(atRight)
	require.Len(t, inFlight, 1)

	fresh := p.Reset(1)
	assert.Equal(t, uint64(2), fresh.Generation)
	assert.Empty(t, p.Status().LoadedPages)

	// ответ старого поколения не ломает новое окно
	assert.False(t, p.Complete(inFlight[0], 200, nil))
	minPage, maxPage := p.Window()
	assert.Equal(t, 1, minPage)
	assert.Equal(t, 1, maxPage)
	assert.True(t, p.Status().LoadingNext)

	require.True(t, p.Complete(fresh, 20, nil))
	assert.False(t, p.HasMoreNext())
}

func TestBookingPager_NoScrollWidth(t *testing.T) {
	p := NewBookingPager(200, 0.8, 0.2)
	require.True(t, p.Complete(p.Reset(1), 200, nil))
	assert.Empty(t, p.OnScroll(HorizontalViewport{}))
}
