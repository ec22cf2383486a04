package lanes

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_Empty(t *testing.T) {
	a := Allocate(nil)
	assert.Equal(t, 1, a.LaneCount)
	assert.Empty(t, a.LaneByID)
}

func TestAllocate_NoOverlapSingleLane(t *testing.T) {
	a := Allocate([]Span{
		{ID: "a", Start: 0, End: 3},
		{ID: "b", Start: 5, End: 8},
		{ID: "c", Start: 10, End: 11},
	})

	assert.Equal(t, 1, a.LaneCount)
	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, 0, a.Lane(id), id)
	}
}

func TestAllocate_BackToBackShareLane(t *testing.T) {
	// 1-3 марта и 3-5 марта: день возврата свободен
	a := Allocate([]Span{
		{ID: "first", Start: 59, End: 61},
		{ID: "second", Start: 61, End: 63},
	})

	assert.Equal(t, 1, a.LaneCount)
	assert.Equal(t, 0, a.Lane("first"))
	assert.Equal(t, 0, a.Lane("second"))
}

func TestAllocate_OverlappingSplit(t *testing.T) {
	a := Allocate([]Span{
		{ID: "long", Start: 0, End: 10},
		{ID: "mid", Start: 2, End: 5},
		{ID: "late", Start: 6, End: 12},
		{ID: "tail", Start: 10, End: 14},
	})

	require.Equal(t, 2, a.LaneCount)
	assert.Equal(t, 0, a.Lane("long"))
	assert.Equal(t, 1, a.Lane("mid"))
	assert.Equal(t, 1, a.Lane("late"))
	assert.Equal(t, 0, a.Lane("tail"))
}

func TestAllocate_InputOrderDoesNotMatter(t *testing.T) {
	spans := []Span{
		{ID: "c", Start: 4, End: 9},
		{ID: "a", Start: 0, End: 5},
		{ID: "b", Start: 1, End: 3},
	}
	a := Allocate(spans)

	assert.Equal(t, 2, a.LaneCount)
	assert.Equal(t, 0, a.Lane("a"))
	assert.Equal(t, 1, a.Lane("b"))
	assert.Equal(t, 1, a.Lane("c"))
	// исходный срез не сортируется на месте
	assert.Equal(t, "c", spans[0].ID)
}

func TestAllocate_TiesKeepInputOrder(t *testing.T) {
	a := Allocate([]Span{
		{ID: "x", Start: 0, End: 4},
		{ID: "y", Start: 0, End: 4},
		{ID: "z", Start: 0, End: 4},
	})

	assert.Equal(t, 3, a.LaneCount)
	assert.Equal(t, 0, a.Lane("x"))
	assert.Equal(t, 1, a.Lane("y"))
	assert.Equal(t, 2, a.Lane("z"))
}

func TestAllocate_RandomizedInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rnd.Intn(30)
		spans := make([]Span, n)
		for i := range spans {
			start := rnd.Intn(60)
			spans[i] = Span{ID: fmt.Sprintf("r%d", i), Start: start, End: start + 1 + rnd.Intn(10)}
		}

		a := Allocate(spans)

		depth := MaxDepth(spans)
		if depth == 0 {
			depth = 1
		}
		require.Equal(t, depth, a.LaneCount, "round %d", round)

		for i := range spans {
			for j := i + 1; j < len(spans); j++ {
				if spans[i].Overlaps(spans[j]) {
					require.NotEqual(t, a.Lane(spans[i].ID), a.Lane(spans[j].ID),
						"round %d: %v and %v share a lane", round, spans[i], spans[j])
				}
			}
		}
	}
}

func TestMaxDepth(t *testing.T) {
	assert.Equal(t, 0, MaxDepth(nil))
	assert.Equal(t, 1, MaxDepth([]Span{{Start: 0, End: 2}, {Start: 2, End: 4}}))
	assert.Equal(t, 2, MaxDepth([]Span{{Start: 0, End: 3}, {Start: 2, End: 4}}))
}
