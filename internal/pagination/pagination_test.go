package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageNumbers(items []Item) []int {
	var nums []int
	for _, it := range items {
		if it.Kind == KindPage {
			nums = append(nums, it.Number)
		}
	}
	return nums
}

func ellipsisCount(items []Item) int {
	count := 0
	for _, it := range items {
		if it.Kind == KindEllipsis {
			count++
		}
	}
	return count
}

func TestWindowEmptyList(t *testing.T) {
	assert.Empty(t, Window(0, 1, 10))
	assert.Empty(t, Window(0, 7, 25))
}

func TestWindowSinglePage(t *testing.T) {
	items := Window(10, 1, 10)
	require.Len(t, items, 1)
	assert.Equal(t, KindPage, items[0].Kind)
	assert.Equal(t, 1, items[0].Number)
	assert.True(t, items[0].Current)
}

func TestWindowExactlyFivePages(t *testing.T) {
	for page := 1; page <= 5; page++ {
		items := Window(45, page, 10)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, pageNumbers(items))
		assert.Zero(t, ellipsisCount(items))
		for _, it := range items {
			assert.Equal(t, it.Number == page, it.Current)
		}
	}
}

func TestWindowSixPagesFirstPage(t *testing.T) {
	items := Window(60, 1, 10)
	// startPage stays 1, so only the right side collapses.
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, pageNumbers(items))
	assert.Zero(t, ellipsisCount(items))
}

func TestWindowFirstPageOfLargeSet(t *testing.T) {
	items := Window(1000, 1, 10)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 100}, pageNumbers(items))
	require.Equal(t, 1, ellipsisCount(items))
	assert.Equal(t, KindEllipsis, items[5].Kind)
	assert.True(t, items[0].Current)
}

func TestWindowMiddleOfLargeSet(t *testing.T) {
	items := Window(1000, 50, 10)
	assert.Equal(t, []int{1, 48, 49, 50, 51, 52, 100}, pageNumbers(items))
	assert.Equal(t, 2, ellipsisCount(items))
	assert.Equal(t, KindEllipsis, items[1].Kind)
	assert.Equal(t, KindEllipsis, items[len(items)-2].Kind)
	for _, it := range items {
		assert.Equal(t, it.Kind == KindPage && it.Number == 50, it.Current)
	}
}

func TestWindowLastPageOfLargeSet(t *testing.T) {
	items := Window(1000, 100, 10)
	assert.Equal(t, []int{1, 96, 97, 98, 99, 100}, pageNumbers(items))
	require.Equal(t, 1, ellipsisCount(items))
	assert.Equal(t, KindEllipsis, items[1].Kind)
	assert.True(t, items[len(items)-1].Current)
}

func TestWindowNearBoundaries(t *testing.T) {
	// Page 2 of 100: window is [1..5], no left ellipsis.
	items := Window(1000, 2, 10)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 100}, pageNumbers(items))
	assert.Equal(t, 1, ellipsisCount(items))

	// Page 3: startPage 1, still no left ellipsis.
	items = Window(1000, 3, 10)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 100}, pageNumbers(items))

	// Page 4: window [2..6], startPage == 2 so the pinned first page sits
	// directly next to the window without an ellipsis.
	items = Window(1000, 4, 10)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 100}, pageNumbers(items))
	assert.Equal(t, 1, ellipsisCount(items))

	// Page 97: mirrored on the right edge.
	items = Window(1000, 97, 10)
	assert.Equal(t, []int{1, 95, 96, 97, 98, 99, 100}, pageNumbers(items))
	assert.Equal(t, 1, ellipsisCount(items))
}

func TestWindowNeverAdjacentEllipses(t *testing.T) {
	for total := 0; total <= 300; total += 7 {
		for page := 1; page <= TotalPages(total, 10); page++ {
			items := Window(total, page, 10)
			for i := 1; i < len(items); i++ {
				if items[i].Kind == KindEllipsis {
					assert.NotEqual(t, KindEllipsis, items[i-1].Kind,
						"adjacent ellipses at total=%d page=%d", total, page)
				}
			}
		}
	}
}

func TestWindowPartialLastPage(t *testing.T) {
	// 41 items at size 10 round up to 5 pages.
	items := Window(41, 5, 10)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pageNumbers(items))
	assert.True(t, items[4].Current)
}

func TestPagerRejectsOutOfRange(t *testing.T) {
	var fired []int
	p := NewPager(10, func(page int) { fired = append(fired, page) })
	p.SetTotal(35) // 4 pages

	assert.False(t, p.Request(0))
	assert.False(t, p.Request(-3))
	assert.False(t, p.Request(5))
	assert.False(t, p.Request(1)) // already current
	assert.Equal(t, 1, p.Page())
	assert.Empty(t, fired)

	assert.True(t, p.Request(4))
	assert.Equal(t, []int{4}, fired)
	assert.False(t, p.Request(99))
	assert.Equal(t, 4, p.Page())
}

func TestPagerBoundsNeverEscape(t *testing.T) {
	p := NewPager(10, nil)
	p.SetTotal(100)
	for _, req := range []int{-10, 0, 1, 3, 11, 10, 7, 200, 1} {
		p.Request(req)
		assert.GreaterOrEqual(t, p.Page(), 1)
		assert.LessOrEqual(t, p.Page(), p.TotalPages())
	}
}

func TestPagerPrevNextBoundaries(t *testing.T) {
	p := NewPager(10, nil)
	p.SetTotal(25) // 3 pages

	assert.False(t, p.HasPrev())
	assert.False(t, p.Prev())
	assert.Equal(t, 1, p.Page())

	assert.True(t, p.Next())
	assert.True(t, p.Next())
	assert.Equal(t, 3, p.Page())
	assert.False(t, p.HasNext())
	assert.False(t, p.Next())
	assert.Equal(t, 3, p.Page())
}

func TestPagerEmptyListHasNoControls(t *testing.T) {
	p := NewPager(10, nil)
	assert.Empty(t, p.Items())
	assert.False(t, p.Next())
	assert.False(t, p.Prev())
	assert.False(t, p.Request(1))
}

func TestPagerResetKeepsCallbackSilent(t *testing.T) {
	calls := 0
	p := NewPager(10, func(int) { calls++ })
	p.SetTotal(100)
	require.True(t, p.Request(7))
	require.Equal(t, 1, calls)

	p.Reset()
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 1, calls)
}
