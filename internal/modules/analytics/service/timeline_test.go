package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestResolveTimeframe(t *testing.T) {
	cases := map[string]struct {
		name string
		days int
	}{
		"7days":    {"7days", 7},
		"15days":   {"15days", 15},
		"1month":   {"1month", 30},
		"quarter":  {"quarter", 90},
		"halfyear": {"halfyear", 180},
		"year":     {"year", 365},
		"decade":   {"7days", 7},
		"":         {"7days", 7},
	}

	for input, want := range cases {
		name, days := ResolveTimeframe(input)
		assert.Equal(t, want.name, name, input)
		assert.Equal(t, want.days, days, input)
	}
}

func TestNewWindow(t *testing.T) {
	win := newWindow(fixedNow, 7)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), win.start)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), win.today)

	// non-UTC clocks are normalized first
	tokyo := time.FixedZone("JST", 9*3600)
	win = newWindow(time.Date(2025, 3, 16, 1, 0, 0, 0, tokyo), 7)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), win.today)
}

func TestDayBuckets(t *testing.T) {
	for _, tf := range []string{"7days", "15days", "1month", "quarter", "halfyear", "year"} {
		_, days := ResolveTimeframe(tf)
		win := newWindow(fixedNow, days)
		b, err := newBucketer(GroupByDay, win, []string{"count"})
		require.NoError(t, err)

		expected := int(win.today.Sub(win.start).Hours()/24) + 1
		assert.Len(t, b.buckets, expected, tf)
		assert.Len(t, b.buckets, days, tf)
	}

	b, err := newBucketer(GroupByDay, newWindow(fixedNow, 7), []string{"count"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", b.buckets[0].Date)
	assert.Equal(t, "Mar 09", b.buckets[0].Label)
	assert.Equal(t, "2025-03-15", b.buckets[6].Date)
	assert.Equal(t, 0, b.buckets[3].Counts["count"])

	assert.Equal(t, -1, b.index(time.Date(2025, 3, 8, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, 0, b.index(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, b.index(time.Date(2025, 3, 15, 11, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, b.index(time.Date(2025, 3, 15, 13, 0, 0, 0, time.UTC)))
}

func TestWeekBuckets(t *testing.T) {
	b, err := newBucketer(GroupByWeek, newWindow(fixedNow, 30), []string{"count"})
	require.NoError(t, err)
	require.Len(t, b.buckets, 5)

	assert.Equal(t, "Week 1", b.buckets[0].Name)
	assert.Equal(t, "2025-02-14", b.buckets[0].Start)
	assert.Equal(t, "2025-02-20", b.buckets[0].End)
	assert.Equal(t, "Week 5", b.buckets[4].Name)
	assert.Equal(t, "2025-03-14", b.buckets[4].Start)
	assert.Equal(t, "2025-03-15", b.buckets[4].End)

	assert.Equal(t, 0, b.index(time.Date(2025, 2, 20, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, b.index(time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 4, b.index(time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)))
}

func TestMonthBuckets(t *testing.T) {
	b, err := newBucketer(GroupByMonth, newWindow(fixedNow, 90), []string{"count"})
	require.NoError(t, err)
	require.Len(t, b.buckets, 4)

	names := make([]string, 0, len(b.buckets))
	for _, bucket := range b.buckets {
		names = append(names, bucket.Name)
	}
	assert.Equal(t, []string{"Dec", "Jan", "Feb", "Mar"}, names)
	assert.Equal(t, "2024-12-16", b.buckets[0].Start)
	assert.Equal(t, "2024-12-31", b.buckets[0].End)
	assert.Equal(t, "2025-02-01", b.buckets[2].Start)
	assert.Equal(t, "2025-02-28", b.buckets[2].End)
	assert.Equal(t, "2025-03-15", b.buckets[3].End)

	assert.Equal(t, -1, b.index(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, b.index(time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, b.index(time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, b.index(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	b, err = newBucketer(GroupByMonth, newWindow(fixedNow, 365), nil)
	require.NoError(t, err)
	assert.Len(t, b.buckets, 13)
}

func TestUnknownGrouping(t *testing.T) {
	_, err := newBucketer("hour", newWindow(fixedNow, 7), nil)
	assert.Error(t, err)
}
