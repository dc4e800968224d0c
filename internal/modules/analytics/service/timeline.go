package service

import (
	"fmt"
	"time"

	"anoa.com/langanalytics/internal/modules/analytics/dto"
)

const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"

	DefaultTimeframe = "7days"

	dateLayout  = "2006-01-02"
	labelLayout = "Jan 02"
	monthLayout = "Jan"
	week        = 7 * 24 * time.Hour
)

var timeframeDays = map[string]int{
	"7days":    7,
	"15days":   15,
	"1month":   30,
	"quarter":  90,
	"halfyear": 180,
	"year":     365,
}

var defaultOrganizationGrouping = map[string]string{
	"7days":    GroupByDay,
	"15days":   GroupByDay,
	"1month":   GroupByWeek,
	"quarter":  GroupByMonth,
	"halfyear": GroupByMonth,
	"year":     GroupByMonth,
}

// organization status -> timeline series key
var statusSeries = map[string]string{
	"onboard":            "onboarded",
	"contacted":          "contacted",
	"standby":            "standby",
	"under_verification": "verification",
}

const verifiedSeries = "verified"

// ResolveTimeframe returns the timeframe name actually used and its length in days.
// Unknown names fall back to 7days.
func ResolveTimeframe(name string) (string, int) {
	if days, ok := timeframeDays[name]; ok {
		return name, days
	}
	return DefaultTimeframe, timeframeDays[DefaultTimeframe]
}

func IsValidGroupBy(groupBy string) bool {
	return groupBy == GroupByDay || groupBy == GroupByWeek || groupBy == GroupByMonth
}

// window covers the days calendar days ending today, starting at midnight UTC.
type window struct {
	start time.Time
	today time.Time
	now   time.Time
}

func newWindow(now time.Time, days int) window {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return window{
		start: today.AddDate(0, 0, -(days - 1)),
		today: today,
		now:   now,
	}
}

// bucketer maps timestamps onto a fixed, chronological list of buckets.
type bucketer struct {
	groupBy string
	win     window
	buckets []dto.Bucket
}

func newBucketer(groupBy string, win window, series []string) (*bucketer, error) {
	b := &bucketer{groupBy: groupBy, win: win}

	switch groupBy {
	case GroupByDay:
		for d := win.start; !d.After(win.today); d = d.AddDate(0, 0, 1) {
			b.buckets = append(b.buckets, dto.Bucket{
				Date:  d.Format(dateLayout),
				Label: d.Format(labelLayout),
			})
		}
	case GroupByWeek:
		for start, n := win.start, 1; !start.After(win.now); start, n = start.Add(week), n+1 {
			end := start.Add(week - 24*time.Hour)
			if end.After(win.today) {
				end = win.today
			}
			b.buckets = append(b.buckets, dto.Bucket{
				Name:  fmt.Sprintf("Week %d", n),
				Start: start.Format(dateLayout),
				End:   end.Format(dateLayout),
			})
		}
	case GroupByMonth:
		for m := firstOfMonth(win.start); !m.After(win.today); m = m.AddDate(0, 1, 0) {
			start, end := m, m.AddDate(0, 1, -1)
			if start.Before(win.start) {
				start = win.start
			}
			if end.After(win.today) {
				end = win.today
			}
			b.buckets = append(b.buckets, dto.Bucket{
				Name:  m.Format(monthLayout),
				Start: start.Format(dateLayout),
				End:   end.Format(dateLayout),
			})
		}
	default:
		return nil, fmt.Errorf("unknown grouping %q", groupBy)
	}

	for i := range b.buckets {
		b.buckets[i].Counts = make(map[string]int, len(series))
		for _, key := range series {
			b.buckets[i].Counts[key] = 0
		}
	}
	return b, nil
}

// index returns the bucket holding t, or -1 when t lies outside the window.
func (b *bucketer) index(t time.Time) int {
	t = t.UTC()
	if t.Before(b.win.start) || t.After(b.win.now) {
		return -1
	}

	var i int
	switch b.groupBy {
	case GroupByDay:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		i = int(day.Sub(b.win.start) / (24 * time.Hour))
	case GroupByWeek:
		i = int(t.Sub(b.win.start) / week)
	case GroupByMonth:
		first := firstOfMonth(b.win.start)
		i = (t.Year()-first.Year())*12 + int(t.Month()) - int(first.Month())
	}

	if i < 0 || i >= len(b.buckets) {
		return -1
	}
	return i
}

func (b *bucketer) add(t time.Time, key string) bool {
	i := b.index(t)
	if i < 0 {
		return false
	}
	b.buckets[i].Counts[key]++
	return true
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
