// Package activity groups commit timestamps into calendar-day buckets and
// renders them as a sparkline.
package activity

import (
	"strings"
	"time"
)

// Day is the number of commits made on one calendar day.
type Day struct {
	Date    time.Time `json:"date"` // midnight in the bucketing location
	Commits int       `json:"commits"`
}

// Series is a contiguous run of days, oldest first, with no gaps.
type Series []Day

// Bucket counts timestamps per calendar day in loc over the days-day window
// ending on now's day. Days without commits are present with zero count.
// Timestamps outside the window are ignored.
func Bucket(stamps []time.Time, now time.Time, days int, loc *time.Location) Series {
	if days <= 0 {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	start := WindowStart(now, days, loc)

	series := make(Series, days)
	index := make(map[time.Time]int, days)
	for i := range series {
		d := start.AddDate(0, 0, i)
		series[i] = Day{Date: d}
		index[d] = i
	}

	for _, ts := range stamps {
		if i, ok := index[midnight(ts.In(loc))]; ok {
			series[i].Commits++
		}
	}

	return series
}

// WindowStart returns midnight in loc of the first day of the days-day
// window ending on now's day.
func WindowStart(now time.Time, days int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return midnight(now.In(loc)).AddDate(0, 0, -(max(days, 1) - 1))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Counts returns the per-day commit counts.
func (s Series) Counts() []int {
	out := make([]int, len(s))
	for i, d := range s {
		out[i] = d.Commits
	}
	return out
}

// Total returns the number of commits in the series.
func (s Series) Total() int {
	var n int
	for _, d := range s {
		n += d.Commits
	}
	return n
}

// Busiest returns the day with the most commits; the earliest wins ties.
// ok is false for an empty series or one with no commits.
func (s Series) Busiest() (Day, bool) {
	var (
		best  Day
		found bool
	)
	for _, d := range s {
		if d.Commits > best.Commits {
			best, found = d, true
		}
	}
	return best, found
}

// ActiveDays returns how many days had at least one commit.
func (s Series) ActiveDays() int {
	var n int
	for _, d := range s {
		if d.Commits > 0 {
			n++
		}
	}
	return n
}

var levels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders one block character per value, scaled to the maximum.
// Zero always renders as a space so idle days stand out.
func Sparkline(values []int) string {
	maxVal := 0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}

	var b strings.Builder
	for _, v := range values {
		switch {
		case v <= 0:
			b.WriteRune(' ')
		case maxVal == 0:
			b.WriteRune(levels[0])
		default:
			idx := (v*len(levels) - 1) / maxVal
			b.WriteRune(levels[min(idx, len(levels)-1)])
		}
	}
	return b.String()
}

// Compress sums adjacent values so the result has at most width entries.
// Groups are equal-sized except possibly the last.
func Compress(values []int, width int) []int {
	if width <= 0 || len(values) <= width {
		return values
	}

	size := (len(values) + width - 1) / width
	out := make([]int, 0, width)
	for i := 0; i < len(values); i += size {
		var sum int
		for _, v := range values[i:min(i+size, len(values))] {
			sum += v
		}
		out = append(out, sum)
	}
	return out
}
