package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, loc)

	stamps := []time.Time{
		time.Date(2024, 3, 10, 9, 0, 0, 0, loc),
		time.Date(2024, 3, 10, 23, 59, 0, 0, loc),
		time.Date(2024, 3, 8, 0, 0, 0, 0, loc),
		time.Date(2024, 3, 6, 12, 0, 0, 0, loc), // outside a 3 day window
		time.Date(2024, 3, 11, 1, 0, 0, 0, loc), // future
	}

	series := Bucket(stamps, now, 3, loc)
	require.Len(t, series, 3)

	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, loc), series[0].Date)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), series[2].Date)
	assert.Equal(t, []int{1, 0, 2}, series.Counts())
	assert.Equal(t, 3, series.Total())
	assert.Equal(t, 2, series.ActiveDays())

	busiest, ok := series.Busiest()
	require.True(t, ok)
	assert.Equal(t, 2, busiest.Commits)
}

func TestBucket_UsesLocationForDayBoundaries(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, tokyo)

	// 20:00 UTC on the 9th is 05:00 on the 10th in Tokyo.
	stamps := []time.Time{time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)}

	assert.Equal(t, []int{0, 1}, Bucket(stamps, now, 2, tokyo).Counts())
	assert.Equal(t, []int{1, 0}, Bucket(stamps, now.In(time.UTC), 2, time.UTC).Counts())
}

func TestBucket_AcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// DST started on 2024-03-10 in New York; that day has 23 hours.
	now := time.Date(2024, 3, 12, 12, 0, 0, 0, ny)
	series := Bucket(nil, now, 5, ny)

	require.Len(t, series, 5)
	for i, d := range series {
		assert.Equal(t, 8+i, d.Date.Day())
		assert.Zero(t, d.Date.Hour())
	}
}

func TestBucket_NonPositiveDays(t *testing.T) {
	assert.Nil(t, Bucket([]time.Time{time.Now()}, time.Now(), 0, time.UTC))
}

func TestSeries_BusiestEmpty(t *testing.T) {
	_, ok := Series{{Commits: 0}}.Busiest()
	assert.False(t, ok)
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   string
	}{
		{"empty", nil, ""},
		{"all zero", []int{0, 0}, "  "},
		{"single max", []int{5}, "█"},
		{"ramp", []int{1, 2, 3, 4, 5, 6, 7, 8}, "▁▂▃▄▅▆▇█"},
		{"idle days are blank", []int{4, 0, 8}, "▄ █"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sparkline(tt.values))
		})
	}
}

func TestCompress(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		width  int
		want   []int
	}{
		{"fits", []int{1, 2, 3}, 5, []int{1, 2, 3}},
		{"no width", []int{1, 2, 3}, 0, []int{1, 2, 3}},
		{"even groups", []int{1, 1, 2, 2, 3, 3}, 3, []int{2, 4, 6}},
		{"short tail", []int{1, 1, 1, 1, 1, 1, 1}, 3, []int{3, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compress(tt.values, tt.width)
			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.LessOrEqual(t, len(got), tt.width)
			}
		})
	}
}

func TestWindowStart(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), WindowStart(now, 1, loc))
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, loc), WindowStart(now, 30, loc))
	assert.Equal(t, WindowStart(now, 1, loc), WindowStart(now, 0, loc), "non-positive days collapse to today")
}
