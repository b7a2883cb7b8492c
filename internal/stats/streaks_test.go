package stats

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate(t *testing.T) {
	cases := []struct {
		name       string
		logs       []Entry
		rangeStart time.Time
		rangeEnd   time.Time
		want       Stats
	}{
		{
			// Jan 1-5 window, completions on Jan 1, 2 and 4. The missing
			// Jan 3 breaks the run; the missing Jan 5 does not move the
			// current-streak anchor off Jan 4.
			name: "five_day_window_with_gap",
			logs: []Entry{
				{Day: day(1), Completed: true},
				{Day: day(2), Completed: true},
				{Day: day(4), Completed: true},
			},
			rangeStart: day(1),
			rangeEnd:   day(5),
			want: Stats{
				TotalDays:      5,
				CompletedDays:  3,
				CompletionRate: 60.0,
				CurrentStreak:  1,
				LongestStreak:  2,
			},
		},
		{
			name:       "empty_logs_over_week",
			logs:       nil,
			rangeStart: day(1),
			rangeEnd:   day(7),
			want: Stats{
				TotalDays:      7,
				CompletedDays:  0,
				CompletionRate: 0.0,
				CurrentStreak:  0,
				LongestStreak:  0,
			},
		},
		{
			name: "inverted_range_zeroes_everything",
			logs: []Entry{
				{Day: day(3), Completed: true},
			},
			rangeStart: day(5),
			rangeEnd:   day(1),
			want:       Stats{},
		},
		{
			name: "miss_on_latest_day_zeroes_current_streak",
			logs: []Entry{
				{Day: day(1), Completed: true},
				{Day: day(2), Completed: true},
				{Day: day(3), Completed: false},
			},
			rangeStart: day(1),
			rangeEnd:   day(3),
			want: Stats{
				TotalDays:      3,
				CompletedDays:  2,
				CompletionRate: 66.7,
				CurrentStreak:  0,
				LongestStreak:  2,
			},
		},
		{
			name: "single_day_range",
			logs: []Entry{
				{Day: day(1), Completed: true},
			},
			rangeStart: day(1),
			rangeEnd:   day(1),
			want: Stats{
				TotalDays:      1,
				CompletedDays:  1,
				CompletionRate: 100.0,
				CurrentStreak:  1,
				LongestStreak:  1,
			},
		},
		{
			name: "miss_in_middle_splits_streaks",
			logs: []Entry{
				{Day: day(1), Completed: true},
				{Day: day(2), Completed: true},
				{Day: day(3), Completed: true},
				{Day: day(4), Completed: false},
				{Day: day(5), Completed: true},
				{Day: day(6), Completed: true},
			},
			rangeStart: day(1),
			rangeEnd:   day(6),
			want: Stats{
				TotalDays:      6,
				CompletedDays:  5,
				CompletionRate: 83.3,
				CurrentStreak:  2,
				LongestStreak:  3,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Aggregate(tc.logs, tc.rangeStart, tc.rangeEnd)
			if got != tc.want {
				t.Fatalf("Aggregate()=%+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAggregateIgnoresInputOrder(t *testing.T) {
	shuffled := []Entry{
		{Day: day(4), Completed: true},
		{Day: day(1), Completed: true},
		{Day: day(3), Completed: false},
		{Day: day(2), Completed: true},
		{Day: day(5), Completed: true},
	}
	got := Aggregate(shuffled, day(1), day(5))
	want := Stats{
		TotalDays:      5,
		CompletedDays:  4,
		CompletionRate: 80.0,
		CurrentStreak:  2,
		LongestStreak:  2,
	}
	if got != want {
		t.Fatalf("Aggregate()=%+v, want %+v", got, want)
	}
}

func TestAggregateGapPolicy(t *testing.T) {
	// Rows on Jan 1, 2 and 4 only. The interior gap on Jan 3 breaks the
	// run, so Jan 4 starts a fresh streak of 1.
	logs := []Entry{
		{Day: day(1), Completed: true},
		{Day: day(2), Completed: true},
		{Day: day(4), Completed: true},
	}
	got := Aggregate(logs, day(1), day(4))
	if got.LongestStreak != 2 {
		t.Fatalf("LongestStreak=%d, want 2 (interior gap is a break)", got.LongestStreak)
	}
	if got.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak=%d, want 1 (interior gap is a break)", got.CurrentStreak)
	}

	// Trailing missing days do not zero the streak: the scan anchors at
	// the most recent logged day.
	got = Aggregate(logs[:2], day(1), day(9))
	if got.CurrentStreak != 2 {
		t.Fatalf("CurrentStreak=%d, want 2 (trailing gap keeps the anchor)", got.CurrentStreak)
	}
}

func TestAggregateRateBounds(t *testing.T) {
	logs := []Entry{
		{Day: day(1), Completed: true},
		{Day: day(2), Completed: true},
	}
	for end := 0; end < 10; end++ {
		got := Aggregate(logs, day(1), day(1+end))
		if got.CompletionRate < 0 || got.CompletionRate > 100 {
			t.Fatalf("CompletionRate=%v out of bounds for end offset %d", got.CompletionRate, end)
		}
	}
}
