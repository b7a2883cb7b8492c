package stats

import (
	"math"
	"sort"
	"time"
)

// Entry is one day's outcome inside an aggregation window.
type Entry struct {
	Day       time.Time
	Completed bool
}

// Stats is the aggregate over one commitment's logs in a date range.
type Stats struct {
	TotalDays      int     `json:"totalDays"`
	CompletedDays  int     `json:"completedDays"`
	CompletionRate float64 `json:"completionRate"`
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
}

// Aggregate computes completion and streak statistics over logs already
// filtered to [rangeStart, rangeEnd] inclusive. Input order does not matter.
// Days are assumed normalized to UTC midnight.
//
// Gap policy: a streak is a run of completed rows on consecutive calendar
// days, so a day missing between two logged days breaks the run just like an
// explicit miss. The current-streak scan anchors at the most recent logged
// day in the range; days after it with no row at all do not zero the streak.
func Aggregate(logs []Entry, rangeStart, rangeEnd time.Time) Stats {
	var out Stats

	days := int(rangeEnd.Sub(rangeStart).Hours()/24) + 1
	if days < 0 {
		days = 0
	}
	out.TotalDays = days
	if days == 0 {
		return out
	}

	for _, l := range logs {
		if l.Completed {
			out.CompletedDays++
		}
	}
	out.CompletionRate = roundRate(float64(out.CompletedDays) / float64(days) * 100)

	sorted := make([]Entry, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Day.Before(sorted[j].Day) })

	// Current streak: walk backward from the most recent row while each
	// row is completed and exactly one day before the previous one.
	for i := len(sorted) - 1; i >= 0; i-- {
		if !sorted[i].Completed {
			break
		}
		if i < len(sorted)-1 && !consecutiveDays(sorted[i].Day, sorted[i+1].Day) {
			break
		}
		out.CurrentStreak++
	}

	// Longest streak: forward scan, counter resets on a miss or a calendar
	// gap since the previous completed row.
	running := 0
	for i, l := range sorted {
		if !l.Completed {
			running = 0
			continue
		}
		if running > 0 && !consecutiveDays(sorted[i-1].Day, l.Day) {
			running = 0
		}
		running++
		if running > out.LongestStreak {
			out.LongestStreak = running
		}
	}

	return out
}

func consecutiveDays(earlier, later time.Time) bool {
	return later.Sub(earlier) == 24*time.Hour
}

func roundRate(rate float64) float64 {
	return math.Round(rate*10) / 10
}
