package trainboard

import (
	"sort"
	"time"

	"trainboard.dev/trainboard/model"
)

// UpperBound returns the display window's closing instant: the daily
// cutoff on tomorrow when now's time-of-day is past the cutoff,
// otherwise on today. Until the cutoff passes, early-morning departures
// still belong to the previous day's window. The cutoff is anchored at
// noon minus 12h for the same DST reason as in Expand.
func UpperBound(now time.Time, cutoff time.Duration) time.Time {
	bound := noonOf(now).Add(cutoff - 12*time.Hour)
	if now.After(bound) {
		bound = noonOf(now.AddDate(0, 0, 1)).Add(cutoff - 12*time.Hour)
	}
	return bound
}

// FilterAndSort retains departures within [now, upper bound], both ends
// inclusive, and orders them by time. Input order is preserved for
// equal instants.
func FilterAndSort(departures []model.Departure, now time.Time, cutoff time.Duration) []model.Departure {
	upper := UpperBound(now, cutoff)

	kept := []model.Departure{}
	for _, dep := range departures {
		if dep.Time.Before(now) || dep.Time.After(upper) {
			continue
		}
		kept = append(kept, dep)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Time.Before(kept[j].Time)
	})

	return kept
}
