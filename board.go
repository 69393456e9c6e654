package trainboard

import (
	"time"

	"trainboard.dev/trainboard/model"
)

// Board resolves upcoming departures for a single station by
// reconciling the static timetable with a realtime snapshot. Both
// inputs are read-only; a Board does a single synchronous pass and
// keeps no state between runs.
type Board struct {
	Schedule *model.Schedule
	Feed     *model.Feed

	// Location is the region's timezone. DayTransition is the daily
	// cutoff time-of-day closing the display window.
	Location      *time.Location
	DayTransition time.Duration
}

// Departures returns the display-ready list for the station at the
// given instant: the schedule expanded across yesterday, today and
// tomorrow, adjusted by reported delays, clipped to the display window
// and ordered by departure time.
func (b *Board) Departures(station string, now time.Time) ([]model.Departure, error) {
	stopIDs := b.Schedule.StopsNamed(station)
	if len(stopIDs) == 0 {
		return nil, &StationNotFoundError{Station: station}
	}

	now = now.In(b.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, b.Location)
	days := []time.Time{
		today.AddDate(0, 0, -1),
		today,
		today.AddDate(0, 0, 1),
	}

	departures, err := Expand(b.Schedule, stopIDs, days)
	if err != nil {
		return nil, err
	}

	for i := range departures {
		if delay, ok := MatchDelay(b.Feed, departures[i].TripID, stopIDs); ok {
			departures[i].Time = departures[i].Time.Add(delay)
		}
	}

	return FilterAndSort(departures, now, b.DayTransition), nil
}
