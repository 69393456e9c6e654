package trainboard

import (
	"time"

	"trainboard.dev/trainboard/model"
)

// Expand produces every scheduled departure from the given stops across
// the candidate service days. Each day is a local midnight; a trip
// contributes a departure on a day only if its service runs on that
// date. Departure offsets past 24:00:00 land on the following calendar
// day, which is why yesterday must be among the candidates for
// late-night trains to be found, and tomorrow for the earliest trains
// of the next service day.
//
// Stops where boarding isn't possible are excluded. A selected
// stop-visit without a departure time, or a selected trip without a
// headsign, is a DataError: substituting a value would put a wrong
// entry on the board.
// noonOf returns noon of t's calendar day. Departure offsets are added
// to noon minus 12h rather than to midnight directly: on DST transition
// days the duration since midnight and the wall clock disagree by an
// hour, and an 08:00:00 offset must always come out as 08:00 wall
// clock.
func noonOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

func Expand(sched *model.Schedule, stopIDs map[string]bool, days []time.Time) ([]model.Departure, error) {
	// Resolve each candidate date's services once up front.
	active := make([]map[string]bool, len(days))
	for i, day := range days {
		active[i] = ActiveServices(sched, day)
	}

	// Some feeds list a trip against several of a station's platform
	// stops with the same departure time. That is one train, not two.
	type departureKey struct {
		tripID string
		unix   int64
	}
	seen := map[departureKey]bool{}

	departures := []model.Departure{}
	for _, trip := range sched.Trips {
		for i := range trip.StopVisits {
			sv := &trip.StopVisits[i]

			if !stopIDs[sv.StopID] {
				continue
			}
			if sv.Pickup == model.PickupNotAvailable {
				continue
			}

			for j, day := range days {
				if !active[j][trip.ServiceID] {
					continue
				}

				if !sv.HasDeparture() {
					return nil, &DataError{TripID: trip.ID, StopID: sv.StopID, Field: "departure_time"}
				}
				offset, err := sv.DepartureOffset()
				if err != nil {
					return nil, &DataError{TripID: trip.ID, StopID: sv.StopID, Field: "departure_time"}
				}
				if trip.Headsign == "" {
					return nil, &DataError{TripID: trip.ID, StopID: sv.StopID, Field: "trip_headsign"}
				}

				when := noonOf(day).Add(offset - 12*time.Hour)
				key := departureKey{trip.ID, when.Unix()}
				if seen[key] {
					continue
				}
				seen[key] = true

				departures = append(departures, model.Departure{
					TripID:   trip.ID,
					Time:     when,
					Headsign: trip.Headsign,
				})
			}
		}
	}

	return departures, nil
}
