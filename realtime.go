package trainboard

import (
	"time"

	"trainboard.dev/trainboard/model"
)

// MatchDelay finds the reported departure delay for a trip at any of
// the given stops. Trip updates are scanned in feed order and the first
// one naming the trip is used; feeds aren't guaranteed to reference a
// trip at most once, and feed order keeps the choice deterministic for
// a given snapshot. Within the matched update, the first stop-time
// update naming one of the stops that actually carries a departure
// delay applies. No match means the schedule applies; delays may be
// negative and move a departure earlier.
func MatchDelay(feed *model.Feed, tripID string, stopIDs map[string]bool) (time.Duration, bool) {
	if feed == nil {
		return 0, false
	}

	for i := range feed.TripUpdates {
		update := &feed.TripUpdates[i]
		if update.TripID != tripID {
			continue
		}

		for _, stu := range update.StopTimes {
			if stopIDs[stu.StopID] && stu.DepartureSet {
				return stu.DepartureDelay, true
			}
		}

		// Only the first update for the trip is considered.
		return 0, false
	}

	return 0, false
}
