package parse

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"trainboard.dev/trainboard/model"
)

type StopTimeCSV struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	StopSequence  uint32 `csv:"stop_sequence"`
	DepartureTime string `csv:"departure_time"`
	PickupType    int8   `csv:"pickup_type"`
}

// Normalizes an HH:MM:SS string into HHMMSS. Hours may exceed 24 for
// trips running past midnight of their service day. An empty string is
// passed through: a missing departure time is only an error if the
// stop-visit is selected for display.
func parseStopTimeTime(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	split := strings.Split(s, ":")
	if len(split) != 3 {
		return "", fmt.Errorf("found %d parts in '%s'", len(split), s)
	}

	hms := [3]int{}
	for i, str := range split {
		j, err := strconv.Atoi(str)
		if err != nil {
			return "", fmt.Errorf("non-integer in '%s' pos %d", s, i)
		}
		hms[i] = j
	}

	if hms[0] < 0 || hms[0] > 99 {
		return "", fmt.Errorf("invalid hour in '%s'", s)
	}

	if hms[1] < 0 || hms[1] > 59 {
		return "", fmt.Errorf("invalid minute in '%s'", s)
	}

	if hms[2] < 0 || hms[2] > 59 {
		return "", fmt.Errorf("invalid second in '%s'", s)
	}

	return fmt.Sprintf("%02d%02d%02d", hms[0], hms[1], hms[2]), nil
}

// Attaches each stop_times row to its trip as a StopVisit, ordered by
// stop_sequence.
func ParseStopTimes(
	sched *model.Schedule,
	data io.Reader,
	trips map[string]bool,
	stops map[string]bool,
) error {

	i := -1
	err := gocsv.UnmarshalToCallbackWithError(data, func(st *StopTimeCSV) error {
		i += 1
		if !trips[st.TripID] {
			return fmt.Errorf("unknown trip_id: '%s' (row %d)", st.TripID, i+1)
		}
		if st.StopID == "" {
			return fmt.Errorf("missing stop_id (row %d)", i+1)
		}
		if !stops[st.StopID] {
			return fmt.Errorf("unknown stop_id: '%s' (row %d)", st.StopID, i+1)
		}

		if st.PickupType < 0 || st.PickupType > 3 {
			return fmt.Errorf("invalid pickup_type '%d' (row %d)", st.PickupType, i+1)
		}

		departureTime, err := parseStopTimeTime(st.DepartureTime)
		if err != nil {
			return errors.Wrapf(err, "parsing departure_time (row %d)", i+1)
		}

		trip := sched.Trips[st.TripID]
		trip.StopVisits = append(trip.StopVisits, model.StopVisit{
			StopID:       st.StopID,
			StopSequence: st.StopSequence,
			Pickup:       model.PickupType(st.PickupType),
			Departure:    departureTime,
		})

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "unmarshaling stop_times csv")
	}

	// Order each trip's visits and verify stop_sequence is unique
	// within the trip.
	for tripID, trip := range sched.Trips {
		sort.SliceStable(trip.StopVisits, func(i, j int) bool {
			return trip.StopVisits[i].StopSequence < trip.StopVisits[j].StopSequence
		})

		for i := 1; i < len(trip.StopVisits); i++ {
			if trip.StopVisits[i].StopSequence == trip.StopVisits[i-1].StopSequence {
				return fmt.Errorf(
					"duplicate stop_sequence %d for trip_id '%s'",
					trip.StopVisits[i].StopSequence, tripID,
				)
			}
		}
	}

	return nil
}
