package trainboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainboard.dev/trainboard/model"
	"trainboard.dev/trainboard/testutil"
)

func buildBoard(t *testing.T, feed *model.Feed) *Board {
	sched := testutil.BuildSchedule(t, map[string][]string{
		"calendar.txt": {
			"service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday",
			"daily,20240101,20241231,1,1,1,1,1,1,1",
			"fri,20240101,20241231,0,0,0,0,1,0,0",
		},
		"stops.txt": {
			"stop_id,stop_name,platform_code",
			"CEN1,Central,1",
			"CEN2,Central,2",
			"SUB1,Suburb,",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"EARLY,R1,daily,North",
			"LATE,R1,daily,North",
			"OTHER,R1,daily,South",
			"NIGHT,R1,fri,North",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,departure_time",
			"EARLY,CEN1,1,08:00:00",
			"EARLY,SUB1,2,08:20:00",
			"LATE,CEN2,1,09:00:00",
			"OTHER,CEN1,1,08:30:00",
			"NIGHT,CEN1,1,25:00:00",
		},
	})

	return &Board{
		Schedule:      sched,
		Feed:          feed,
		Location:      time.UTC,
		DayTransition: 2 * time.Hour,
	}
}

func TestBoardDepartures(t *testing.T) {
	feed := testutil.BuildFeed(t,
		testutil.FeedTrip{
			TripID: "EARLY",
			Stops: []testutil.FeedStop{
				{StopID: "CEN1", HasDelay: true, Delay: 120},
			},
		},
		testutil.FeedTrip{
			TripID: "OTHER",
			Stops: []testutil.FeedStop{
				{StopID: "CEN1", HasDelay: true, Delay: -60},
			},
		},
	)

	board := buildBoard(t, feed)

	// Monday 2024-06-10, 07:30 local
	now := time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)
	departures, err := board.Departures("Central", now)
	require.NoError(t, err)

	// Union of both platforms, delays applied, ordered by time.
	// NIGHT runs Fridays only and is absent.
	require.Len(t, departures, 3)

	assert.Equal(t, "EARLY", departures[0].TripID)
	assert.Equal(t, time.Date(2024, 6, 10, 8, 2, 0, 0, time.UTC), departures[0].Time)

	assert.Equal(t, "OTHER", departures[1].TripID)
	assert.Equal(t, time.Date(2024, 6, 10, 8, 29, 0, 0, time.UTC), departures[1].Time)

	assert.Equal(t, "LATE", departures[2].TripID)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), departures[2].Time)
}

func TestBoardNoFeedMatchLeavesScheduleUnchanged(t *testing.T) {
	board := buildBoard(t, testutil.BuildFeed(t))

	now := time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)
	departures, err := board.Departures("Central", now)
	require.NoError(t, err)

	require.Len(t, departures, 3)
	assert.Equal(t, time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC), departures[0].Time)
}

func TestBoardSpringForwardKeepsWallClock(t *testing.T) {
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	board := buildBoard(t, testutil.BuildFeed(t))
	board.Location = loc

	// Sunday 2024-03-10: clocks jump from 02:00 to 03:00. Scheduled
	// times are wall-clock times, so the board must not shift them.
	now := time.Date(2024, 3, 10, 7, 30, 0, 0, loc)
	departures, err := board.Departures("Central", now)
	require.NoError(t, err)

	require.Len(t, departures, 3)
	assert.Equal(t, time.Date(2024, 3, 10, 8, 0, 0, 0, loc), departures[0].Time)
	assert.Equal(t, time.Date(2024, 3, 10, 8, 30, 0, 0, loc), departures[1].Time)
	assert.Equal(t, time.Date(2024, 3, 10, 9, 0, 0, 0, loc), departures[2].Time)
}

func TestBoardOvernightWindow(t *testing.T) {
	board := buildBoard(t, testutil.BuildFeed(t))

	// Saturday 2024-06-08, 00:30: before the cutoff, the board still
	// shows Friday's service day. NIGHT departs at Friday midnight
	// + 25h = today 01:00.
	now := time.Date(2024, 6, 8, 0, 30, 0, 0, time.UTC)
	departures, err := board.Departures("Central", now)
	require.NoError(t, err)

	require.Len(t, departures, 1)
	assert.Equal(t, "NIGHT", departures[0].TripID)
	assert.Equal(t, time.Date(2024, 6, 8, 1, 0, 0, 0, time.UTC), departures[0].Time)
}

func TestBoardStationFiltering(t *testing.T) {
	board := buildBoard(t, testutil.BuildFeed(t))
	now := time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)

	// A single-stop station only sees its own departures
	departures, err := board.Departures("Suburb", now)
	require.NoError(t, err)
	require.Len(t, departures, 1)
	assert.Equal(t, "EARLY", departures[0].TripID)
	assert.Equal(t, time.Date(2024, 6, 10, 8, 20, 0, 0, time.UTC), departures[0].Time)

	// Matching is exact and case-sensitive
	_, err = board.Departures("central", now)
	var notFound *StationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "central", notFound.Station)
}
