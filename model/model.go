package model

import (
	"fmt"
	"strconv"
	"time"
)

// Holds the plain data types shared by the parsers and the departure
// engine.

type ExceptionType int8

const (
	ExceptionAdded   ExceptionType = 1
	ExceptionRemoved ExceptionType = 2
)

type PickupType int8

const (
	PickupRegular PickupType = iota
	PickupNotAvailable
	PickupPhoneAgency
	PickupCoordinateWithDriver
)

// Calendar is a service's weekly recurrence rule. Weekday is a bitmask
// indexed by time.Weekday. Dates are YYYYMMDD strings, compared
// lexicographically.
type Calendar struct {
	ServiceID string
	StartDate string
	EndDate   string
	Weekday   int8
}

// CalendarDate is a dated add/remove override for a service. An
// override replaces the recurrence-derived membership for that date
// only.
type CalendarDate struct {
	ServiceID     string
	Date          string
	ExceptionType ExceptionType
}

type Stop struct {
	ID           string
	Code         string
	Name         string
	PlatformCode string
}

// StopVisit is a trip's scheduled presence at one stop. Departure is an
// HHMMSS offset from the service day's midnight, and may exceed 240000
// for trips running past midnight. An empty string means the feed
// omitted the departure time.
type StopVisit struct {
	StopID       string
	StopSequence uint32
	Pickup       PickupType
	Departure    string
}

func (sv *StopVisit) HasDeparture() bool {
	return sv.Departure != ""
}

// DepartureOffset translates the HHMMSS offset into a duration since
// the service day's midnight.
func (sv *StopVisit) DepartureOffset() (time.Duration, error) {
	if len(sv.Departure) != 6 {
		return 0, fmt.Errorf("malformed departure time '%s'", sv.Departure)
	}
	h, errH := strconv.Atoi(sv.Departure[0:2])
	m, errM := strconv.Atoi(sv.Departure[2:4])
	s, errS := strconv.Atoi(sv.Departure[4:6])
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("malformed departure time '%s'", sv.Departure)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

// Trip is one scheduled run of a vehicle along an ordered sequence of
// stops. StopVisits are ordered by StopSequence.
type Trip struct {
	ID         string
	RouteID    string
	ServiceID  string
	Headsign   string
	StopVisits []StopVisit
}

// Schedule is the static timetable. Immutable once parsed. CalendarDates
// preserves feed-file order per service, which gives exception
// resolution a deterministic tie-break.
type Schedule struct {
	Calendars     map[string]*Calendar
	CalendarDates map[string][]CalendarDate
	Stops         map[string]*Stop
	Trips         map[string]*Trip
}

// StopsNamed returns the IDs of all stops whose name equals name
// exactly. A station may map to several platform stops.
func (s *Schedule) StopsNamed(name string) map[string]bool {
	ids := map[string]bool{}
	for _, stop := range s.Stops {
		if stop.Name == name {
			ids[stop.ID] = true
		}
	}
	return ids
}

// Feed is a decoded realtime snapshot. TripUpdates preserves feed
// entity order.
type Feed struct {
	Timestamp   uint64
	TripUpdates []TripUpdate

	// These exist to simplify debugging down the road
	NumScheduledTrips   int
	NumAddedTrips       int
	NumUnscheduledTrips int
	NumCanceledTrips    int
	NumDuplicatedTrips  int
}

// TripUpdate carries the delay reports for one trip. StopTimes
// preserves feed order.
type TripUpdate struct {
	TripID    string
	StopTimes []StopTimeUpdate
}

// StopTimeUpdate is a delay report for one stop along a trip.
// DepartureSet distinguishes an explicit zero delay from no report.
type StopTimeUpdate struct {
	StopID         string
	StopSequence   uint32
	DepartureSet   bool
	DepartureDelay time.Duration
}

// Departure is one upcoming departure, resolved for display.
type Departure struct {
	TripID   string
	Time     time.Time
	Headsign string
}
