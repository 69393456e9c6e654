package parse

import (
	"fmt"
	"time"

	gtfsproto "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	proto "google.golang.org/protobuf/proto"

	"trainboard.dev/trainboard/model"
)

// ParseRealtime decodes a binary realtime feed message into a Feed.
// Entity order is preserved: if a feed references a trip more than
// once, the matcher uses the first occurrence, and keeping feed order
// makes that choice deterministic for a given snapshot.
func ParseRealtime(buf []byte) (*model.Feed, error) {
	f := &gtfsproto.FeedMessage{}
	err := proto.Unmarshal(buf, f)
	if err != nil {
		return nil, fmt.Errorf("unmarshaling protobuf: %w", err)
	}

	header := f.GetHeader()

	version := header.GetGtfsRealtimeVersion()
	if version != "2.0" && version != "1.0" {
		return nil, fmt.Errorf("version %s not supported", version)
	}

	if header.GetIncrementality() != gtfsproto.FeedHeader_FULL_DATASET {
		return nil, fmt.Errorf("feed incrementality %s not supported", header.GetIncrementality())
	}

	feed := &model.Feed{
		Timestamp: header.GetTimestamp(),
	}

	for _, entity := range f.GetEntity() {
		// We only care about TripUpdates
		if entity.TripUpdate == nil {
			continue
		}

		trip := entity.TripUpdate.Trip
		if trip == nil {
			return nil, fmt.Errorf("trip_update missing trip")
		}

		// Blank trip ID is allowed when (route_id, direction_id,
		// start_time, start_date) uniquely identifies the trip in
		// the static schedule. That said, we don't support it.
		if trip.GetTripId() == "" {
			continue
		}

		switch sr := trip.GetScheduleRelationship(); sr {

		case gtfsproto.TripDescriptor_SCHEDULED:
			// Trip running in accordance with the static schedule
			update := model.TripUpdate{
				TripID: trip.GetTripId(),
			}
			for _, stu := range entity.TripUpdate.GetStopTimeUpdate() {
				update.StopTimes = append(update.StopTimes, stopTimeUpdate(stu))
			}
			feed.TripUpdates = append(feed.TripUpdates, update)
			feed.NumScheduledTrips++

		case gtfsproto.TripDescriptor_ADDED:
			// An extra trip that's been added. Not supported!
			feed.NumAddedTrips++

		case gtfsproto.TripDescriptor_UNSCHEDULED:
			// For frequency based trips only. Not supported!
			feed.NumUnscheduledTrips++

		case gtfsproto.TripDescriptor_CANCELED:
			// Trip in the static schedule that has been canceled.
			feed.NumCanceledTrips++

		case gtfsproto.TripDescriptor_DUPLICATED:
			// Copy of a trip in the static schedule. Not supported!
			feed.NumDuplicatedTrips++

		}
	}

	return feed, nil
}

func stopTimeUpdate(stu *gtfsproto.TripUpdate_StopTimeUpdate) model.StopTimeUpdate {
	update := model.StopTimeUpdate{
		StopID:       stu.GetStopId(),
		StopSequence: uint32(stu.GetStopSequence()),
	}

	// Delay presence matters: an absent departure delay means the
	// schedule applies, which is not the same as a delay of zero.
	if dep := stu.GetDeparture(); dep != nil && dep.Delay != nil {
		update.DepartureSet = true
		update.DepartureDelay = time.Duration(dep.GetDelay()) * time.Second
	}

	return update
}
