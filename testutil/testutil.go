package testutil

// Helpers for building schedule and feed fixtures in tests.

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	gtfsproto "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/require"
	proto "google.golang.org/protobuf/proto"

	"trainboard.dev/trainboard/model"
	"trainboard.dev/trainboard/parse"
)

// BuildSchedule parses the given timetable files into a Schedule,
// filling in missing files with (mostly blank) dummy data.
func BuildSchedule(t testing.TB, files map[string][]string) *model.Schedule {
	if files["calendar.txt"] == nil && files["calendar_dates.txt"] == nil {
		files["calendar.txt"] = []string{"service_id"}
	}
	if files["stops.txt"] == nil {
		files["stops.txt"] = []string{"stop_id"}
	}
	if files["trips.txt"] == nil {
		files["trips.txt"] = []string{"trip_id"}
	}
	if files["stop_times.txt"] == nil {
		files["stop_times.txt"] = []string{"stop_id"}
	}

	sched, err := parse.ParseStatic(BuildZip(t, files))
	require.NoError(t, err)

	return sched
}

func BuildZip(t testing.TB, files map[string][]string) []byte {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for filename, content := range files {
		f, err := w.Create(filename)
		require.NoError(t, err)
		_, err = f.Write([]byte(strings.Join(content, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// FeedTrip describes one trip update for BuildFeedProto.
type FeedTrip struct {
	TripID   string
	Canceled bool
	Stops    []FeedStop
}

// FeedStop describes one stop-time update. Delay is only encoded when
// HasDelay is set; a matching stop without a delay must be
// distinguishable from one reporting zero.
type FeedStop struct {
	StopID   string
	HasDelay bool
	Delay    int
}

// BuildFeedProto encodes trip updates as a binary realtime feed
// message, preserving the given order.
func BuildFeedProto(t testing.TB, trips ...FeedTrip) []byte {
	msg := &gtfsproto.FeedMessage{
		Header: &gtfsproto.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      gtfsproto.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(1700000000),
		},
	}

	for i, trip := range trips {
		update := &gtfsproto.TripUpdate{
			Trip: &gtfsproto.TripDescriptor{
				TripId: proto.String(trip.TripID),
			},
		}
		if trip.Canceled {
			update.Trip.ScheduleRelationship = gtfsproto.TripDescriptor_CANCELED.Enum()
		}

		for _, stop := range trip.Stops {
			stu := &gtfsproto.TripUpdate_StopTimeUpdate{
				StopId: proto.String(stop.StopID),
			}
			if stop.HasDelay {
				stu.Departure = &gtfsproto.TripUpdate_StopTimeEvent{
					Delay: proto.Int32(int32(stop.Delay)),
				}
			}
			update.StopTimeUpdate = append(update.StopTimeUpdate, stu)
		}

		msg.Entity = append(msg.Entity, &gtfsproto.FeedEntity{
			Id:         proto.String(fmt.Sprintf("%d", i+1)),
			TripUpdate: update,
		})
	}

	buf, err := proto.Marshal(msg)
	require.NoError(t, err)

	return buf
}

// BuildFeed decodes the output of BuildFeedProto into a Feed.
func BuildFeed(t testing.TB, trips ...FeedTrip) *model.Feed {
	feed, err := parse.ParseRealtime(BuildFeedProto(t, trips...))
	require.NoError(t, err)

	return feed
}
