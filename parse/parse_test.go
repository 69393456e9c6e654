package parse

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string][]string) []byte {
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

func validFiles() map[string][]string {
	return map[string][]string{
		"calendar.txt": {
			"service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday",
			"daily,20240101,20241231,1,1,1,1,1,1,1",
		},
		"calendar_dates.txt": {
			"service_id,date,exception_type",
			"daily,20240701,2",
		},
		"stops.txt": {
			"stop_id,stop_name,platform_code",
			"CEN1,Central,1",
			"CEN2,Central,2",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,daily,North",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,departure_time",
			"T1,CEN1,1,08:00:00",
			"T1,CEN2,2,08:05:00",
		},
	}
}

func TestParseStatic(t *testing.T) {
	sched, err := ParseStatic(buildZip(t, validFiles()))
	require.NoError(t, err)

	assert.Len(t, sched.Calendars, 1)
	assert.Len(t, sched.CalendarDates["daily"], 1)
	assert.Len(t, sched.Stops, 2)
	require.Contains(t, sched.Trips, "T1")
	assert.Len(t, sched.Trips["T1"].StopVisits, 2)
}

func TestParseStaticNestedPaths(t *testing.T) {
	// Some agencies zip their feed inside a directory
	files := map[string][]string{}
	for name, content := range validFiles() {
		files["feed/"+name] = content
	}

	sched, err := ParseStatic(buildZip(t, files))
	require.NoError(t, err)
	assert.Len(t, sched.Stops, 2)
}

func TestParseStaticMissingFiles(t *testing.T) {
	for _, missing := range []string{"stops.txt", "trips.txt", "stop_times.txt"} {
		files := validFiles()
		delete(files, missing)
		_, err := ParseStatic(buildZip(t, files))
		assert.ErrorContains(t, err, missing)
	}

	files := validFiles()
	delete(files, "calendar.txt")
	delete(files, "calendar_dates.txt")
	_, err := ParseStatic(buildZip(t, files))
	assert.ErrorContains(t, err, "calendar")
}

func TestParseStaticCalendarDatesOnly(t *testing.T) {
	// A feed may define services entirely through exceptions
	files := validFiles()
	delete(files, "calendar.txt")
	files["calendar_dates.txt"] = []string{
		"service_id,date,exception_type",
		"daily,20240610,1",
	}

	sched, err := ParseStatic(buildZip(t, files))
	require.NoError(t, err)
	assert.Empty(t, sched.Calendars)
	assert.Len(t, sched.CalendarDates["daily"], 1)
}

func TestParseStaticNotAZip(t *testing.T) {
	_, err := ParseStatic([]byte("this is not a zip archive"))
	assert.ErrorContains(t, err, "unzipping")
}
