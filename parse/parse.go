package parse

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"

	"trainboard.dev/trainboard/model"
)

// ParseStatic decodes a zipped static timetable into a Schedule.
func ParseStatic(buf []byte) (*model.Schedule, error) {
	// These are the files we load from static dumps.
	file := map[string]io.ReadCloser{
		"stops.txt":          nil,
		"trips.txt":          nil,
		"stop_times.txt":     nil,
		"calendar.txt":       nil,
		"calendar_dates.txt": nil,
	}

	defer func() {
		for _, rc := range file {
			if rc != nil {
				rc.Close()
			}
		}
	}()

	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("unzipping: %w", err)
	}

	for _, f := range r.File {
		// There should not be any subdirectories. But, some
		// agencies don't care.
		if f.FileInfo().IsDir() {
			continue
		}
		path := strings.Split(f.Name, "/")
		fName := path[len(path)-1]

		if _, found := file[fName]; !found {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}

		file[fName] = rc
	}

	if file["calendar.txt"] == nil && file["calendar_dates.txt"] == nil {
		return nil, fmt.Errorf("missing calendar.txt and calendar_dates.txt")
	}

	for _, required := range []string{"stops.txt", "trips.txt", "stop_times.txt"} {
		if file[required] == nil {
			return nil, fmt.Errorf("missing %s", required)
		}
	}

	// LazyCSVReader required (at least) to survive sloppy use of
	// quotes. The BOM reader strips unicode BOMs if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})

	sched := &model.Schedule{
		Calendars:     map[string]*model.Calendar{},
		CalendarDates: map[string][]model.CalendarDate{},
		Stops:         map[string]*model.Stop{},
		Trips:         map[string]*model.Trip{},
	}

	// Parse calendar.txt and calendar_dates.txt. Extract the set of
	// all known service IDs in the process.
	services := map[string]bool{}
	if file["calendar.txt"] != nil {
		services, err = ParseCalendar(sched, file["calendar.txt"])
		if err != nil {
			return nil, fmt.Errorf("parsing calendar.txt: %w", err)
		}
	}
	if file["calendar_dates.txt"] != nil {
		cdServices, err := ParseCalendarDates(sched, file["calendar_dates.txt"])
		if err != nil {
			return nil, fmt.Errorf("parsing calendar_dates.txt: %w", err)
		}
		for serviceID := range cdServices {
			services[serviceID] = true
		}
	}

	// Parse stops.txt. Extract stop IDs in the process.
	stops, err := ParseStops(sched, file["stops.txt"])
	if err != nil {
		return nil, fmt.Errorf("parsing stops.txt: %w", err)
	}

	// Parse trips.txt. Extract trip IDs in the process.
	trips, err := ParseTrips(sched, file["trips.txt"], services)
	if err != nil {
		return nil, fmt.Errorf("parsing trips.txt: %w", err)
	}

	// And parse stop_times.txt, attaching each row to its trip.
	err = ParseStopTimes(sched, file["stop_times.txt"], trips, stops)
	if err != nil {
		return nil, fmt.Errorf("parsing stop_times.txt: %w", err)
	}

	return sched, nil
}
