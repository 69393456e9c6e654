package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"trainboard.dev/trainboard/model"
)

type StopCSV struct {
	ID           string `csv:"stop_id"`
	Code         string `csv:"stop_code"`
	Name         string `csv:"stop_name"`
	PlatformCode string `csv:"platform_code"`
}

// Returns the set of all stop IDs seen. Station names are not unique: a
// station often maps to one stop per platform.
func ParseStops(sched *model.Schedule, data io.Reader) (map[string]bool, error) {
	stopCsv := []*StopCSV{}
	if err := gocsv.Unmarshal(data, &stopCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling stops csv: %w", err)
	}

	stopIDs := map[string]bool{}
	for _, st := range stopCsv {
		if st.ID == "" {
			return nil, fmt.Errorf("empty stop_id")
		}
		if stopIDs[st.ID] {
			return nil, fmt.Errorf("repeated stop_id '%s'", st.ID)
		}
		stopIDs[st.ID] = true

		if st.Name == "" {
			return nil, fmt.Errorf("empty stop_name for stop_id '%s'", st.ID)
		}

		sched.Stops[st.ID] = &model.Stop{
			ID:           st.ID,
			Code:         st.Code,
			Name:         st.Name,
			PlatformCode: st.PlatformCode,
		}
	}

	return stopIDs, nil
}
