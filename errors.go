package trainboard

import "fmt"

// A departure board that silently drops a malformed record shows riders
// a train that isn't there, or hides one that is. All errors in this
// package therefore abort the whole run; there is no best-effort
// output.

// DataError reports a schedule record that is missing a field required
// for display.
type DataError struct {
	TripID string
	StopID string
	Field  string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("trip '%s' at stop '%s': missing or malformed %s", e.TripID, e.StopID, e.Field)
}

// StationNotFoundError reports a station name matching no stop.
type StationNotFoundError struct {
	Station string
}

func (e *StationNotFoundError) Error() string {
	return fmt.Sprintf("no stop named '%s'", e.Station)
}
