package parse

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"trainboard.dev/trainboard/model"
)

type CalendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int8   `csv:"exception_type"`
}

// Returns the set of all service IDs seen. Exceptions are stored in
// file order. Several exceptions for the same service and date are
// accepted; resolution applies them in order, so the last one listed
// wins.
func ParseCalendarDates(sched *model.Schedule, data io.Reader) (map[string]bool, error) {
	calendarDateCsv := []*CalendarDateCSV{}
	if err := gocsv.Unmarshal(data, &calendarDateCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar_dates csv: %w", err)
	}

	knownService := map[string]bool{}

	for _, cd := range calendarDateCsv {
		if cd.ServiceID == "" {
			return nil, fmt.Errorf("empty service_id")
		}

		if cd.ExceptionType < 1 || cd.ExceptionType > 2 {
			return nil, fmt.Errorf("illegal exception_type: '%d'", cd.ExceptionType)
		}

		if _, err := time.ParseInLocation("20060102", cd.Date, time.UTC); err != nil {
			return nil, fmt.Errorf("parsing date '%s': %w", cd.Date, err)
		}

		knownService[cd.ServiceID] = true

		sched.CalendarDates[cd.ServiceID] = append(sched.CalendarDates[cd.ServiceID], model.CalendarDate{
			ServiceID:     cd.ServiceID,
			Date:          cd.Date,
			ExceptionType: model.ExceptionType(cd.ExceptionType),
		})
	}

	return knownService, nil
}
