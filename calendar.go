package trainboard

import (
	"time"

	"trainboard.dev/trainboard/model"
)

// ActiveServices returns the IDs of all services running on the given
// date. The base rule is the weekly recurrence, limited to the
// calendar's validity range. Dated exceptions are applied on top:
// Added inserts the service even when the recurrence excludes it,
// Removed deletes it even when the recurrence includes it. A Removed
// exception for a service that isn't active is a no-op. Exceptions are
// applied in feed-file order, so if a feed lists several for one
// service on one date, the last one wins.
func ActiveServices(sched *model.Schedule, date time.Time) map[string]bool {
	day := date.Format("20060102")

	services := map[string]bool{}
	for _, cal := range sched.Calendars {
		if cal.Weekday&(1<<date.Weekday()) == 0 {
			continue
		}
		if cal.StartDate > day {
			continue
		}
		if cal.EndDate < day {
			continue
		}
		services[cal.ServiceID] = true
	}

	for serviceID, cds := range sched.CalendarDates {
		for _, cd := range cds {
			if cd.Date != day {
				continue
			}
			switch cd.ExceptionType {
			case model.ExceptionAdded:
				services[serviceID] = true
			case model.ExceptionRemoved:
				delete(services, serviceID)
			}
		}
	}

	return services
}
