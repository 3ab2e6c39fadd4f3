// Package stats derives display-ready aggregates from raw health and
// activity records. Every function is a pure transform over data passed
// in; "today" is an explicit parameter so results are deterministic.
//
// Malformed records (unparseable dates, non-positive measurements) are
// skipped and logged rather than coerced, so one bad entry never
// poisons an aggregate.
package stats

import (
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const dayLayout = "2006-01-02"

// dayOf extracts the calendar-day part of a record date. Dates arrive
// as "YYYY-MM-DD", occasionally with a time suffix appended by older
// app versions. Returns "" for unparseable input.
func dayOf(date string) string {
	if len(date) < len(dayLayout) {
		return ""
	}
	day := date[:len(dayLayout)]
	if _, err := time.Parse(dayLayout, day); err != nil {
		return ""
	}
	return day
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func logSkippedRecord(id, date string) {
	log.Tracef("stats: skipping record [%s] with unparseable date [%s]", id, date)
}
