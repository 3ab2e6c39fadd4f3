package stats

import (
	"time"

	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
)

// Streak counts consecutive calendar days with at least one record,
// ending at today or, if today has none yet, at yesterday. Multiple
// records on the same day count once; a day without records breaks the
// run.
func Streak(records []fitlifeapi.HealthRecord, today time.Time) int {
	if len(records) == 0 {
		return 0
	}

	activeDays := make(map[string]struct{}, len(records))
	for _, rec := range records {
		day := dayOf(rec.Date)
		if day == "" {
			logSkippedRecord(rec.ID, rec.Date)
			continue
		}
		activeDays[day] = struct{}{}
	}

	cursor := today
	if _, ok := activeDays[cursor.Format(dayLayout)]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := activeDays[cursor.Format(dayLayout)]; !ok {
			return 0
		}
	}

	streak := 1
	for {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := activeDays[cursor.Format(dayLayout)]; !ok {
			return streak
		}
		streak++
	}
}
