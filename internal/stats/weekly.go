package stats

import (
	"time"

	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
)

// WeeklyActivityPoint is one day in the trailing-week histogram.
type WeeklyActivityPoint struct {
	Day      string `json:"day"`      // short weekday label, e.g. "Mon"
	FullDate string `json:"fullDate"` // human-readable, e.g. "Mar 10"
	Count    int    `json:"count"`
	IsActive bool   `json:"isActive"`
	Date     string `json:"date"` // YYYY-MM-DD
}

// WeeklyActivity produces exactly 7 points for the trailing 7 calendar
// days ending at today, oldest first.
func WeeklyActivity(records []fitlifeapi.HealthRecord, today time.Time) []WeeklyActivityPoint {
	countPerDay := make(map[string]int, len(records))
	for _, rec := range records {
		day := dayOf(rec.Date)
		if day == "" {
			logSkippedRecord(rec.ID, rec.Date)
			continue
		}
		countPerDay[day]++
	}

	points := make([]WeeklyActivityPoint, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		day := today.AddDate(0, 0, offset)
		dayStr := day.Format(dayLayout)
		count := countPerDay[dayStr]
		points = append(points, WeeklyActivityPoint{
			Day:      day.Format("Mon"),
			FullDate: day.Format("Jan 2"),
			Count:    count,
			IsActive: count > 0,
			Date:     dayStr,
		})
	}
	return points
}
