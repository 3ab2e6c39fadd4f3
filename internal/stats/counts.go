package stats

import (
	"time"

	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
)

// WorkoutsThisWeek counts routines created inside the 7-day window
// ending today, the same window the activity histogram covers.
func WorkoutsThisWeek(routines []fitlifeapi.Routine, today time.Time) int {
	windowStart := today.AddDate(0, 0, -6).Format(dayLayout)
	windowEnd := today.Format(dayLayout)

	count := 0
	for _, routine := range routines {
		day := routine.CreatedAt.Format(dayLayout)
		if day >= windowStart && day <= windowEnd {
			count++
		}
	}
	return count
}

// GoalsInProgress counts goals not yet completed or abandoned. Goals
// without a status are still being worked on.
func GoalsInProgress(goals []fitlifeapi.Goal) int {
	count := 0
	for _, goal := range goals {
		switch goal.Status {
		case fitlifeapi.GoalStatusCompleted, fitlifeapi.GoalStatusAbandoned:
		default:
			count++
		}
	}
	return count
}
