package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
)

const recentActivityLimit = 5

const (
	ActivityKindHealth  = "health"
	ActivityKindRoutine = "routine"
	ActivityKindGoal    = "goal"
)

// ActivityItem is one entry in the merged recent-activity feed.
type ActivityItem struct {
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// RecentActivity merges health records, routines and goals into one
// feed, newest first, capped at 5 items. Equal timestamps keep insertion
// order: health records before routines before goals.
func RecentActivity(
	records []fitlifeapi.HealthRecord,
	routines []fitlifeapi.Routine,
	goals []fitlifeapi.Goal,
) []ActivityItem {
	items := make([]ActivityItem, 0, len(records)+len(routines)+len(goals))

	for _, rec := range records {
		items = append(items, ActivityItem{
			Kind:        ActivityKindHealth,
			Description: healthRecordDescription(rec),
			Timestamp:   rec.CreatedAt,
		})
	}
	for _, routine := range routines {
		items = append(items, ActivityItem{
			Kind:        ActivityKindRoutine,
			Description: fmt.Sprintf("Created routine: %s", routine.Name),
			Timestamp:   routine.CreatedAt,
		})
	}
	for _, goal := range goals {
		items = append(items, ActivityItem{
			Kind:        ActivityKindGoal,
			Description: fmt.Sprintf("Set goal: %s", goal.Type),
			Timestamp:   goal.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	if len(items) > recentActivityLimit {
		items = items[:recentActivityLimit]
	}
	return items
}

func healthRecordDescription(rec fitlifeapi.HealthRecord) string {
	value := formatValue(rec.Value)
	switch rec.Type {
	case fitlifeapi.MetricWeight:
		return fmt.Sprintf("Logged weight: %skg", value)
	case fitlifeapi.MetricSteps:
		return fmt.Sprintf("Walked %s steps", value)
	case fitlifeapi.MetricHeartRate:
		return fmt.Sprintf("Heart Rate: %s bpm", value)
	case fitlifeapi.MetricHeight:
		return fmt.Sprintf("Recorded height: %scm", value)
	default:
		return fmt.Sprintf("Logged %s: %s", rec.Type, value)
	}
}
