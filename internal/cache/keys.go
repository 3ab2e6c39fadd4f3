package cache

// Well-known logical cache keys. Callers that mutate the underlying
// resource must Remove the matching key before the next read, or the
// cache may serve a stale value indefinitely.
const (
	KeyHealthRecords    = "health_records"
	KeyRoutines         = "routines"
	KeyGoals            = "goals"
	KeyProfile          = "user_profile"
	KeyDashboardSummary = "dashboard_summary"
	KeyWeeklyActivity   = "weekly_activity"
	KeyBMI              = "bmi"
	KeyRecentActivity   = "recent_activity"
)

// UserKey scopes a logical key to one user.
func UserKey(base, userID string) string {
	return base + "_" + userID
}
