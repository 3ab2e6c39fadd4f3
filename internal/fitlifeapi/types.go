package fitlifeapi

import "time"

type MetricType string

const (
	MetricWeight        MetricType = "weight"
	MetricHeight        MetricType = "height"
	MetricSteps         MetricType = "steps"
	MetricHeartRate     MetricType = "heart_rate"
	MetricBloodPressure MetricType = "blood_pressure"
	MetricBloodSugar    MetricType = "blood_sugar"
	MetricSleepHours    MetricType = "sleep_hours"
	MetricMenstruation  MetricType = "menstruation"
)

func (m MetricType) Valid() bool {
	switch m {
	case MetricWeight, MetricHeight, MetricSteps, MetricHeartRate,
		MetricBloodPressure, MetricBloodSugar, MetricSleepHours, MetricMenstruation:
		return true
	}
	return false
}

// HealthRecord is a single logged health metric. Date holds the calendar
// day the metric belongs to ("2025-03-10", sometimes with a time suffix
// appended by older app versions); CreatedAt is when it was logged.
type HealthRecord struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      MetricType `json:"type"`
	Value     float64    `json:"value"`
	Date      string     `json:"date"`
	CreatedAt time.Time  `json:"created_at"`
}

type Routine struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Name      string            `json:"name"`
	Exercises []RoutineExercise `json:"exercises"`
	CreatedAt time.Time         `json:"created_at"`
}

type RoutineExercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`
}

const (
	GoalStatusInProgress = "in_progress"
	GoalStatusCompleted  = "completed"
	GoalStatusAbandoned  = "abandoned"
)

type Goal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Target    float64   `json:"target"`
	Progress  float64   `json:"progress"`
	Status    string    `json:"status"` // in_progress | completed | abandoned
	CreatedAt time.Time `json:"created_at"`
}

type CalendarEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type UserProfile struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
}

type HealthStats struct {
	TotalRecords int    `json:"total_records"`
	Period       string `json:"period"`
}

// FoodAnalysis is the AI verdict for a food photo.
type FoodAnalysis struct {
	FoodName   string  `json:"food_name"`
	Calories   float64 `json:"calories"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
	Confidence float64 `json:"confidence"`
	Notes      string  `json:"notes"`
}

type NutritionInfo struct {
	Barcode     string   `json:"barcode"`
	ProductName string   `json:"product_name"`
	Calories    float64  `json:"calories"`
	ProteinG    float64  `json:"protein_g"`
	CarbsG      float64  `json:"carbs_g"`
	FatG        float64  `json:"fat_g"`
	Ingredients []string `json:"ingredients"`
}

type HealthInsight struct {
	Summary     string   `json:"summary"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}
