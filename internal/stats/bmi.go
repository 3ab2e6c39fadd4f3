package stats

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
)

const (
	BMIStatusUnderweight = "Underweight"
	BMIStatusHealthy     = "Healthy"
	BMIStatusOverweight  = "Overweight"
	BMIStatusObese       = "Obese"
)

// BMIResult carries the computed index, its classification and the
// weight it was computed from. BMI is nil when no weight record exists,
// or when a weight exists but no height does (Status is then empty and
// LatestWeight still reported).
type BMIResult struct {
	BMI          *float64 `json:"bmi"`
	Status       string   `json:"status"`
	LatestWeight *float64 `json:"latestWeight"`
}

// BMI computes Body Mass Index from the single most recent weight and
// height record (by created_at), not an average. Records with
// non-positive values are skipped.
func BMI(records []fitlifeapi.HealthRecord) BMIResult {
	latestWeight := latestOfType(records, fitlifeapi.MetricWeight)
	if latestWeight == nil {
		return BMIResult{}
	}

	result := BMIResult{LatestWeight: &latestWeight.Value}

	latestHeight := latestOfType(records, fitlifeapi.MetricHeight)
	if latestHeight == nil {
		return result
	}

	heightM := latestHeight.Value / 100
	bmi := math.Round(latestWeight.Value/(heightM*heightM)*10) / 10
	result.BMI = &bmi
	result.Status = classifyBMI(bmi)
	return result
}

func classifyBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIStatusUnderweight
	case bmi < 25:
		return BMIStatusHealthy
	case bmi < 30:
		return BMIStatusOverweight
	default:
		return BMIStatusObese
	}
}

// latestOfType returns the most recently created record of the given
// metric type with a usable positive value, or nil.
func latestOfType(records []fitlifeapi.HealthRecord, metricType fitlifeapi.MetricType) *fitlifeapi.HealthRecord {
	var latest *fitlifeapi.HealthRecord
	for i := range records {
		rec := &records[i]
		if rec.Type != metricType {
			continue
		}
		if rec.Value <= 0 {
			log.Tracef("stats: skipping %s record [%s] with non-positive value %f", metricType, rec.ID, rec.Value)
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	return latest
}
