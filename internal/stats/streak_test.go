package stats

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"

	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
)

var testToday = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

func recordOn(date string) fitlifeapi.HealthRecord {
	return fitlifeapi.HealthRecord{
		ID:    gofakeit.UUID(),
		Type:  fitlifeapi.MetricSteps,
		Value: float64(gofakeit.Number(1000, 20000)),
		Date:  date,
	}
}

func TestStreak(t *testing.T) {
	for name, tc := range map[string]struct {
		records  []fitlifeapi.HealthRecord
		expected int
	}{
		"empty input": {
			records:  nil,
			expected: 0,
		},
		"three consecutive days ending today": {
			records: []fitlifeapi.HealthRecord{
				recordOn("2025-03-12"),
				recordOn("2025-03-11"),
				recordOn("2025-03-10"),
			},
			expected: 3,
		},
		"gap breaks the run": {
			records: []fitlifeapi.HealthRecord{
				recordOn("2025-03-12"),
				recordOn("2025-03-09"),
			},
			expected: 1,
		},
		"streak can end yesterday": {
			records: []fitlifeapi.HealthRecord{
				recordOn("2025-03-11"),
				recordOn("2025-03-10"),
			},
			expected: 2,
		},
		"older days only": {
			records: []fitlifeapi.HealthRecord{
				recordOn("2025-03-08"),
				recordOn("2025-03-07"),
			},
			expected: 0,
		},
		"multiple records per day count once": {
			records: []fitlifeapi.HealthRecord{
				recordOn("2025-03-12"),
				recordOn("2025-03-12"),
				recordOn("2025-03-12"),
				recordOn("2025-03-11"),
			},
			expected: 2,
		},
		"future dates are ignored": {
			records: []fitlifeapi.HealthRecord{
				recordOn("2025-03-20"),
				recordOn("2025-03-25"),
			},
			expected: 0,
		},
		"date with time suffix still counts": {
			records: []fitlifeapi.HealthRecord{
				recordOn("2025-03-12T08:30:00"),
				recordOn("2025-03-11"),
			},
			expected: 2,
		},
		"malformed dates are skipped": {
			records: []fitlifeapi.HealthRecord{
				recordOn("2025-03-12"),
				recordOn("not-a-date"),
				recordOn(""),
			},
			expected: 1,
		},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Streak(tc.records, testToday))
		})
	}
}
