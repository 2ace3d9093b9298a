package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langchou/lugnut/internal/models"
)

func iptr(v int) *int { return &v }

func interval(name string, mileage, months *int) *models.ServiceInterval {
	return &models.ServiceInterval{ID: 1, VehicleID: 1, Name: name, MileageInterval: mileage, MonthInterval: months}
}

func TestEvaluateIntervalUnrecorded(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	eval := EvaluateInterval(interval("Oil Change", iptr(5000), nil), nil, 42000, now)
	assert.Equal(t, StatusUnrecorded, eval.Status)
	assert.Nil(t, eval.MilesRemaining)
	assert.Nil(t, eval.DaysRemaining)
}

func TestEvaluateIntervalMileage(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	last := &models.LastServiced{Odometer: 10000, Date: now.AddDate(0, -1, 0)}

	tests := []struct {
		name            string
		currentOdometer int
		wantStatus      IntervalStatus
		wantRemaining   int
	}{
		{"well before due", 12500, StatusUpcoming, 500},
		{"exactly at due", 13000, StatusUpcoming, 0},
		{"past due", 13200, StatusPastDue, -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := EvaluateInterval(interval("Oil Change", iptr(3000), nil), last, tt.currentOdometer, now)
			assert.Equal(t, tt.wantStatus, eval.Status)
			require.NotNil(t, eval.MilesRemaining)
			assert.Equal(t, tt.wantRemaining, *eval.MilesRemaining)
			assert.Nil(t, eval.DaysRemaining)
		})
	}
}

func TestEvaluateIntervalMonths(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// 6 个月前保养过，到期日恰好是今天：未超期，剩 0 天
	last := &models.LastServiced{Odometer: 10000, Date: now.AddDate(0, -6, 0)}
	eval := EvaluateInterval(interval("Coolant Flush", nil, iptr(6)), last, 10000, now)
	assert.Equal(t, StatusUpcoming, eval.Status)
	require.NotNil(t, eval.DaysRemaining)
	assert.Equal(t, 0, *eval.DaysRemaining)
	assert.Nil(t, eval.MilesRemaining)

	// 超期 10 天
	last = &models.LastServiced{Odometer: 10000, Date: time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)}
	eval = EvaluateInterval(interval("Coolant Flush", nil, iptr(6)), last, 10000, now)
	assert.Equal(t, StatusPastDue, eval.Status)
	require.NotNil(t, eval.DaysRemaining)
	assert.Equal(t, -10, *eval.DaysRemaining)
}

func TestEvaluateIntervalDualThresholdOR(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// 里程还剩 500 英里，但时间阈值已超 10 天：任一超即 past_due
	last := &models.LastServiced{
		Odometer: 10000,
		Date:     time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC),
	}
	eval := EvaluateInterval(interval("Oil Change", iptr(3000), iptr(6)), last, 12500, now)

	assert.Equal(t, StatusPastDue, eval.Status)
	require.NotNil(t, eval.MilesRemaining)
	assert.Equal(t, 500, *eval.MilesRemaining)
	require.NotNil(t, eval.DaysRemaining)
	assert.Equal(t, -10, *eval.DaysRemaining)
}

func TestSortByUrgency(t *testing.T) {
	// 混合单位启发式：直接比较剩余英里数与剩余天数的原始数值
	evaluated := []EvaluatedInterval{
		{Interval: interval("Tires", iptr(20000), nil), Evaluation: Evaluation{Status: StatusUpcoming, MilesRemaining: iptr(800)}},
		{Interval: interval("Inspection", nil, iptr(12)), Evaluation: Evaluation{Status: StatusUpcoming, DaysRemaining: iptr(20)}},
		{Interval: interval("Oil Change", iptr(3000), iptr(6)), Evaluation: Evaluation{Status: StatusUpcoming, MilesRemaining: iptr(500), DaysRemaining: iptr(90)}},
	}

	SortByUrgency(evaluated)

	assert.Equal(t, "Inspection", evaluated[0].Interval.Name)
	assert.Equal(t, "Oil Change", evaluated[1].Interval.Name)
	assert.Equal(t, "Tires", evaluated[2].Interval.Name)
}

func TestSummarizeServiceStatusPrecedence(t *testing.T) {
	// past_due 优先于 unrecorded
	evaluated := []EvaluatedInterval{
		{Interval: interval("Oil Change", iptr(3000), nil), Evaluation: Evaluation{Status: StatusPastDue, MilesRemaining: iptr(-200)}},
		{Interval: interval("Coolant Flush", nil, iptr(24)), Evaluation: Evaluation{Status: StatusUnrecorded}},
	}

	summary := SummarizeServiceStatus(evaluated)
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, "service items past due", summary.Message)
}

func TestSummarizeServiceStatusBranches(t *testing.T) {
	assert.Equal(t, ServiceSummary{Count: 0, Message: "No service intervals"}, SummarizeServiceStatus(nil))

	unrecorded := []EvaluatedInterval{
		{Interval: interval("Brakes", iptr(30000), nil), Evaluation: Evaluation{Status: StatusUnrecorded}},
		{Interval: interval("Tires", iptr(20000), nil), Evaluation: Evaluation{Status: StatusUnrecorded}},
	}
	assert.Equal(t, ServiceSummary{Count: 2, Message: "missing service records"}, SummarizeServiceStatus(unrecorded))

	upcoming := []EvaluatedInterval{
		{Interval: interval("Tires", iptr(20000), nil), Evaluation: Evaluation{Status: StatusUpcoming, MilesRemaining: iptr(8000)}},
		{Interval: interval("Oil Change", iptr(3000), nil), Evaluation: Evaluation{Status: StatusUpcoming, MilesRemaining: iptr(500)}},
		// 仅时间阈值的周期不参与里程排名
		{Interval: interval("Inspection", nil, iptr(12)), Evaluation: Evaluation{Status: StatusUpcoming, DaysRemaining: iptr(3)}},
	}
	assert.Equal(t, ServiceSummary{Count: 500, Message: "miles until Oil Change"}, SummarizeServiceStatus(upcoming))

	timeOnly := []EvaluatedInterval{
		{Interval: interval("Inspection", nil, iptr(12)), Evaluation: Evaluation{Status: StatusUpcoming, DaysRemaining: iptr(3)}},
	}
	assert.Equal(t, ServiceSummary{Count: 0, Message: "No upcoming services"}, SummarizeServiceStatus(timeOnly))
}
