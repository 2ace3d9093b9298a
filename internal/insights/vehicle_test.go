package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMilesDrivenPerDay(t *testing.T) {
	purchase := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC) // 100 天后

	assert.Equal(t, "10.0 miles per day", MilesDrivenPerDay(1000, 2000, purchase, today))

	// initialOdometer == 0 是"尚无读数"哨兵
	assert.Equal(t, "No initial odometer reading yet", MilesDrivenPerDay(0, 2000, purchase, today))

	// 购车当天不会除以零
	assert.Equal(t, "0.0 miles per day", MilesDrivenPerDay(1000, 1000, purchase, purchase))
}

func TestFormatDIYHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "No DIY work yet"},
		{2, "2h spent DIYing"},
		{0.25, "15m spent DIYing"},
		{25.5, "1d 1h 30m spent DIYing"},
		{48, "2d spent DIYing"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDIYHours(tt.hours))
	}
}

func TestDIYLaborSavedString(t *testing.T) {
	assert.Equal(t, "No DIY work yet", DIYLaborSavedString(0, true))
	// 10h * 0.4 * $140 = $560.00
	assert.Equal(t, "$560.00 saved in labor", DIYLaborSavedString(10, true))
	assert.Equal(t, "$560.00", DIYLaborSavedString(10, false))
}
