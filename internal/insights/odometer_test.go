package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceWatermark(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		observed int
		want     int
		advanced bool
	}{
		{"higher reading advances", 1000, 1500, 1500, true},
		{"equal reading advances", 1000, 1000, 1000, true},
		{"lower reading keeps watermark", 1000, 800, 1000, false},
		{"zero start", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, advanced := AdvanceWatermark(tt.current, tt.observed)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.advanced, advanced)
		})
	}
}

func TestAdvanceWatermarkMonotonic(t *testing.T) {
	// 任意顺序的一串读数，最终水位线等于所有读数与初始值的最大值
	initial := 5000
	readings := []int{5200, 4100, 9000, 8999, 100, 9000, 7500}

	watermark := initial
	for _, r := range readings {
		next, _ := AdvanceWatermark(watermark, r)
		assert.GreaterOrEqual(t, next, watermark, "watermark never decreases")
		watermark = next
	}

	assert.Equal(t, 9000, watermark)
}
