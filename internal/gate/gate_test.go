package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAddVehicle(t *testing.T) {
	assert.True(t, CanAddVehicle(false, 0))
	assert.False(t, CanAddVehicle(false, 1))
	assert.True(t, CanAddVehicle(true, 10))
}

func TestCanAddJob(t *testing.T) {
	assert.True(t, CanAddJob(false, 0))
	assert.True(t, CanAddJob(false, 1))
	assert.False(t, CanAddJob(false, 2))
	assert.True(t, CanAddJob(true, 100))
}

func TestPaidOnlyFeatures(t *testing.T) {
	assert.False(t, CanAddFuelEntry(false))
	assert.True(t, CanAddFuelEntry(true))
	assert.False(t, CanAddOdometerEntry(false))
	assert.True(t, CanAddOdometerEntry(true))
	assert.False(t, CanAddServiceInterval(false))
	assert.True(t, CanAddServiceInterval(true))
}
