package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/langchou/lugnut/internal/models"
)

func newTestService() *GarageService {
	return NewGarageService(zap.NewNop(), nil, nil, nil, nil, nil, nil, nil)
}

func TestValidateOdometer(t *testing.T) {
	vehicle := &models.Vehicle{InitialOdometer: 1000}

	assert.NoError(t, validateOdometer(vehicle, 1000))
	assert.NoError(t, validateOdometer(vehicle, 50000))
	assert.NoError(t, validateOdometer(vehicle, maxOdometerReading))

	assert.ErrorIs(t, validateOdometer(vehicle, 999), ErrOdometerBelowInitial)
	assert.ErrorIs(t, validateOdometer(vehicle, maxOdometerReading+1), ErrOdometerOutOfRange)
	assert.ErrorIs(t, validateOdometer(vehicle, 99999999), ErrOdometerOutOfRange)
}

func TestValidateOdometerZeroInitial(t *testing.T) {
	// initial_odometer 为 0 的新车，读数 0 合法
	vehicle := &models.Vehicle{InitialOdometer: 0}
	assert.NoError(t, validateOdometer(vehicle, 0))
}

func TestRecordOdometerRejectsOutOfRange(t *testing.T) {
	svc := newTestService()
	user := &models.User{ID: 1, IsPaid: true}
	vehicle := &models.Vehicle{ID: 1, InitialOdometer: 1000, CurrentOdometer: 5000}

	err := svc.RecordOdometer(context.Background(), user, vehicle, 99999999, time.Now(), nil)
	require.ErrorIs(t, err, ErrOdometerOutOfRange)

	// 拒绝发生在入账之前，水位线不动
	assert.Equal(t, 5000, vehicle.CurrentOdometer)
}

func TestRecordOdometerRejectsBelowInitial(t *testing.T) {
	svc := newTestService()
	user := &models.User{ID: 1, IsPaid: true}
	vehicle := &models.Vehicle{ID: 1, InitialOdometer: 1000, CurrentOdometer: 5000}

	err := svc.RecordOdometer(context.Background(), user, vehicle, 500, time.Now(), nil)
	require.ErrorIs(t, err, ErrOdometerBelowInitial)
	assert.Equal(t, 5000, vehicle.CurrentOdometer)
}

func TestAddFuelEntryRejectsOutOfRange(t *testing.T) {
	svc := newTestService()
	user := &models.User{ID: 1, IsPaid: true}
	vehicle := &models.Vehicle{ID: 1, InitialOdometer: 1000, CurrentOdometer: 5000}

	entry := &models.FuelEntry{Date: time.Now(), Odometer: maxOdometerReading + 1, Gallons: 10}
	err := svc.AddFuelEntry(context.Background(), user, vehicle, entry)
	require.ErrorIs(t, err, ErrOdometerOutOfRange)
	assert.Equal(t, 5000, vehicle.CurrentOdometer)
}

func TestAddJobRejectsOutOfRange(t *testing.T) {
	svc := newTestService()
	user := &models.User{ID: 1, IsPaid: true}
	vehicle := &models.Vehicle{ID: 1, InitialOdometer: 1000, CurrentOdometer: 5000}

	job := &models.Job{Title: "Oil change", Date: time.Now(), Odometer: maxOdometerReading + 1}
	err := svc.AddJob(context.Background(), user, vehicle, job)
	require.ErrorIs(t, err, ErrOdometerOutOfRange)
	assert.Equal(t, 5000, vehicle.CurrentOdometer)
}
