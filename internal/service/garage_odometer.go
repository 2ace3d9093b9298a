package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/langchou/lugnut/internal/gate"
	"github.com/langchou/lugnut/internal/insights"
	"github.com/langchou/lugnut/internal/models"
)

// RecordOdometer 手工记录一次里程读数。
// 低于 initial_odometer 或超上限的读数在入账前拒绝；不低于 initial 但
// 低于当前水位线的读数照常入账（补录历史），只是不推进水位线。
func (s *GarageService) RecordOdometer(ctx context.Context, user *models.User, vehicle *models.Vehicle, newOdometer int, entryDate time.Time, notes *string) error {
	if !gate.CanAddOdometerEntry(user.IsPaid) {
		return fmt.Errorf("%w: odometer tracking requires a paid plan", ErrUpgradeRequired)
	}
	if err := validateOdometer(vehicle, newOdometer); err != nil {
		return err
	}

	entryID, err := s.odometerRepo.RecordObservation(ctx, vehicle.ID, vehicle.CurrentOdometer, newOdometer, models.OdometerTypeReading, entryDate, notes)
	if err != nil {
		return err
	}

	if watermark, advanced := insights.AdvanceWatermark(vehicle.CurrentOdometer, newOdometer); advanced {
		vehicle.CurrentOdometer = watermark
	}

	s.logger.Info("Recorded odometer reading",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.Int64("entry_id", entryID),
		zap.Int("odometer", newOdometer),
		zap.Int("current_odometer", vehicle.CurrentOdometer))

	s.broadcastVehicle(vehicle)
	return nil
}

// ListOdometerEntries 获取里程台账，ascending 为 true 时按时间升序（图表用）
func (s *GarageService) ListOdometerEntries(ctx context.Context, vehicle *models.Vehicle, ascending bool) ([]*models.OdometerEntry, error) {
	return s.odometerRepo.ListByVehicle(ctx, vehicle.ID, ascending)
}
