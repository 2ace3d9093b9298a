package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/langchou/lugnut/internal/gate"
	"github.com/langchou/lugnut/internal/insights"
	"github.com/langchou/lugnut/internal/models"
)

// FuelEntryView 加油记录及其派生油耗数据，面向列表接口
type FuelEntryView struct {
	*models.FuelEntry
	insights.FillDerived
}

// AddFuelEntry 创建加油记录，里程观测随事务一并入账
func (s *GarageService) AddFuelEntry(ctx context.Context, user *models.User, vehicle *models.Vehicle, f *models.FuelEntry) error {
	if !gate.CanAddFuelEntry(user.IsPaid) {
		return fmt.Errorf("%w: fuel tracking requires a paid plan", ErrUpgradeRequired)
	}
	if err := validateOdometer(vehicle, f.Odometer); err != nil {
		return err
	}

	f.VehicleID = vehicle.ID
	if err := s.fuelRepo.Create(ctx, f, vehicle.CurrentOdometer); err != nil {
		return err
	}

	if watermark, advanced := insights.AdvanceWatermark(vehicle.CurrentOdometer, f.Odometer); advanced {
		vehicle.CurrentOdometer = watermark
	}

	s.logger.Info("Added fuel entry",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.Int64("fuel_entry_id", f.ID),
		zap.Float64("gallons", f.Gallons),
		zap.Int("odometer", f.Odometer))

	s.broadcastVehicle(vehicle)
	return nil
}

// ListFuelEntries 获取加油记录（最新在前）并逐条派生 MPG 和每加仑单价
func (s *GarageService) ListFuelEntries(ctx context.Context, vehicle *models.Vehicle) ([]FuelEntryView, error) {
	entries, err := s.fuelRepo.ListByVehicle(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}

	fills := make([]insights.Fill, len(entries))
	for i, e := range entries {
		fills[i] = insights.Fill{Date: e.Date, Odometer: e.Odometer, Gallons: e.Gallons, TotalCost: e.TotalCost}
	}
	derived := insights.EnrichFuelEntries(fills)

	views := make([]FuelEntryView, len(entries))
	for i := range entries {
		views[i] = FuelEntryView{FuelEntry: entries[i], FillDerived: derived[i]}
	}
	return views, nil
}
