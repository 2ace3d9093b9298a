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

// AddServiceInterval 创建保养周期。里程和月数阈值至少配置其一，
// 由数据库 CHECK 约束兜底，这里提前校验给出可读错误。
func (s *GarageService) AddServiceInterval(ctx context.Context, user *models.User, vehicle *models.Vehicle, si *models.ServiceInterval) error {
	if !gate.CanAddServiceInterval(user.IsPaid) {
		return fmt.Errorf("%w: service intervals require a paid plan", ErrUpgradeRequired)
	}
	if si.MileageInterval == nil && si.MonthInterval == nil {
		return fmt.Errorf("service interval needs a mileage or month threshold")
	}

	si.VehicleID = vehicle.ID
	if err := s.intervalRepo.Create(ctx, si); err != nil {
		return err
	}

	s.logger.Info("Added service interval",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.Int64("interval_id", si.ID),
		zap.String("name", si.Name))
	return nil
}

// ListServiceIntervals 获取车辆全部保养周期，逐条对照当前里程评估状态，
// 按紧迫度排序后连同摘要一起返回
func (s *GarageService) ListServiceIntervals(ctx context.Context, vehicle *models.Vehicle) ([]insights.EvaluatedInterval, insights.ServiceSummary, error) {
	items, err := s.intervalRepo.ListWithLastRecord(ctx, vehicle.ID)
	if err != nil {
		return nil, insights.ServiceSummary{}, err
	}

	now := time.Now()
	evaluated := make([]insights.EvaluatedInterval, len(items))
	for i, item := range items {
		evaluated[i] = insights.EvaluatedInterval{
			Interval:     item.Interval,
			LastServiced: item.LastServiced,
			Evaluation:   insights.EvaluateInterval(item.Interval, item.LastServiced, vehicle.CurrentOdometer, now),
		}
	}

	insights.SortByUrgency(evaluated)
	return evaluated, insights.SummarizeServiceStatus(evaluated), nil
}

// DeleteServiceInterval 删除保养周期，已关联的明细保留但脱钩
func (s *GarageService) DeleteServiceInterval(ctx context.Context, vehicle *models.Vehicle, intervalID int64) error {
	si, err := s.intervalRepo.GetByIDForVehicle(ctx, intervalID, vehicle.ID)
	if err != nil {
		return fmt.Errorf("%w: service interval %d", ErrNotFound, intervalID)
	}
	if err := s.intervalRepo.Delete(ctx, si.ID); err != nil {
		return err
	}
	s.logger.Info("Deleted service interval", zap.Int64("vehicle_id", vehicle.ID), zap.Int64("interval_id", si.ID))
	return nil
}

// LinkRecords 把既有作业明细关联到保养周期，补齐历史
func (s *GarageService) LinkRecords(ctx context.Context, vehicle *models.Vehicle, intervalID int64, recordIDs []int64) error {
	si, err := s.intervalRepo.GetByIDForVehicle(ctx, intervalID, vehicle.ID)
	if err != nil {
		return fmt.Errorf("%w: service interval %d", ErrNotFound, intervalID)
	}
	if err := s.intervalRepo.LinkRecords(ctx, si.ID, recordIDs); err != nil {
		return err
	}
	s.logger.Info("Linked records to service interval",
		zap.Int64("interval_id", si.ID),
		zap.Int("records", len(recordIDs)))
	return nil
}

// ListUnlinkedRecords 获取尚未关联任何周期的作业明细
func (s *GarageService) ListUnlinkedRecords(ctx context.Context, vehicle *models.Vehicle) ([]*models.Record, error) {
	return s.jobRepo.ListUnlinkedRecords(ctx, vehicle.ID)
}
