package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/langchou/lugnut/internal/gate"
	"github.com/langchou/lugnut/internal/insights"
	"github.com/langchou/lugnut/internal/models"
)

// AddJob 创建保养作业（含明细、标签、零件），job 类型里程观测随事务入账。
// 免费版受单车作业数配额限制。
func (s *GarageService) AddJob(ctx context.Context, user *models.User, vehicle *models.Vehicle, job *models.Job) error {
	if err := validateOdometer(vehicle, job.Odometer); err != nil {
		return err
	}

	count, err := s.jobRepo.CountByVehicle(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	if !gate.CanAddJob(user.IsPaid, count) {
		return fmt.Errorf("%w: free tier job limit reached", ErrUpgradeRequired)
	}

	job.VehicleID = vehicle.ID
	if err := s.jobRepo.Create(ctx, job, vehicle.CurrentOdometer); err != nil {
		return err
	}

	if watermark, advanced := insights.AdvanceWatermark(vehicle.CurrentOdometer, job.Odometer); advanced {
		vehicle.CurrentOdometer = watermark
	}

	s.logger.Info("Added job",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.Int64("job_id", job.ID),
		zap.String("title", job.Title),
		zap.Int("records", len(job.Records)))

	s.broadcastVehicle(vehicle)
	return nil
}

// ListJobs 获取车辆作业列表，最新在前
func (s *GarageService) ListJobs(ctx context.Context, vehicle *models.Vehicle) ([]*models.Job, error) {
	return s.jobRepo.ListByVehicle(ctx, vehicle.ID)
}

// GetJob 获取作业详情和费用拆分，并校验归属车辆
func (s *GarageService) GetJob(ctx context.Context, vehicle *models.Vehicle, jobID int64) (*models.Job, *models.JobCostBreakdown, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: job %d", ErrNotFound, jobID)
	}
	if job.VehicleID != vehicle.ID {
		return nil, nil, fmt.Errorf("%w: job %d", ErrNotFound, jobID)
	}

	partsCost, laborCost, err := s.jobRepo.CostTotals(ctx, job.ID)
	if err != nil {
		return nil, nil, err
	}

	breakdown := &models.JobCostBreakdown{
		TotalPartsCost: partsCost,
		LaborCost:      laborCost,
		TotalCost:      partsCost + laborCost,
	}
	if job.IsDIY && job.Hours != nil {
		breakdown.DIYLaborSaved = insights.DIYLaborSavedString(*job.Hours, false)
	}
	return job, breakdown, nil
}
