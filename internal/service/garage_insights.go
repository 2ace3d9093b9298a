package service

import (
	"context"
	"time"

	"github.com/langchou/lugnut/internal/insights"
	"github.com/langchou/lugnut/internal/models"
)

// VehicleInsights 车辆仪表盘数据：油耗、用车强度、DIY 统计和保养摘要
type VehicleInsights struct {
	AverageMPG      float64                 `json:"average_mpg"`
	MilesPerTank    string                  `json:"miles_per_tank"`
	MilesPerDay     string                  `json:"miles_per_day"`
	DIYDuration     string                  `json:"diy_duration"`
	DIYLaborSaved   string                  `json:"diy_labor_saved"`
	ServiceSummary  insights.ServiceSummary `json:"service_summary"`
	CurrentOdometer int                     `json:"current_odometer"`
	DaysOwned       int                     `json:"days_owned"`
}

// GetVehicleInsights 组装车辆仪表盘。日均里程的起算日取购车日期，
// 未填购车日期时退回车辆创建时间。
func (s *GarageService) GetVehicleInsights(ctx context.Context, vehicle *models.Vehicle) (*VehicleInsights, error) {
	fuelOdometers, err := s.fuelRepo.ListOdometers(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}

	entries, err := s.fuelRepo.ListByVehicle(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	fills := make([]insights.Fill, len(entries))
	for i, e := range entries {
		fills[i] = insights.Fill{Date: e.Date, Odometer: e.Odometer, Gallons: e.Gallons, TotalCost: e.TotalCost}
	}

	diyHours, err := s.jobRepo.SumDIYHours(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}

	_, summary, err := s.ListServiceIntervals(ctx, vehicle)
	if err != nil {
		return nil, err
	}

	since := vehicle.CreatedAt
	if vehicle.PurchaseDate != nil {
		since = *vehicle.PurchaseDate
	}
	daysOwned := int(time.Since(since).Hours() / 24)
	if daysOwned < 0 {
		daysOwned = 0
	}

	return &VehicleInsights{
		AverageMPG:      insights.AverageMPG(insights.EnrichFuelEntries(fills)),
		MilesPerTank:    insights.MilesPerTank(fuelOdometers),
		MilesPerDay:     insights.MilesDrivenPerDay(vehicle.InitialOdometer, vehicle.CurrentOdometer, since, time.Now()),
		DIYDuration:     insights.FormatDIYHours(diyHours),
		DIYLaborSaved:   insights.DIYLaborSavedString(diyHours, true),
		ServiceSummary:  summary,
		CurrentOdometer: vehicle.CurrentOdometer,
		DaysOwned:       daysOwned,
	}, nil
}
