package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/langchou/lugnut/internal/gate"
	"github.com/langchou/lugnut/internal/models"
	"github.com/langchou/lugnut/internal/repository"
	"github.com/langchou/lugnut/pkg/ws"
)

// 配额与校验失败用哨兵错误区分，handler 据此映射状态码
var (
	ErrUpgradeRequired      = errors.New("upgrade required")
	ErrOdometerBelowInitial = errors.New("odometer below initial reading")
	ErrOdometerOutOfRange   = errors.New("odometer exceeds maximum reading")
	ErrNotFound             = errors.New("not found")
)

// 里程读数上限。台账只增不改、水位线只进不退，抄错的天文数字一旦入账
// 就没有恢复手段，所以在进台账之前拒绝。
const maxOdometerReading = 10000000

// validateOdometer 校验一次里程读数：不低于建车读数、不超上限。
// 读数为 0 且 initial_odometer 为 0 的新车合法。
func validateOdometer(vehicle *models.Vehicle, odometer int) error {
	if odometer < vehicle.InitialOdometer {
		return fmt.Errorf("%w: %d < %d", ErrOdometerBelowInitial, odometer, vehicle.InitialOdometer)
	}
	if odometer > maxOdometerReading {
		return fmt.Errorf("%w: %d > %d", ErrOdometerOutOfRange, odometer, maxOdometerReading)
	}
	return nil
}

// GarageService 车库服务，负责车辆档案和各类记录的编排：
// 配额判定 → 业务校验 → 仓库写入 → WebSocket 广播
type GarageService struct {
	logger       *zap.Logger
	userRepo     *repository.UserRepository
	vehicleRepo  *repository.VehicleRepository
	odometerRepo *repository.OdometerRepository
	fuelRepo     *repository.FuelRepository
	jobRepo      *repository.JobRepository
	intervalRepo *repository.ServiceIntervalRepository
	wsHub        *ws.Hub
}

// NewGarageService 创建车库服务
func NewGarageService(
	logger *zap.Logger,
	userRepo *repository.UserRepository,
	vehicleRepo *repository.VehicleRepository,
	odometerRepo *repository.OdometerRepository,
	fuelRepo *repository.FuelRepository,
	jobRepo *repository.JobRepository,
	intervalRepo *repository.ServiceIntervalRepository,
	wsHub *ws.Hub,
) *GarageService {
	return &GarageService{
		logger:       logger,
		userRepo:     userRepo,
		vehicleRepo:  vehicleRepo,
		odometerRepo: odometerRepo,
		fuelRepo:     fuelRepo,
		jobRepo:      jobRepo,
		intervalRepo: intervalRepo,
		wsHub:        wsHub,
	}
}

// GetUser 获取用户资料
func (s *GarageService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// CreateVehicle 创建车辆。免费版受车辆数配额限制。
func (s *GarageService) CreateVehicle(ctx context.Context, user *models.User, v *models.Vehicle) error {
	count, err := s.vehicleRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if !gate.CanAddVehicle(user.IsPaid, count) {
		return fmt.Errorf("%w: free tier vehicle limit reached", ErrUpgradeRequired)
	}

	v.UserID = user.ID
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return err
	}

	s.logger.Info("Created vehicle",
		zap.Int64("vehicle_id", v.ID),
		zap.String("name", v.DisplayName()),
		zap.Int("initial_odometer", v.InitialOdometer))

	s.broadcastVehicle(v)
	return nil
}

// GetVehicle 获取车辆并校验归属
func (s *GarageService) GetVehicle(ctx context.Context, user *models.User, vehicleID int64) (*models.Vehicle, error) {
	v, err := s.vehicleRepo.GetByIDForUser(ctx, vehicleID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: vehicle %d", ErrNotFound, vehicleID)
	}
	return v, nil
}

// ListVehicles 获取用户车辆列表
func (s *GarageService) ListVehicles(ctx context.Context, user *models.User) ([]*models.Vehicle, error) {
	return s.vehicleRepo.ListByUser(ctx, user.ID)
}

// AllVehicles 获取全部车辆（WebSocket 初始数据用）
func (s *GarageService) AllVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	return s.vehicleRepo.List(ctx)
}

// DeleteVehicle 删除车辆及其全部记录
func (s *GarageService) DeleteVehicle(ctx context.Context, user *models.User, vehicleID int64) error {
	v, err := s.GetVehicle(ctx, user, vehicleID)
	if err != nil {
		return err
	}
	if err := s.vehicleRepo.Delete(ctx, v.ID); err != nil {
		return err
	}
	s.logger.Info("Deleted vehicle", zap.Int64("vehicle_id", v.ID), zap.String("name", v.DisplayName()))
	return nil
}

// broadcastVehicle 把车辆摘要推给 WebSocket 客户端
func (s *GarageService) broadcastVehicle(v *models.Vehicle) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.BroadcastVehicleUpdate(v)
	s.logger.Debug("Broadcasted vehicle update", zap.Int64("vehicle_id", v.ID))
}
