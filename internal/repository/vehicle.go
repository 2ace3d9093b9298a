package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/langchou/lugnut/internal/models"
)

// VehicleRepository 车辆数据仓库
type VehicleRepository struct {
	db *DB
}

// NewVehicleRepository 创建车辆仓库
func NewVehicleRepository(db *DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create 创建车辆，并在同一事务里写入唯一的 initial 里程台账条目。
// current_odometer 初始即为 initial_odometer，作为水位线起点。
func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx, `
		INSERT INTO vehicles (uuid, user_id, make, model, year, license_plate, vin, nickname,
			initial_odometer, current_odometer, registration_expiration, purchase_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, uuid.NewString(), v.UserID, v.Make, v.Model, v.Year, v.LicensePlate, v.VIN, v.Nickname,
		v.InitialOdometer, v.InitialOdometer, v.RegistrationExpiration, v.PurchaseDate, now, now,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO odometer_entries (uuid, vehicle_id, odometer, type, entry_date)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), v.ID, v.InitialOdometer, models.OdometerTypeInitial, now)
	if err != nil {
		return fmt.Errorf("insert initial odometer entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	v.CurrentOdometer = v.InitialOdometer
	v.CreatedAt = now
	v.UpdatedAt = now
	return nil
}

const vehicleColumns = `id, uuid, user_id, make, model, year, license_plate, vin, nickname,
	initial_odometer, current_odometer, registration_expiration, purchase_date, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := row.Scan(
		&v.ID, &v.UUID, &v.UserID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.VIN, &v.Nickname,
		&v.InitialOdometer, &v.CurrentOdometer, &v.RegistrationExpiration, &v.PurchaseDate, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetByID 通过 ID 获取车辆
func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	v, err := scanVehicle(row)
	if err != nil {
		return nil, fmt.Errorf("get vehicle by id: %w", err)
	}
	return v, nil
}

// GetByIDForUser 获取车辆并校验归属
func (r *VehicleRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*models.Vehicle, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1 AND user_id = $2`, id, userID)
	v, err := scanVehicle(row)
	if err != nil {
		return nil, fmt.Errorf("get vehicle for user: %w", err)
	}
	return v, nil
}

// ListByUser 获取用户的车辆列表
func (r *VehicleRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Vehicle, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

// List 获取全部车辆（WebSocket 初始数据用）
func (r *VehicleRepository) List(ctx context.Context) ([]*models.Vehicle, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list all vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

// CountByUser 统计用户车辆数（免费版配额判定用）
func (r *VehicleRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return count, nil
}

// Delete 删除车辆，台账/作业/加油记录随外键级联删除
func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}
