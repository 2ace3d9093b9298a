package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/langchou/lugnut/internal/models"
)

// FuelRepository 加油记录仓库
type FuelRepository struct {
	db *DB
}

// NewFuelRepository 创建加油仓库
func NewFuelRepository(db *DB) *FuelRepository {
	return &FuelRepository{db: db}
}

// Create 创建加油记录。同一事务内先写入 fueling 里程观测（含水位线推进），
// 再写入加油行并关联该里程条目。
func (r *FuelRepository) Create(ctx context.Context, f *models.FuelEntry, priorCurrentOdometer int) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	odometerEntryID, err := insertObservation(ctx, tx, f.VehicleID, priorCurrentOdometer, f.Odometer, models.OdometerTypeFueling, f.Date, nil)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO fuel_entries (uuid, vehicle_id, odometer_entry_id, date, gallons, total_cost, gas_station, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, uuid.NewString(), f.VehicleID, odometerEntryID, f.Date, f.Gallons, f.TotalCost, f.GasStation, f.Notes).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("insert fuel entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	f.OdometerEntryID = odometerEntryID
	return nil
}

// ListByVehicle 获取车辆加油记录，按 (date, odometer) 降序（最新在前）。
// 油耗计算依赖这个顺序，不能改。
func (r *FuelRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]*models.FuelEntry, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT f.id, f.uuid, f.vehicle_id, f.odometer_entry_id, f.date, oe.odometer,
			f.gallons, f.total_cost, f.gas_station, f.notes, f.created_at
		FROM fuel_entries f
		INNER JOIN odometer_entries oe ON f.odometer_entry_id = oe.id
		WHERE f.vehicle_id = $1
		ORDER BY f.date DESC, oe.odometer DESC
	`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list fuel entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.FuelEntry
	for rows.Next() {
		f := &models.FuelEntry{}
		err := rows.Scan(&f.ID, &f.UUID, &f.VehicleID, &f.OdometerEntryID, &f.Date, &f.Odometer,
			&f.Gallons, &f.TotalCost, &f.GasStation, &f.Notes, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan fuel entry: %w", err)
		}
		entries = append(entries, f)
	}

	return entries, nil
}

// ListOdometers 获取车辆所有加油时的里程读数（每箱里程统计用）
func (r *FuelRepository) ListOdometers(ctx context.Context, vehicleID int64) ([]int, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT oe.odometer
		FROM fuel_entries f
		INNER JOIN odometer_entries oe ON f.odometer_entry_id = oe.id
		WHERE f.vehicle_id = $1
	`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list fuel odometers: %w", err)
	}
	defer rows.Close()

	var odometers []int
	for rows.Next() {
		var o int
		if err := rows.Scan(&o); err != nil {
			return nil, fmt.Errorf("scan fuel odometer: %w", err)
		}
		odometers = append(odometers, o)
	}

	return odometers, nil
}
