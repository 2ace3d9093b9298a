package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/langchou/lugnut/internal/insights"
	"github.com/langchou/lugnut/internal/models"
)

// OdometerRepository 里程台账仓库
type OdometerRepository struct {
	db *DB
}

// NewOdometerRepository 创建里程台账仓库
func NewOdometerRepository(db *DB) *OdometerRepository {
	return &OdometerRepository{db: db}
}

// RecordObservation 记录一次里程观测：插入台账条目，并在读数不低于
// 当前水位线时推进车辆缓存的 current_odometer。两步在同一事务内完成，
// 任一步失败整体回滚（台账与缓存不允许出现半写状态）。
// 返回新条目 ID，供加油/作业记录关联。
func (r *OdometerRepository) RecordObservation(ctx context.Context, vehicleID int64, priorCurrentOdometer, newOdometer int, entryType string, entryDate time.Time, notes *string) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	entryID, err := insertObservation(ctx, tx, vehicleID, priorCurrentOdometer, newOdometer, entryType, entryDate, notes)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return entryID, nil
}

// insertObservation 在既有事务内插入台账条目并套用水位线规则。
// 加油、作业的创建流程复用本函数，把里程观测并进各自的事务。
func insertObservation(ctx context.Context, tx pgx.Tx, vehicleID int64, priorCurrentOdometer, newOdometer int, entryType string, entryDate time.Time, notes *string) (int64, error) {
	var entryID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO odometer_entries (uuid, vehicle_id, odometer, type, entry_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, uuid.NewString(), vehicleID, newOdometer, entryType, entryDate, notes).Scan(&entryID)
	if err != nil {
		return 0, fmt.Errorf("insert odometer entry: %w", err)
	}

	if watermark, advanced := insights.AdvanceWatermark(priorCurrentOdometer, newOdometer); advanced {
		_, err = tx.Exec(ctx, `
			UPDATE vehicles SET current_odometer = $1, updated_at = NOW() WHERE id = $2
		`, watermark, vehicleID)
		if err != nil {
			return 0, fmt.Errorf("advance odometer watermark: %w", err)
		}
	}

	return entryID, nil
}

// ListByVehicle 获取车辆的里程台账。图表用升序，列表用降序，由调用方决定。
func (r *OdometerRepository) ListByVehicle(ctx context.Context, vehicleID int64, ascending bool) ([]*models.OdometerEntry, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	query := `
		SELECT id, uuid, vehicle_id, odometer, type, entry_date, notes, created_at
		FROM odometer_entries WHERE vehicle_id = $1
		ORDER BY entry_date ` + order + `, odometer ` + order

	rows, err := r.db.Pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list odometer entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.OdometerEntry
	for rows.Next() {
		e := &models.OdometerEntry{}
		err := rows.Scan(&e.ID, &e.UUID, &e.VehicleID, &e.Odometer, &e.Type, &e.EntryDate, &e.Notes, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan odometer entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
