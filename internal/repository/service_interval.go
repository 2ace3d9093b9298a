package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/langchou/lugnut/internal/models"
)

// ServiceIntervalRepository 保养周期仓库
type ServiceIntervalRepository struct {
	db *DB
}

// NewServiceIntervalRepository 创建保养周期仓库
func NewServiceIntervalRepository(db *DB) *ServiceIntervalRepository {
	return &ServiceIntervalRepository{db: db}
}

// Create 创建保养周期及标签关联（同一事务）
func (r *ServiceIntervalRepository) Create(ctx context.Context, si *models.ServiceInterval) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO service_intervals (uuid, vehicle_id, name, mileage_interval, month_interval, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, uuid.NewString(), si.VehicleID, si.Name, si.MileageInterval, si.MonthInterval, si.Notes).Scan(&si.ID)
	if err != nil {
		return fmt.Errorf("insert service interval: %w", err)
	}

	for _, tagName := range si.Tags {
		tagID, err := upsertTag(ctx, tx, tagName)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO service_interval_tags (service_interval_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, si.ID, tagID)
		if err != nil {
			return fmt.Errorf("insert service interval tag: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListWithLastRecord 获取车辆全部保养周期及各自最近一次保养记录。
// 两条查询在 Go 侧合并：周期（含标签）一条，已关联明细（含作业日期和里程）一条，
// 每个周期取作业日期最新的明细作为 last_serviced。
func (r *ServiceIntervalRepository) ListWithLastRecord(ctx context.Context, vehicleID int64) ([]*models.IntervalWithLastRecord, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT si.id, si.uuid, si.vehicle_id, si.name, si.mileage_interval, si.month_interval, si.notes,
			array_remove(array_agg(DISTINCT t.name), NULL), si.created_at
		FROM service_intervals si
		LEFT JOIN service_interval_tags sit ON si.id = sit.service_interval_id
		LEFT JOIN tags t ON sit.tag_id = t.id
		WHERE si.vehicle_id = $1
		GROUP BY si.id
		ORDER BY si.id
	`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list service intervals: %w", err)
	}
	defer rows.Close()

	var result []*models.IntervalWithLastRecord
	byID := make(map[int64]*models.IntervalWithLastRecord)
	for rows.Next() {
		si := &models.ServiceInterval{}
		err := rows.Scan(&si.ID, &si.UUID, &si.VehicleID, &si.Name, &si.MileageInterval, &si.MonthInterval,
			&si.Notes, &si.Tags, &si.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan service interval: %w", err)
		}
		item := &models.IntervalWithLastRecord{Interval: si}
		result = append(result, item)
		byID[si.ID] = item
	}
	rows.Close()

	if len(result) == 0 {
		return result, nil
	}

	recRows, err := r.db.Pool.Query(ctx, `
		SELECT rec.service_interval_id, rec.id, rec.title, j.id, j.date, oe.odometer
		FROM records rec
		INNER JOIN jobs j ON rec.job_id = j.id
		INNER JOIN odometer_entries oe ON j.odometer_entry_id = oe.id
		WHERE j.vehicle_id = $1 AND rec.service_interval_id IS NOT NULL
	`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list interval records: %w", err)
	}
	defer recRows.Close()

	for recRows.Next() {
		var intervalID int64
		ls := &models.LastServiced{}
		err := recRows.Scan(&intervalID, &ls.RecordID, &ls.Title, &ls.JobID, &ls.Date, &ls.Odometer)
		if err != nil {
			return nil, fmt.Errorf("scan interval record: %w", err)
		}
		item, ok := byID[intervalID]
		if !ok {
			continue
		}
		// 作业日期最新的一条胜出
		if item.LastServiced == nil || ls.Date.After(item.LastServiced.Date) {
			item.LastServiced = ls
		}
	}

	return result, nil
}

// LinkRecords 把一批明细关联到保养周期（关联后周期脱离 unrecorded 状态）
func (r *ServiceIntervalRepository) LinkRecords(ctx context.Context, intervalID int64, recordIDs []int64) error {
	if len(recordIDs) == 0 {
		return nil
	}
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE records SET service_interval_id = $1 WHERE id = ANY($2)
	`, intervalID, recordIDs)
	if err != nil {
		return fmt.Errorf("link records: %w", err)
	}
	return nil
}

// GetByIDForVehicle 获取周期并校验归属车辆
func (r *ServiceIntervalRepository) GetByIDForVehicle(ctx context.Context, id, vehicleID int64) (*models.ServiceInterval, error) {
	si := &models.ServiceInterval{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, uuid, vehicle_id, name, mileage_interval, month_interval, notes, created_at
		FROM service_intervals WHERE id = $1 AND vehicle_id = $2
	`, id, vehicleID).Scan(&si.ID, &si.UUID, &si.VehicleID, &si.Name, &si.MileageInterval, &si.MonthInterval, &si.Notes, &si.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get service interval: %w", err)
	}
	return si, nil
}

// Delete 删除保养周期，已关联明细的外键置空
func (r *ServiceIntervalRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM service_intervals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service interval: %w", err)
	}
	return nil
}
