package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/langchou/lugnut/internal/models"
)

// JobRepository 保养作业仓库
type JobRepository struct {
	db *DB
}

// NewJobRepository 创建作业仓库
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create 创建作业及其明细和零件。同一事务内：
// 写入 job 类型里程观测（含水位线推进）→ 作业 → 明细（含标签）→ 零件。
func (r *JobRepository) Create(ctx context.Context, job *models.Job, priorCurrentOdometer int) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	odometerEntryID, err := insertObservation(ctx, tx, job.VehicleID, priorCurrentOdometer, job.Odometer, models.OdometerTypeJob, job.Date, nil)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO jobs (uuid, vehicle_id, odometer_entry_id, title, date, labor_cost, is_diy, difficulty, shop_name, notes, url, hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, uuid.NewString(), job.VehicleID, odometerEntryID, job.Title, job.Date, job.LaborCost,
		job.IsDIY, job.Difficulty, job.ShopName, job.Notes, job.URL, job.Hours).Scan(&job.ID)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	for _, record := range job.Records {
		if err := insertRecord(ctx, tx, job.ID, record); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	job.OdometerEntryID = odometerEntryID
	return nil
}

func insertRecord(ctx context.Context, tx pgx.Tx, jobID int64, record *models.Record) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO records (uuid, job_id, service_interval_id, title, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, uuid.NewString(), jobID, record.ServiceIntervalID, record.Title, record.Notes).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	for _, tagName := range record.Tags {
		tagID, err := upsertTag(ctx, tx, tagName)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO record_tags (record_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, record.ID, tagID)
		if err != nil {
			return fmt.Errorf("insert record tag: %w", err)
		}
	}

	for _, part := range record.Parts {
		err := tx.QueryRow(ctx, `
			INSERT INTO parts (uuid, record_id, name, part_number, manufacturer, cost, quantity, url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, uuid.NewString(), record.ID, part.Name, part.PartNumber, part.Manufacturer, part.Cost, part.Quantity, part.URL).Scan(&part.ID)
		if err != nil {
			return fmt.Errorf("insert part: %w", err)
		}
	}

	return nil
}

// upsertTag 按名称取标签，不存在则创建
func upsertTag(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	var tagID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO tags (uuid, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, uuid.NewString(), name).Scan(&tagID)
	if err != nil {
		return 0, fmt.Errorf("upsert tag: %w", err)
	}
	return tagID, nil
}

// ListByVehicle 获取车辆作业列表，最新在前
func (r *JobRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]*models.Job, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT j.id, j.uuid, j.vehicle_id, j.odometer_entry_id, j.title, j.date, oe.odometer,
			j.labor_cost, j.is_diy, j.difficulty, j.shop_name, j.notes, j.url, j.hours, j.created_at
		FROM jobs j
		INNER JOIN odometer_entries oe ON j.odometer_entry_id = oe.id
		WHERE j.vehicle_id = $1 ORDER BY j.date DESC
	`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// GetByID 获取作业详情，含明细、标签和零件
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT j.id, j.uuid, j.vehicle_id, j.odometer_entry_id, j.title, j.date, oe.odometer,
			j.labor_cost, j.is_diy, j.difficulty, j.shop_name, j.notes, j.url, j.hours, j.created_at
		FROM jobs j
		INNER JOIN odometer_entries oe ON j.odometer_entry_id = oe.id
		WHERE j.id = $1
	`, id)

	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("get job by id: %w", err)
	}

	if err := r.loadRecords(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// loadRecords 加载作业的明细、标签和零件
func (r *JobRepository) loadRecords(ctx context.Context, job *models.Job) error {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT r.id, r.uuid, r.job_id, r.service_interval_id, r.title, r.notes,
			array_remove(array_agg(DISTINCT t.name), NULL)
		FROM records r
		LEFT JOIN record_tags rt ON r.id = rt.record_id
		LEFT JOIN tags t ON rt.tag_id = t.id
		WHERE r.job_id = $1
		GROUP BY r.id
		ORDER BY r.id
	`, job.ID)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	recordsByID := make(map[int64]*models.Record)
	for rows.Next() {
		rec := &models.Record{}
		err := rows.Scan(&rec.ID, &rec.UUID, &rec.JobID, &rec.ServiceIntervalID, &rec.Title, &rec.Notes, &rec.Tags)
		if err != nil {
			return fmt.Errorf("scan record: %w", err)
		}
		job.Records = append(job.Records, rec)
		recordsByID[rec.ID] = rec
	}
	rows.Close()

	if len(recordsByID) == 0 {
		return nil
	}

	recordIDs := make([]int64, 0, len(recordsByID))
	for id := range recordsByID {
		recordIDs = append(recordIDs, id)
	}

	partRows, err := r.db.Pool.Query(ctx, `
		SELECT id, uuid, record_id, name, part_number, manufacturer, cost, quantity, url
		FROM parts WHERE record_id = ANY($1) ORDER BY id
	`, recordIDs)
	if err != nil {
		return fmt.Errorf("list parts: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		p := &models.Part{}
		err := partRows.Scan(&p.ID, &p.UUID, &p.RecordID, &p.Name, &p.PartNumber, &p.Manufacturer, &p.Cost, &p.Quantity, &p.URL)
		if err != nil {
			return fmt.Errorf("scan part: %w", err)
		}
		if rec, ok := recordsByID[p.RecordID]; ok {
			rec.Parts = append(rec.Parts, p)
		}
	}

	return nil
}

// CountByVehicle 统计车辆作业数（免费版配额判定用）
func (r *JobRepository) CountByVehicle(ctx context.Context, vehicleID int64) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE vehicle_id = $1`, vehicleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return count, nil
}

// SumDIYHours 累计车辆的 DIY 工时
func (r *JobRepository) SumDIYHours(ctx context.Context, vehicleID int64) (float64, error) {
	var hours float64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(hours), 0) FROM jobs WHERE vehicle_id = $1 AND is_diy = true
	`, vehicleID).Scan(&hours)
	if err != nil {
		return 0, fmt.Errorf("sum diy hours: %w", err)
	}
	return hours, nil
}

// CostTotals 作业费用合计：零件小计（单价×数量）与人工费
func (r *JobRepository) CostTotals(ctx context.Context, jobID int64) (partsCost, laborCost float64, err error) {
	err = r.db.Pool.QueryRow(ctx, `
		SELECT COALESCE((
			SELECT SUM(p.cost * p.quantity)
			FROM parts p INNER JOIN records rec ON p.record_id = rec.id
			WHERE rec.job_id = j.id
		), 0), j.labor_cost
		FROM jobs j WHERE j.id = $1
	`, jobID).Scan(&partsCost, &laborCost)
	if err != nil {
		err = fmt.Errorf("job cost totals: %w", err)
	}
	return
}

// ListUnlinkedRecords 获取车辆上尚未关联保养周期的明细（关联弹窗用）
func (r *JobRepository) ListUnlinkedRecords(ctx context.Context, vehicleID int64) ([]*models.Record, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT r.id, r.uuid, r.job_id, r.service_interval_id, r.title, r.notes
		FROM records r
		INNER JOIN jobs j ON r.job_id = j.id
		WHERE j.vehicle_id = $1 AND r.service_interval_id IS NULL
		ORDER BY j.date DESC
	`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list unlinked records: %w", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		rec := &models.Record{}
		err := rows.Scan(&rec.ID, &rec.UUID, &rec.JobID, &rec.ServiceIntervalID, &rec.Title, &rec.Notes)
		if err != nil {
			return nil, fmt.Errorf("scan unlinked record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func scanJob(row interface{ Scan(...any) error }) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.UUID, &j.VehicleID, &j.OdometerEntryID, &j.Title, &j.Date, &j.Odometer,
		&j.LaborCost, &j.IsDIY, &j.Difficulty, &j.ShopName, &j.Notes, &j.URL, &j.Hours, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func scanJobs(rows pgx.Rows) ([]*models.Job, error) {
	var jobs []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
