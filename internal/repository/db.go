package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 数据库连接池封装
type DB struct {
	Pool *pgxpool.Pool
}

// New 创建数据库连接
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// 连接池配置
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close 关闭连接池
func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateUsers,
		migrationCreateVehicles,
		migrationCreateOdometerEntries,
		migrationCreateJobs,
		migrationCreateServiceIntervals,
		migrationCreateRecords,
		migrationCreateParts,
		migrationCreateTags,
		migrationCreateRecordTags,
		migrationCreateServiceIntervalTags,
		migrationCreateFuelEntries,
	}

	for _, m := range migrations {
		if _, err := db.Pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// 数据库迁移 SQL
const migrationCreateUsers = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    uuid UUID NOT NULL UNIQUE,
    name TEXT,
    email TEXT NOT NULL UNIQUE,
    is_paid BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`

const migrationCreateVehicles = `
CREATE TABLE IF NOT EXISTS vehicles (
    id BIGSERIAL PRIMARY KEY,
    uuid UUID NOT NULL UNIQUE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    make TEXT NOT NULL,
    model TEXT NOT NULL,
    year INT NOT NULL,
    license_plate TEXT,
    vin TEXT,
    nickname TEXT,
    initial_odometer INT NOT NULL,
    current_odometer INT NOT NULL,
    registration_expiration TIMESTAMP WITH TIME ZONE,
    purchase_date TIMESTAMP WITH TIME ZONE,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_vehicles_user_id ON vehicles(user_id);
`

const migrationCreateOdometerEntries = `
CREATE TABLE IF NOT EXISTS odometer_entries (
    id BIGSERIAL PRIMARY KEY,
    uuid UUID NOT NULL UNIQUE,
    vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
    odometer INT NOT NULL,
    type VARCHAR(20) NOT NULL,
    entry_date TIMESTAMP WITH TIME ZONE NOT NULL,
    notes TEXT,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_odometer_entries_vehicle_id ON odometer_entries(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_odometer_entries_entry_date ON odometer_entries(entry_date);
`

const migrationCreateJobs = `
CREATE TABLE IF NOT EXISTS jobs (
    id BIGSERIAL PRIMARY KEY,
    uuid UUID NOT NULL UNIQUE,
    vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
    odometer_entry_id BIGINT NOT NULL REFERENCES odometer_entries(id),
    title TEXT NOT NULL,
    date TIMESTAMP WITH TIME ZONE NOT NULL,
    labor_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
    is_diy BOOLEAN NOT NULL DEFAULT true,
    difficulty INT NOT NULL DEFAULT 0,
    shop_name TEXT,
    notes TEXT,
    url TEXT,
    hours DOUBLE PRECISION,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_jobs_vehicle_id ON jobs(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_jobs_date ON jobs(date);
`

const migrationCreateServiceIntervals = `
CREATE TABLE IF NOT EXISTS service_intervals (
    id BIGSERIAL PRIMARY KEY,
    uuid UUID NOT NULL UNIQUE,
    vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    mileage_interval INT,
    month_interval INT,
    notes TEXT,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    CONSTRAINT service_intervals_threshold CHECK (mileage_interval IS NOT NULL OR month_interval IS NOT NULL)
);
CREATE INDEX IF NOT EXISTS idx_service_intervals_vehicle_id ON service_intervals(vehicle_id);
`

const migrationCreateRecords = `
CREATE TABLE IF NOT EXISTS records (
    id BIGSERIAL PRIMARY KEY,
    uuid UUID NOT NULL UNIQUE,
    job_id BIGINT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
    service_interval_id BIGINT REFERENCES service_intervals(id) ON DELETE SET NULL,
    title TEXT NOT NULL,
    notes TEXT,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_records_job_id ON records(job_id);
CREATE INDEX IF NOT EXISTS idx_records_service_interval_id ON records(service_interval_id);
`

const migrationCreateParts = `
CREATE TABLE IF NOT EXISTS parts (
    id BIGSERIAL PRIMARY KEY,
    uuid UUID NOT NULL UNIQUE,
    record_id BIGINT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    part_number TEXT,
    manufacturer TEXT,
    cost DOUBLE PRECISION NOT NULL DEFAULT 0,
    quantity INT NOT NULL DEFAULT 1,
    url TEXT
);
CREATE INDEX IF NOT EXISTS idx_parts_record_id ON parts(record_id);
`

const migrationCreateTags = `
CREATE TABLE IF NOT EXISTS tags (
    id BIGSERIAL PRIMARY KEY,
    uuid UUID NOT NULL UNIQUE,
    name TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`

const migrationCreateRecordTags = `
CREATE TABLE IF NOT EXISTS record_tags (
    record_id BIGINT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
    tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (record_id, tag_id)
);
`

const migrationCreateServiceIntervalTags = `
CREATE TABLE IF NOT EXISTS service_interval_tags (
    service_interval_id BIGINT NOT NULL REFERENCES service_intervals(id) ON DELETE CASCADE,
    tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (service_interval_id, tag_id)
);
`

const migrationCreateFuelEntries = `
CREATE TABLE IF NOT EXISTS fuel_entries (
    id BIGSERIAL PRIMARY KEY,
    uuid UUID NOT NULL UNIQUE,
    vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
    odometer_entry_id BIGINT NOT NULL REFERENCES odometer_entries(id),
    date TIMESTAMP WITH TIME ZONE NOT NULL,
    gallons DOUBLE PRECISION NOT NULL,
    total_cost DOUBLE PRECISION,
    gas_station TEXT,
    notes TEXT,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_fuel_entries_vehicle_id ON fuel_entries(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_fuel_entries_date ON fuel_entries(date);
`
