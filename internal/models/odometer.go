package models

import "time"

// 里程表条目来源类型
const (
	OdometerTypeInitial = "initial" // 建车时写入，每辆车有且仅有一条
	OdometerTypeReading = "reading" // 手动抄表
	OdometerTypeFueling = "fueling" // 加油时记录
	OdometerTypeJob     = "job"     // 保养作业时记录
)

// OdometerEntry 里程表条目，只增不改（台账为 append-only）
type OdometerEntry struct {
	ID        int64     `json:"id" db:"id"`
	UUID      string    `json:"uuid" db:"uuid"`
	VehicleID int64     `json:"vehicle_id" db:"vehicle_id"`
	Odometer  int       `json:"odometer" db:"odometer"` // miles
	Type      string    `json:"type" db:"type"`
	EntryDate time.Time `json:"entry_date" db:"entry_date"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
