package models

import "time"

// ServiceInterval 保养周期，按里程和/或月数循环，二者至少设置其一
type ServiceInterval struct {
	ID              int64     `json:"id" db:"id"`
	UUID            string    `json:"uuid" db:"uuid"`
	VehicleID       int64     `json:"vehicle_id" db:"vehicle_id"`
	Name            string    `json:"name" db:"name"`
	MileageInterval *int      `json:"mileage_interval,omitempty" db:"mileage_interval"` // miles
	MonthInterval   *int      `json:"month_interval,omitempty" db:"month_interval"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	Tags            []string  `json:"tags,omitempty" db:"-"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// LastServiced 周期最近一次完成的保养明细（关联 Record 中作业日期最新的一条）
type LastServiced struct {
	RecordID int64     `json:"record_id"`
	JobID    int64     `json:"job_id"`
	Title    string    `json:"title"`
	Odometer int       `json:"odometer"`
	Date     time.Time `json:"date"`
}

// IntervalWithLastRecord 周期及其最近保养记录，评估器的输入
type IntervalWithLastRecord struct {
	Interval     *ServiceInterval `json:"interval"`
	LastServiced *LastServiced    `json:"last_serviced,omitempty"`
}
