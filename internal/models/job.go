package models

import "time"

// Job 保养作业（一次进厂或一次 DIY），下挂多条 Record
type Job struct {
	ID              int64     `json:"id" db:"id"`
	UUID            string    `json:"uuid" db:"uuid"`
	VehicleID       int64     `json:"vehicle_id" db:"vehicle_id"`
	OdometerEntryID int64     `json:"odometer_entry_id" db:"odometer_entry_id"`
	Title           string    `json:"title" db:"title"`
	Date            time.Time `json:"date" db:"date"`
	Odometer        int       `json:"odometer" db:"odometer"`
	LaborCost       float64   `json:"labor_cost" db:"labor_cost"`
	IsDIY           bool      `json:"is_diy" db:"is_diy"`
	Difficulty      int       `json:"difficulty" db:"difficulty"`
	ShopName        *string   `json:"shop_name,omitempty" db:"shop_name"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	URL             *string   `json:"url,omitempty" db:"url"`
	Hours           *float64  `json:"hours,omitempty" db:"hours"` // DIY 工时
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	Records []*Record `json:"records,omitempty" db:"-"`
}

// Record 作业明细（换机油、换滤芯…），可关联保养周期
type Record struct {
	ID                int64    `json:"id" db:"id"`
	UUID              string   `json:"uuid" db:"uuid"`
	JobID             int64    `json:"job_id" db:"job_id"`
	ServiceIntervalID *int64   `json:"service_interval_id,omitempty" db:"service_interval_id"`
	Title             string   `json:"title" db:"title"`
	Notes             *string  `json:"notes,omitempty" db:"notes"`
	Tags              []string `json:"tags,omitempty" db:"-"`

	Parts []*Part `json:"parts,omitempty" db:"-"`
}

// Part 零件
type Part struct {
	ID           int64   `json:"id" db:"id"`
	UUID         string  `json:"uuid" db:"uuid"`
	RecordID     int64   `json:"record_id" db:"record_id"`
	Name         string  `json:"name" db:"name"`
	PartNumber   *string `json:"part_number,omitempty" db:"part_number"`
	Manufacturer *string `json:"manufacturer,omitempty" db:"manufacturer"`
	Cost         float64 `json:"cost" db:"cost"`
	Quantity     int     `json:"quantity" db:"quantity"`
	URL          *string `json:"url,omitempty" db:"url"`
}

// Tag 标签
type Tag struct {
	ID        int64     `json:"id" db:"id"`
	UUID      string    `json:"uuid" db:"uuid"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// JobCostBreakdown 作业费用拆分
type JobCostBreakdown struct {
	TotalPartsCost float64 `json:"total_parts_cost"`
	LaborCost      float64 `json:"labor_cost"`
	TotalCost      float64 `json:"total_cost"`
	DIYLaborSaved  string  `json:"diy_labor_saved,omitempty"`
}
