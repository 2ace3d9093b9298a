package models

import "time"

// FuelEntry 加油记录，里程数通过关联的里程表条目存储
type FuelEntry struct {
	ID              int64     `json:"id" db:"id"`
	UUID            string    `json:"uuid" db:"uuid"`
	VehicleID       int64     `json:"vehicle_id" db:"vehicle_id"`
	OdometerEntryID int64     `json:"odometer_entry_id" db:"odometer_entry_id"`
	Date            time.Time `json:"date" db:"date"`
	Odometer        int       `json:"odometer" db:"odometer"` // 来自关联的里程表条目
	Gallons         float64   `json:"gallons" db:"gallons"`
	TotalCost       *float64  `json:"total_cost,omitempty" db:"total_cost"`
	GasStation      *string   `json:"gas_station,omitempty" db:"gas_station"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
