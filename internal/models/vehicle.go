package models

import (
	"fmt"
	"time"
)

// User 用户信息（认证由外部层负责，这里只保留订阅标记）
type User struct {
	ID        int64     `json:"id" db:"id"`
	UUID      string    `json:"uuid" db:"uuid"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	IsPaid    bool      `json:"is_paid" db:"is_paid"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Vehicle 车辆信息
type Vehicle struct {
	ID                     int64      `json:"id" db:"id"`
	UUID                   string     `json:"uuid" db:"uuid"`
	UserID                 int64      `json:"user_id" db:"user_id"`
	Make                   string     `json:"make" db:"make"`
	Model                  string     `json:"model" db:"model"`
	Year                   int        `json:"year" db:"year"`
	LicensePlate           *string    `json:"license_plate,omitempty" db:"license_plate"`
	VIN                    *string    `json:"vin,omitempty" db:"vin"`
	Nickname               *string    `json:"nickname,omitempty" db:"nickname"`
	InitialOdometer        int        `json:"initial_odometer" db:"initial_odometer"`         // 建车时的里程表读数 (miles)
	CurrentOdometer        int        `json:"current_odometer" db:"current_odometer"`         // 水位线缓存，只增不减
	RegistrationExpiration *time.Time `json:"registration_expiration,omitempty" db:"registration_expiration"`
	PurchaseDate           *time.Time `json:"purchase_date,omitempty" db:"purchase_date"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at" db:"updated_at"`
}

// DisplayName 车辆展示名称，昵称优先
func (v *Vehicle) DisplayName() string {
	if v.Nickname != nil && *v.Nickname != "" {
		return *v.Nickname
	}
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}
