package insights

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Fill 单次加油的计算输入，与存储层的关联方式解耦：
// 无论加油记录是独立存里程还是引用里程表条目，这里只需要这四个字段。
type Fill struct {
	Date      time.Time
	Odometer  int
	Gallons   float64
	TotalCost *float64
}

// FillDerived 按条目派生出的油耗数据，nil 表示数据不足无法计算
type FillDerived struct {
	MPG           *float64 `json:"mpg"`
	CostPerGallon *float64 `json:"cost_per_gallon"`
}

// EnrichFuelEntries 为每条加油记录派生 MPG 和每加仑单价。
// 入参必须按 (date, odometer) 降序排列（最新在前），这是存储层的默认查询顺序；
// entries[i+1] 即为 entries[i] 的上一次加油。返回值与入参顺序一一对应。
//
// 最旧的一条没有前次加油，MPG 恒为 nil；相邻两次加油里程差不为正时
// （倒填的历史记录）同样返回 nil，绝不产生负值或除以零。
func EnrichFuelEntries(entries []Fill) []FillDerived {
	derived := make([]FillDerived, len(entries))

	for i, entry := range entries {
		var mpg, costPerGallon *float64

		if entry.TotalCost != nil && *entry.TotalCost > 0 && entry.Gallons > 0 {
			cpg := round2(*entry.TotalCost / entry.Gallons)
			costPerGallon = &cpg
		}

		if i+1 < len(entries) && entry.Gallons > 0 {
			milesDriven := entry.Odometer - entries[i+1].Odometer
			if milesDriven > 0 {
				m := round1(float64(milesDriven) / entry.Gallons)
				mpg = &m
			}
		}

		derived[i] = FillDerived{MPG: mpg, CostPerGallon: costPerGallon}
	}

	return derived
}

// AverageMPG 对有效条目（MPG 非 nil 且大于 0）求平均，无有效条目时返回 0（前端显示 "--"）
func AverageMPG(derived []FillDerived) float64 {
	var sum float64
	var count int
	for _, d := range derived {
		if d.MPG != nil && *d.MPG > 0 {
			sum += *d.MPG
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// MilesPerTank 根据全部加油里程读数计算平均每箱行驶里程。
// 读数少于 2 条时返回提示文案而不是数值，避免除以零。
func MilesPerTank(fuelOdometers []int) string {
	if len(fuelOdometers) == 0 {
		return "No fuel entries yet"
	}
	if len(fuelOdometers) < 2 {
		return "Not enough data to calculate miles per tank"
	}

	sorted := make([]int, len(fuelOdometers))
	copy(sorted, fuelOdometers)
	sort.Ints(sorted)

	total := 0
	for i := 1; i < len(sorted); i++ {
		total += sorted[i] - sorted[i-1]
	}

	milesPerFillup := float64(total) / float64(len(sorted)-1)
	return fmt.Sprintf("%.1f miles per fillup", milesPerFillup)
}

// round1 保留 1 位小数，四舍五入远离零
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 保留 2 位小数，四舍五入远离零
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
