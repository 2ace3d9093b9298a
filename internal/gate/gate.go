// Package gate 免费版/付费版的能力判定。
// 订阅状态由调用方作为显式参数传入，核心逻辑不感知会话或账单。
package gate

// 免费版配额
const (
	FreeVehicleLimit = 1
	FreeJobLimit     = 2
)

// CanAddVehicle 免费用户限一辆车
func CanAddVehicle(isPaid bool, vehicleCount int) bool {
	return isPaid || vehicleCount < FreeVehicleLimit
}

// CanAddJob 免费用户限两个作业
func CanAddJob(isPaid bool, jobCount int) bool {
	return isPaid || jobCount < FreeJobLimit
}

// CanAddFuelEntry 油耗记录为付费功能
func CanAddFuelEntry(isPaid bool) bool {
	return isPaid
}

// CanAddOdometerEntry 手动抄表为付费功能
func CanAddOdometerEntry(isPaid bool) bool {
	return isPaid
}

// CanAddServiceInterval 保养周期为付费功能
func CanAddServiceInterval(isPaid bool) bool {
	return isPaid
}
