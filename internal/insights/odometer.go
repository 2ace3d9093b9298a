package insights

// AdvanceWatermark 计算里程水位线的推进结果。
// 新读数不低于当前水位线时推进到新读数，否则水位线保持不动（倒填的
// 历史条目照常入账，但不会把缓存的当前里程往回拉）。
// 存储层在同一事务里套用同样的规则决定是否更新车辆的 current_odometer。
func AdvanceWatermark(current, observed int) (watermark int, advanced bool) {
	if observed >= current {
		return observed, true
	}
	return current, false
}
