package insights

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DIY 省钱估算参数：按工时费 $140/h、DIY 耗时为店保 0.4 倍折算
const (
	shopLaborRatePerHour = 140.0
	diyHoursFactor       = 0.4
)

// MilesDrivenPerDay 自购车日期起的日均行驶里程。
// initialOdometer 为 0 作为"尚无读数"哨兵处理（与真实零里程的新车存在歧义，
// 属于既有产品行为，保持不变）。
func MilesDrivenPerDay(initialOdometer, currentOdometer int, purchaseDate, today time.Time) string {
	if initialOdometer == 0 {
		return "No initial odometer reading yet"
	}

	daysSincePurchase := int(math.Ceil(today.Sub(purchaseDate).Hours() / 24))
	if daysSincePurchase < 1 {
		daysSincePurchase = 1
	}

	perDay := float64(currentOdometer-initialOdometer) / float64(daysSincePurchase)
	return fmt.Sprintf("%.1f miles per day", perDay)
}

// FormatDIYHours 把累计 DIY 工时拆成 天/小时/分钟 展示，零分量省略。
// 0 工时返回独立文案而不是 "0h"。
func FormatDIYHours(diyHours float64) string {
	if diyHours == 0 {
		return "No DIY work yet"
	}

	days := int(math.Floor(diyHours / 24))
	hours := int(math.Floor(math.Mod(diyHours, 24)))
	minutes := int(math.Round(math.Mod(diyHours, 1) * 60))

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}

	joined := strings.Join(parts, " ")
	if joined == "" {
		joined = "0h"
	}
	return joined + " spent DIYing"
}

// DIYLaborSavedString 估算 DIY 省下的工时费，输出两位小数的美元文案
func DIYLaborSavedString(diyHours float64, includeSuffix bool) string {
	if diyHours == 0 {
		return "No DIY work yet"
	}
	saved := diyHours * diyHoursFactor * shopLaborRatePerHour
	s := fmt.Sprintf("$%.2f", saved)
	if includeSuffix {
		s += " saved in labor"
	}
	return s
}
