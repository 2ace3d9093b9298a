package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/langchou/lugnut/internal/models"
)

// IntervalStatus 保养周期状态，读取时实时计算，不落库
type IntervalStatus string

const (
	StatusUnrecorded IntervalStatus = "unrecorded" // 从未关联过保养记录
	StatusUpcoming   IntervalStatus = "upcoming"   // 已有记录且未超期
	StatusPastDue    IntervalStatus = "past_due"   // 里程或时间任一阈值已超
)

// Evaluation 单个周期的评估结果。
// MilesRemaining 为负表示超里程的英里数，DaysRemaining 为负表示超期天数；
// 对应阈值未配置时为 nil。
type Evaluation struct {
	Status         IntervalStatus `json:"status"`
	MilesRemaining *int           `json:"miles_remaining,omitempty"`
	DaysRemaining  *int           `json:"days_remaining,omitempty"`
}

// EvaluatedInterval 周期、最近保养记录和评估结果的组合，面向列表接口
type EvaluatedInterval struct {
	Interval     *models.ServiceInterval `json:"interval"`
	LastServiced *models.LastServiced    `json:"last_serviced,omitempty"`
	Evaluation   Evaluation              `json:"evaluation"`
}

// EvaluateInterval 对照当前里程和当前时间评估一个保养周期。
// 双阈值周期只要任一阈值已超即为 past_due（取 OR，更严的约束生效）。
// 月数到期日用日历月运算（time.AddDate，月底溢出按 Go 的规则归一化）。
func EvaluateInterval(interval *models.ServiceInterval, lastServiced *models.LastServiced, currentOdometer int, now time.Time) Evaluation {
	if lastServiced == nil {
		return Evaluation{Status: StatusUnrecorded}
	}

	eval := Evaluation{Status: StatusUpcoming}
	pastDue := false

	if interval.MileageInterval != nil {
		remaining := lastServiced.Odometer + *interval.MileageInterval - currentOdometer
		eval.MilesRemaining = &remaining
		if lastServiced.Odometer+*interval.MileageInterval < currentOdometer {
			pastDue = true
		}
	}

	if interval.MonthInterval != nil {
		dueDate := lastServiced.Date.AddDate(0, *interval.MonthInterval, 0)
		days := int(math.Floor(dueDate.Sub(now).Hours() / 24))
		eval.DaysRemaining = &days
		if dueDate.Before(now) {
			pastDue = true
		}
	}

	if pastDue {
		eval.Status = StatusPastDue
	}
	return eval
}

// urgencyScore 混合单位的紧迫度评分：取剩余英里数和剩余天数中较小者。
// 英里和天数直接比大小是既有产品行为，不做单位归一化。
func (e Evaluation) urgencyScore() int {
	score := math.MaxInt
	if e.MilesRemaining != nil {
		score = *e.MilesRemaining
	}
	if e.DaysRemaining != nil && *e.DaysRemaining < score {
		score = *e.DaysRemaining
	}
	return score
}

// SortByUrgency 按紧迫度升序排序（最紧迫在前），评分相同时保持原有顺序
func SortByUrgency(evaluated []EvaluatedInterval) {
	sort.SliceStable(evaluated, func(i, j int) bool {
		return evaluated[i].Evaluation.urgencyScore() < evaluated[j].Evaluation.urgencyScore()
	})
}

// ServiceSummary 车辆保养状态摘要，用于车辆卡片
type ServiceSummary struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// SummarizeServiceStatus 汇总车辆所有周期的状态，规则按优先级取第一条命中：
//  1. 未配置任何周期
//  2. 存在超期周期（计数为超期条数）
//  3. 存在未关联记录的周期（计数为未关联条数）
//  4. 剩余里程最小的 upcoming 周期（仅配置时间阈值的周期视为剩余无穷大，不参与）
//  5. 没有可排名的 upcoming 周期
func SummarizeServiceStatus(evaluated []EvaluatedInterval) ServiceSummary {
	if len(evaluated) == 0 {
		return ServiceSummary{Count: 0, Message: "No service intervals"}
	}

	pastDue := 0
	unrecorded := 0
	for _, e := range evaluated {
		switch e.Evaluation.Status {
		case StatusPastDue:
			pastDue++
		case StatusUnrecorded:
			unrecorded++
		}
	}

	if pastDue > 0 {
		return ServiceSummary{Count: pastDue, Message: "service items past due"}
	}
	if unrecorded > 0 {
		return ServiceSummary{Count: unrecorded, Message: "missing service records"}
	}

	var nearest *EvaluatedInterval
	for i := range evaluated {
		e := &evaluated[i]
		if e.Evaluation.Status != StatusUpcoming || e.Evaluation.MilesRemaining == nil {
			continue
		}
		if nearest == nil || *e.Evaluation.MilesRemaining < *nearest.Evaluation.MilesRemaining {
			nearest = e
		}
	}
	if nearest != nil {
		return ServiceSummary{
			Count:   *nearest.Evaluation.MilesRemaining,
			Message: fmt.Sprintf("miles until %s", nearest.Interval.Name),
		}
	}

	return ServiceSummary{Count: 0, Message: "No upcoming services"}
}
