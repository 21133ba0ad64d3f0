// Package stats 提供排班统计分析功能
package stats

import (
	"math"
	"sort"

	"github.com/tingban/tingban/pkg/model"
)

// FairnessMetrics 听班负担公平性指标
type FairnessMetrics struct {
	// 听班次数公平性
	OnCallGini     float64 `json:"on_call_gini"`     // 听班次数基尼系数 (0=完全公平, 1=完全不公平)
	OnCallVariance float64 `json:"on_call_variance"` // 听班次数方差
	OnCallStdDev   float64 `json:"on_call_std_dev"`  // 听班次数标准差
	AvgOnCall      float64 `json:"avg_on_call"`      // 人均听班次数
	MaxOnCall      int     `json:"max_on_call"`      // 最多听班次数
	MinOnCall      int     `json:"min_on_call"`      // 最少听班次数

	// 周末听班公平性
	WeekendGini float64 `json:"weekend_gini"` // 周末听班基尼系数

	// 员工级别统计
	EmployeeStats []EmployeeStat `json:"employee_stats"`

	// 综合评分
	OverallFairnessScore float64 `json:"overall_fairness_score"` // 综合公平性评分 (0-100)
}

// EmployeeStat 员工统计
type EmployeeStat struct {
	Employee     string  `json:"employee"`
	OnCallDays   int     `json:"on_call_days"`
	WeekendCalls int     `json:"weekend_calls"`
	RestDays     int     `json:"rest_days"`
	WorkDays     int     `json:"work_days"`
	Deviation    float64 `json:"deviation"` // 与平均听班次数的偏差百分比
}

// FairnessAnalyzer 公平性分析器
type FairnessAnalyzer struct{}

// NewFairnessAnalyzer 创建公平性分析器
func NewFairnessAnalyzer() *FairnessAnalyzer {
	return &FairnessAnalyzer{}
}

// Analyze 分析若干周排班的听班负担公平性
func (f *FairnessAnalyzer) Analyze(weeks []*model.WeekAssignment, roster model.Roster) *FairnessMetrics {
	if len(weeks) == 0 || len(roster) == 0 {
		return &FairnessMetrics{OverallFairnessScore: 100}
	}

	employeeStats := f.calculateEmployeeStats(weeks, roster)

	onCall := make([]float64, len(employeeStats))
	weekend := make([]float64, len(employeeStats))
	for i, stat := range employeeStats {
		onCall[i] = float64(stat.OnCallDays)
		weekend[i] = float64(stat.WeekendCalls)
	}

	avg := f.calculateMean(onCall)
	variance := f.calculateVariance(onCall, avg)
	stdDev := math.Sqrt(variance)
	maxOnCall, minOnCall := f.calculateRange(onCall)

	for i := range employeeStats {
		if avg > 0 {
			employeeStats[i].Deviation = (float64(employeeStats[i].OnCallDays) - avg) / avg * 100
		}
	}

	onCallGini := f.calculateGini(onCall)
	weekendGini := f.calculateGini(weekend)
	overall := f.calculateOverallScore(onCallGini, weekendGini, stdDev, avg)

	return &FairnessMetrics{
		OnCallGini:           onCallGini,
		OnCallVariance:       variance,
		OnCallStdDev:         stdDev,
		AvgOnCall:            avg,
		MaxOnCall:            int(maxOnCall),
		MinOnCall:            int(minOnCall),
		WeekendGini:          weekendGini,
		EmployeeStats:        employeeStats,
		OverallFairnessScore: overall,
	}
}

// calculateEmployeeStats 统计每个员工的班型分布（按听班次数降序）
func (f *FairnessAnalyzer) calculateEmployeeStats(weeks []*model.WeekAssignment, roster model.Roster) []EmployeeStat {
	stats := make([]EmployeeStat, len(roster))
	for i, emp := range roster {
		stats[i].Employee = emp
		for _, week := range weeks {
			stats[i].OnCallDays += week.OnCallCount(emp)
			stats[i].RestDays += week.DutyCount(emp, model.DutyRest)
			stats[i].WorkDays += week.DutyCount(emp, model.DutyWork)
			for day := model.Saturday; day <= model.Sunday; day++ {
				if week.WasOnCall(day, emp) {
					stats[i].WeekendCalls++
				}
			}
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].OnCallDays > stats[j].OnCallDays
	})
	return stats
}

// calculateMean 计算平均值
func (f *FairnessAnalyzer) calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// calculateVariance 计算方差
func (f *FairnessAnalyzer) calculateVariance(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(values))
}

// calculateRange 计算极值
func (f *FairnessAnalyzer) calculateRange(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return
}

// calculateGini 计算基尼系数
func (f *FairnessAnalyzer) calculateGini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	gini := 0.0
	for i, v := range sorted {
		gini += (2*float64(i+1) - float64(n) - 1) * v
	}
	gini = gini / (float64(n) * sum)
	return math.Max(0, math.Min(1, gini))
}

// calculateOverallScore 计算综合公平性评分
func (f *FairnessAnalyzer) calculateOverallScore(onCallGini, weekendGini, stdDev, avg float64) float64 {
	const (
		onCallWeight  = 0.5
		weekendWeight = 0.3
		stdDevWeight  = 0.2
	)

	// 基尼系数转换为分数 (0=100分, 1=0分)
	onCallScore := (1 - onCallGini) * 100
	weekendScore := (1 - weekendGini) * 100

	// 变异系数越低分数越高
	cvScore := 100.0
	if avg > 0 {
		cv := stdDev / avg
		cvScore = math.Max(0, 100-cv*200)
	}

	score := onCallWeight*onCallScore + weekendWeight*weekendScore + stdDevWeight*cvScore
	return math.Max(0, math.Min(100, score))
}

// CompareSchedules 比较两套排班的公平性
func (f *FairnessAnalyzer) CompareSchedules(weeks1, weeks2 []*model.WeekAssignment, roster model.Roster) map[string]float64 {
	m1 := f.Analyze(weeks1, roster)
	m2 := f.Analyze(weeks2, roster)

	return map[string]float64{
		"on_call_gini_diff":       m2.OnCallGini - m1.OnCallGini,
		"weekend_gini_diff":       m2.WeekendGini - m1.WeekendGini,
		"overall_score_diff":      m2.OverallFairnessScore - m1.OverallFairnessScore,
		"schedule1_overall_score": m1.OverallFairnessScore,
		"schedule2_overall_score": m2.OverallFairnessScore,
	}
}
