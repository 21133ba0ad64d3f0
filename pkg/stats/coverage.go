// Package stats 提供排班统计分析功能
package stats

import (
	"github.com/tingban/tingban/pkg/model"
)

// CoverageMetrics 听班覆盖指标
type CoverageMetrics struct {
	TotalDays       int     `json:"total_days"`       // 总天数
	CoveredDays     int     `json:"covered_days"`     // 有人听班的天数
	OverallCoverage float64 `json:"overall_coverage"` // 整体覆盖率 (%)

	DegradedWeeks   int `json:"degraded_weeks"`   // 降级周数
	TotalViolations int `json:"total_violations"` // 被接受的违反总数

	// 问题识别
	UncoveredDays []UncoveredDay `json:"uncovered_days,omitempty"` // 无人听班的日子
	WeekSummaries []WeekSummary  `json:"week_summaries"`           // 逐周摘要
	ViolationsBy  map[string]int `json:"violations_by_rule"`       // 按规则统计违反次数
}

// UncoveredDay 无人听班的日子
type UncoveredDay struct {
	WeekStart string `json:"week_start"`
	Day       int    `json:"day"`
	DayName   string `json:"day_name"`
}

// WeekSummary 一周的覆盖摘要
type WeekSummary struct {
	WeekStart  string `json:"week_start"`
	Covered    int    `json:"covered"`
	Degraded   bool   `json:"degraded"`
	Violations int    `json:"violations"`
}

// CoverageAnalyzer 覆盖分析器
type CoverageAnalyzer struct{}

// NewCoverageAnalyzer 创建覆盖分析器
func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{}
}

// Analyze 分析若干周排班的听班覆盖情况
func (c *CoverageAnalyzer) Analyze(weeks []*model.WeekAssignment) *CoverageMetrics {
	metrics := &CoverageMetrics{
		ViolationsBy: make(map[string]int),
	}
	if len(weeks) == 0 {
		metrics.OverallCoverage = 100
		return metrics
	}

	for _, week := range weeks {
		weekStart := week.WeekStart.Format("2006-01-02")
		covered := 0
		for day := 0; day < model.DaysPerWeek; day++ {
			metrics.TotalDays++
			if len(week.OnCallEmployees(day)) > 0 {
				metrics.CoveredDays++
				covered++
			} else {
				metrics.UncoveredDays = append(metrics.UncoveredDays, UncoveredDay{
					WeekStart: weekStart,
					Day:       day,
					DayName:   model.DayName(day),
				})
			}
		}

		if week.Metadata.Degraded {
			metrics.DegradedWeeks++
		}
		metrics.TotalViolations += len(week.Metadata.Violations)
		for _, v := range week.Metadata.Violations {
			metrics.ViolationsBy[v.Rule]++
		}

		metrics.WeekSummaries = append(metrics.WeekSummaries, WeekSummary{
			WeekStart:  weekStart,
			Covered:    covered,
			Degraded:   week.Metadata.Degraded,
			Violations: len(week.Metadata.Violations),
		})
	}

	if metrics.TotalDays > 0 {
		metrics.OverallCoverage = float64(metrics.CoveredDays) / float64(metrics.TotalDays) * 100
	}
	return metrics
}
