// Package builtin 提供内置排班规则
package builtin

import "github.com/tingban/tingban/pkg/rule"

// 规则名称
const (
	NameCoverage = "每日听班覆盖"
	NameMinimum  = "每周至少听班一次"
	NameRest     = "听班后休息"
	NameWeekend  = "周末不连续听班"
	NameWeekday  = "同星期不连续听班"
	NameMaxTwo   = "每周最多听班两次"
)

// 规则优先级。数值是语义的一部分：修复阶段按它决定先牺牲谁。
const (
	PriorityCoverage = 110
	PriorityMinimum  = 100
	PriorityRest     = 90
	PriorityWeekend  = 88
	PriorityWeekday  = 80
	PriorityMaxTwo   = 70
)

// Default 返回默认规则集（声明顺序即同优先级平局顺序）
func Default() []rule.Rule {
	return []rule.Rule{
		&CoverageRule{},
		&MinimumRule{},
		&RestRule{},
		&WeekendRule{},
		&WeekdayRule{},
		&MaxTwoRule{},
	}
}
