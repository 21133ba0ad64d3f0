// Package builtin 提供内置排班规则
package builtin

import "github.com/tingban/tingban/pkg/model"

// CoverageRule 每日必须有且仅有一人听班。
// 结构性规则：由求解器的逐日指派保证，校验本身永远放行。
type CoverageRule struct{}

// Name 返回规则名称
func (r *CoverageRule) Name() string { return NameCoverage }

// Priority 返回优先级
func (r *CoverageRule) Priority() int { return PriorityCoverage }

// Validate 永远放行，覆盖由指派逻辑保证
func (r *CoverageRule) Validate(string, int, model.DutyType, *model.WeekAssignment, model.History) bool {
	return true
}

// MinimumRule 每人每周至少听班一次。
// 结构性规则：由求解器终态检查与覆盖修复保证，校验本身永远放行。
type MinimumRule struct{}

// Name 返回规则名称
func (r *MinimumRule) Name() string { return NameMinimum }

// Priority 返回优先级
func (r *MinimumRule) Priority() int { return PriorityMinimum }

// Validate 永远放行，最少一次由修复逻辑保证
func (r *MinimumRule) Validate(string, int, model.DutyType, *model.WeekAssignment, model.History) bool {
	return true
}
