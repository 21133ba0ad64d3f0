// Package builtin 提供内置排班规则
package builtin

import "github.com/tingban/tingban/pkg/model"

// WeekendRule 周末不连续听班：上周任一周末日听过班，本周末不得再听。
type WeekendRule struct{}

// Name 返回规则名称
func (r *WeekendRule) Name() string { return NameWeekend }

// Priority 返回优先级
func (r *WeekendRule) Priority() int { return PriorityWeekend }

// Validate 校验周末听班赋值
func (r *WeekendRule) Validate(employee string, day int, duty model.DutyType, week *model.WeekAssignment, history model.History) bool {
	if duty != model.DutyOnCall || !model.IsWeekend(day) {
		return true
	}
	return !history.WasOnWeekendCall(1, employee)
}
