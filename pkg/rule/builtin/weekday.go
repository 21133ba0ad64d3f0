// Package builtin 提供内置排班规则
package builtin

import "github.com/tingban/tingban/pkg/model"

// WeekdayRule 同星期不连续听班：上周某天听过班，本周同一天不得再听。
type WeekdayRule struct{}

// Name 返回规则名称
func (r *WeekdayRule) Name() string { return NameWeekday }

// Priority 返回优先级
func (r *WeekdayRule) Priority() int { return PriorityWeekday }

// Validate 校验同星期重复听班
func (r *WeekdayRule) Validate(employee string, day int, duty model.DutyType, week *model.WeekAssignment, history model.History) bool {
	if duty != model.DutyOnCall {
		return true
	}
	return !history.WasOnCall(1, day, employee)
}
