// Package builtin 提供内置排班规则
package builtin

import "github.com/tingban/tingban/pkg/model"

// MaxTwoRule 每周最多听班两次。
// 目录中优先级最低：当人数不足以覆盖七天时，它是第一个被牺牲的规则。
type MaxTwoRule struct{}

// Name 返回规则名称
func (r *MaxTwoRule) Name() string { return NameMaxTwo }

// Priority 返回优先级
func (r *MaxTwoRule) Priority() int { return PriorityMaxTwo }

// Validate 校验听班次数上限
func (r *MaxTwoRule) Validate(employee string, day int, duty model.DutyType, week *model.WeekAssignment, history model.History) bool {
	if duty != model.DutyOnCall {
		return true
	}
	return week.OnCallCount(employee) < 2
}
