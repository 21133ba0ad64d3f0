// Package builtin 提供内置排班规则
package builtin

import "github.com/tingban/tingban/pkg/model"

// RestRule 听班后休息：完整的同周休息表、同周白班回响与跨周限制。
//
// 同周：周一听→周二休，周二听→周三休，周三听→周四休，
// 周四听→周五六日休，周五听→周六日休，周六听→周日休；
// 周一/二/三听班还要求两天后上白班（不可再听班）。
// 跨周：上周四听→本周一白班，上周五听→本周一休+周二白班，
// 上周六/日听→本周一二休+周三白班。
type RestRule struct{}

// Name 返回规则名称
func (r *RestRule) Name() string { return NameRest }

// Priority 返回优先级
func (r *RestRule) Priority() int { return PriorityRest }

// Validate 校验听班赋值是否与休息要求冲突
func (r *RestRule) Validate(employee string, day int, duty model.DutyType, week *model.WeekAssignment, history model.History) bool {
	if duty != model.DutyOnCall {
		return true
	}

	// 同周双向检查：已有听班日波及当日，或当日听班会波及已有听班日
	for other := 0; other < model.DaysPerWeek; other++ {
		if other == day || !week.WasOnCall(other, employee) {
			continue
		}
		if containsDay(RestWindow(other), day) || containsDay(RestWindow(day), other) {
			return false
		}
		if WorkEcho(other) == day || WorkEcho(day) == other {
			return false
		}
	}

	// 跨周限制：上周的听班决定本周一/二/三的休息与白班
	last := history.Last()
	if last == nil {
		return true
	}
	for prevDay := model.Thursday; prevDay <= model.Sunday; prevDay++ {
		if !last.WasOnCall(prevDay, employee) {
			continue
		}
		if containsDay(CarryoverRest(prevDay), day) {
			return false
		}
		if CarryoverWork(prevDay) == day {
			return false
		}
	}
	return true
}
