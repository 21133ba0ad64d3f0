// Package engine 实现听班排班的求解、修复与公平性优化
package engine

import (
	"github.com/tingban/tingban/pkg/model"
	"github.com/tingban/tingban/pkg/rule/builtin"
)

// ApplyCarryover 把上一周听班带来的强制休息/强制白班写入新的一周。
// 先写休息再写白班：同一格两者冲突时休息优先。
// 这些格子在后续所有阶段都不可改动。
func ApplyCarryover(week *model.WeekAssignment, roster model.Roster, history model.History) {
	last := history.Last()
	if last == nil {
		return
	}

	for _, emp := range roster {
		for prevDay := model.Thursday; prevDay <= model.Sunday; prevDay++ {
			if !last.WasOnCall(prevDay, emp) {
				continue
			}
			for _, day := range builtin.CarryoverRest(prevDay) {
				week.SetDuty(day, emp, model.DutyRest)
			}
		}
	}

	for _, emp := range roster {
		for prevDay := model.Thursday; prevDay <= model.Sunday; prevDay++ {
			if !last.WasOnCall(prevDay, emp) {
				continue
			}
			work := builtin.CarryoverWork(prevDay)
			if work < 0 {
				continue
			}
			if d, ok := week.Duty(work, emp); ok && d == model.DutyRest {
				continue
			}
			week.SetDuty(work, emp, model.DutyWork)
		}
	}
}

// IsCarryoverFixed 判断某格是否被跨周表固定（固定格任何阶段不得覆盖）
func IsCarryoverFixed(employee string, day int, history model.History) bool {
	last := history.Last()
	if last == nil {
		return false
	}
	for prevDay := model.Thursday; prevDay <= model.Sunday; prevDay++ {
		if !last.WasOnCall(prevDay, employee) {
			continue
		}
		for _, d := range builtin.CarryoverRest(prevDay) {
			if d == day {
				return true
			}
		}
		if builtin.CarryoverWork(prevDay) == day {
			return true
		}
	}
	return false
}
