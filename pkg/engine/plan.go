// Package engine 实现听班排班的求解、修复与公平性优化
package engine

import (
	"github.com/tingban/tingban/pkg/model"
	"github.com/tingban/tingban/pkg/rule"
	"github.com/tingban/tingban/pkg/rule/builtin"
)

// plan 求解过程中的工作状态：周排班加上回滚所需的记录。
// place/unplace 成对出现，保证任何退出路径都能还原。
type plan struct {
	week    *model.WeekAssignment
	roster  model.Roster
	history model.History
	catalog *rule.Catalog

	// onCall 每日听班人，空串表示未定
	onCall [model.DaysPerWeek]string
	// derived 每日听班实际写入的同周休息日（仅记录原本未定的格子）
	derived [model.DaysPerWeek][]int
}

func newPlan(week *model.WeekAssignment, roster model.Roster, history model.History, catalog *rule.Catalog) *plan {
	return &plan{week: week, roster: roster, history: history, catalog: catalog}
}

// legal 判断常规指派是否合法：当日无人听班、格子未定、全部规则放行
func (p *plan) legal(employee string, day int) bool {
	if p.onCall[day] != "" {
		return false
	}
	if _, ok := p.week.Duty(day, employee); ok {
		return false
	}
	return p.catalog.Validate(employee, day, model.DutyOnCall, p.week, p.history)
}

// place 指派听班并立即铺开同周休息窗口
func (p *plan) place(employee string, day int) {
	p.week.SetDuty(day, employee, model.DutyOnCall)
	p.onCall[day] = employee
	p.derived[day] = nil
	for _, r := range builtin.RestWindow(day) {
		if _, ok := p.week.Duty(r, employee); !ok {
			p.week.SetDuty(r, employee, model.DutyRest)
			p.derived[day] = append(p.derived[day], r)
		}
	}
}

// unplace 撤销某日的听班指派及其派生休息格
func (p *plan) unplace(day int) {
	employee := p.onCall[day]
	if employee == "" {
		return
	}
	p.week.ClearDuty(day, employee)
	for _, r := range p.derived[day] {
		p.week.ClearDuty(r, employee)
	}
	p.derived[day] = nil
	p.onCall[day] = ""
}

// displace 撤下当日听班人并把该格降级为白班或休息。
// 休息优先：该员工其余听班日或跨周表仍要求当日休息时降为休息，
// 否则工作日降为白班、周末降为休息。
func (p *plan) displace(day int) {
	employee := p.onCall[day]
	if employee == "" {
		return
	}
	p.unplace(day)
	if p.restDemanded(employee, day) || model.IsWeekend(day) {
		p.week.SetDuty(day, employee, model.DutyRest)
	} else {
		p.week.SetDuty(day, employee, model.DutyWork)
	}
}

// restDemanded 判断某员工当日是否仍被休息表要求休息
func (p *plan) restDemanded(employee string, day int) bool {
	for other := 0; other < model.DaysPerWeek; other++ {
		if other == day || !p.week.WasOnCall(other, employee) {
			continue
		}
		for _, r := range builtin.RestWindow(other) {
			if r == day {
				return true
			}
		}
	}
	last := p.history.Last()
	if last == nil {
		return false
	}
	for prevDay := model.Thursday; prevDay <= model.Sunday; prevDay++ {
		if !last.WasOnCall(prevDay, employee) {
			continue
		}
		for _, r := range builtin.CarryoverRest(prevDay) {
			if r == day {
				return true
			}
		}
	}
	return false
}

// forgetDerived 把某格从派生记录里摘除。
// 修复阶段覆盖派生休息格之前调用，避免之后的撤销把新值一并清掉。
func (p *plan) forgetDerived(employee string, day int) {
	for src := 0; src < model.DaysPerWeek; src++ {
		if p.onCall[src] != employee {
			continue
		}
		for i, d := range p.derived[src] {
			if d == day {
				p.derived[src] = append(p.derived[src][:i], p.derived[src][i+1:]...)
				break
			}
		}
	}
}

// everyoneOnCall 判断花名册所有人本周都至少听班一次
func (p *plan) everyoneOnCall() bool {
	for _, emp := range p.roster {
		if p.week.OnCallCount(emp) == 0 {
			return false
		}
	}
	return true
}

// missingEmployees 返回本周尚无听班的员工（按花名册顺序）
func (p *plan) missingEmployees() []string {
	var out []string
	for _, emp := range p.roster {
		if p.week.OnCallCount(emp) == 0 {
			out = append(out, emp)
		}
	}
	return out
}

// clone 深拷贝工作状态，公平性优化在副本上试算换班
func (p *plan) clone() *plan {
	c := &plan{
		week:    p.week.Clone(),
		roster:  p.roster,
		history: p.history,
		catalog: p.catalog,
		onCall:  p.onCall,
	}
	for day := 0; day < model.DaysPerWeek; day++ {
		c.derived[day] = append([]int(nil), p.derived[day]...)
	}
	return c
}
