// Package engine 实现听班排班的求解、修复与公平性优化
package engine

import (
	"fmt"

	"github.com/tingban/tingban/pkg/logger"
	"github.com/tingban/tingban/pkg/model"
	"github.com/tingban/tingban/pkg/rule/builtin"
)

// repairer 覆盖修复器。严格求解失败后接手，分三级保证每日有人听班：
//  1. 只保覆盖的回溯求解（放弃"每人至少一次"终态）
//  2. 贪心逐日补位（只校验优先级不低于周末规则的约束）
//  3. 强制赋值（挑代价最小的人，接受并记录违反）
// 跨周固定格在任何一级都不会被覆盖。
type repairer struct {
	p        *plan
	log      *logger.EngineLogger
	maxNodes int
}

func newRepairer(p *plan, log *logger.EngineLogger, maxNodes int) *repairer {
	return &repairer{p: p, log: log, maxNodes: maxNodes}
}

// repair 执行覆盖修复与缺勤修复，返回修复后仍无人听班的日子
func (r *repairer) repair() []int {
	if !newSolver(r.p, modeCoverage, r.maxNodes).run() {
		r.reset()
		r.greedyFill()
	}

	for day := 0; day < model.DaysPerWeek; day++ {
		if r.p.onCall[day] == "" {
			r.force(day)
		}
	}

	r.repairMissing()

	var uncovered []int
	for day := 0; day < model.DaysPerWeek; day++ {
		if r.p.onCall[day] == "" {
			uncovered = append(uncovered, day)
		}
	}
	return uncovered
}

// reset 撤销求解残留的指派，只保留跨周固定格
func (r *repairer) reset() {
	for day := 0; day < model.DaysPerWeek; day++ {
		r.p.unplace(day)
	}
}

// greedyFill 逐日贪心补位。候选人须通过优先级不低于周末规则（88）的
// 全部校验；优先挑本周尚无听班的员工，其中剩余可听天数最少的先占位，
// 避免他唯一的机会被别人抢走。
func (r *repairer) greedyFill() {
	for day := 0; day < model.DaysPerWeek; day++ {
		if r.p.onCall[day] != "" {
			continue
		}
		pick := r.greedyPick(day)
		if pick == "" {
			continue
		}
		r.acceptLowFailures(pick, day)
		r.p.place(pick, day)
		r.log.RepairApplied("greedy", pick, day)
	}
}

// greedyPick 为某日挑选贪心候选人，无人可用时返回空串
func (r *repairer) greedyPick(day int) string {
	best := ""
	bestMissing := false
	bestFree := 0
	for _, emp := range r.p.roster {
		if !r.relaxedLegal(emp, day) {
			continue
		}
		missing := r.p.week.OnCallCount(emp) == 0
		free := r.freeDays(emp)
		if best == "" ||
			(missing && !bestMissing) ||
			(missing == bestMissing && free < bestFree) {
			best = emp
			bestMissing = missing
			bestFree = free
		}
	}
	return best
}

// relaxedLegal 放宽到优先级不低于周末规则的合法性判断
func (r *repairer) relaxedLegal(employee string, day int) bool {
	if r.p.onCall[day] != "" {
		return false
	}
	if _, ok := r.p.week.Duty(day, employee); ok {
		return false
	}
	return r.p.catalog.ValidateAbove(builtin.PriorityWeekend,
		employee, day, model.DutyOnCall, r.p.week, r.p.history)
}

// freeDays 统计某员工本周剩余可听班的天数
func (r *repairer) freeDays(employee string) int {
	count := 0
	for day := 0; day < model.DaysPerWeek; day++ {
		if r.relaxedLegal(employee, day) {
			count++
		}
	}
	return count
}

// force 强制为某日指派听班人。逐个试清空格子后评估违反代价，
// 取（违反条数，优先级之和）最小者，平局按花名册顺序；
// 全部违反被接受并写入审计轨迹，原格子值被覆盖。
func (r *repairer) force(day int) {
	type candidate struct {
		employee string
		failures []failureRecord
		count    int
		sum      int
	}

	var best *candidate
	for _, emp := range r.p.roster {
		if IsCarryoverFixed(emp, day, r.p.history) {
			continue
		}
		failures := r.probeFailures(emp, day)
		count := len(failures)
		sum := 0
		for _, f := range failures {
			sum += f.priority
		}
		if best == nil || count < best.count || (count == best.count && sum < best.sum) {
			best = &candidate{employee: emp, failures: failures, count: count, sum: sum}
		}
	}
	if best == nil {
		return
	}

	r.p.forgetDerived(best.employee, day)
	r.p.week.ClearDuty(day, best.employee)
	r.p.place(best.employee, day)
	for _, f := range best.failures {
		r.recordViolation(f.name, f.priority, best.employee, day)
	}
	r.log.RepairApplied("forced", best.employee, day)
}

type failureRecord struct {
	name     string
	priority int
}

// probeFailures 在临时清空格子的前提下评估强制指派会违反哪些规则
func (r *repairer) probeFailures(employee string, day int) []failureRecord {
	prev, had := r.p.week.Duty(day, employee)
	r.p.week.ClearDuty(day, employee)

	var out []failureRecord
	for _, f := range r.p.catalog.Explain(employee, day, model.DutyOnCall, r.p.week, r.p.history) {
		out = append(out, failureRecord{name: f.Name, priority: f.Priority})
	}

	if had {
		r.p.week.SetDuty(day, employee, prev)
	}
	return out
}

// repairMissing 缺勤修复：让本周尚无听班的员工顶替已听两次者的一个班次。
// 顶替须通过优先级不低于周末规则的校验；找不到可顶替的班次时
// 把缺勤记入元数据并标记降级。
func (r *repairer) repairMissing() {
	for _, emp := range r.p.missingEmployees() {
		if !r.takeover(emp) {
			r.p.week.Metadata.MissingEmployees = append(r.p.week.Metadata.MissingEmployees, emp)
			r.recordViolation(builtin.NameMinimum, builtin.PriorityMinimum, emp, -1)
		}
	}
}

// takeover 尝试为某员工找一个可顶替的班次，成功返回 true
func (r *repairer) takeover(employee string) bool {
	for day := 0; day < model.DaysPerWeek; day++ {
		holder := r.p.onCall[day]
		if holder == "" || holder == employee {
			continue
		}
		if r.p.week.OnCallCount(holder) < 2 {
			continue
		}
		if IsCarryoverFixed(employee, day, r.p.history) {
			continue
		}

		prev, had := r.p.week.Duty(day, employee)
		r.p.unplace(day)
		r.p.forgetDerived(employee, day)
		r.p.week.ClearDuty(day, employee)

		if r.p.catalog.ValidateAbove(builtin.PriorityWeekend,
			employee, day, model.DutyOnCall, r.p.week, r.p.history) {
			r.acceptLowFailures(employee, day)
			r.p.place(employee, day)
			r.log.RepairApplied("takeover", employee, day)
			return true
		}

		// 顶替失败，原样复位
		if had {
			r.p.week.SetDuty(day, employee, prev)
		}
		r.p.place(holder, day)
	}
	return false
}

// acceptLowFailures 把低优先级规则的违反记入审计轨迹（指派前调用）
func (r *repairer) acceptLowFailures(employee string, day int) {
	for _, f := range r.p.catalog.Explain(employee, day, model.DutyOnCall, r.p.week, r.p.history) {
		if f.Priority >= builtin.PriorityWeekend {
			continue
		}
		r.recordViolation(f.Name, f.Priority, employee, day)
	}
}

// recordViolation 写入一条被接受的违反并同步日志
func (r *repairer) recordViolation(name string, priority int, employee string, day int) {
	msg := fmt.Sprintf("修复阶段接受违反：%s", name)
	r.p.week.AddViolation(model.Violation{
		Rule:     name,
		Priority: priority,
		Employee: employee,
		Day:      day,
		Message:  msg,
	})
	r.log.RuleViolation(name, employee, day, msg)
}
