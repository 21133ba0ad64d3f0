// Package model 定义听班排班引擎的核心数据模型
package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Violation 被接受的规则违反记录（修复阶段产生，写入审计轨迹）
type Violation struct {
	Rule     string `json:"rule"`
	Priority int    `json:"priority"`
	Employee string `json:"employee"`
	Day      int    `json:"day"`
	Message  string `json:"message,omitempty"`
}

// Metadata 周排班的附加信息，仅用于追踪，不参与排班逻辑
type Metadata struct {
	ID           uuid.UUID   `json:"id"`
	GeneratedAt  time.Time   `json:"generated_at"`
	RulesApplied []string    `json:"rules_applied,omitempty"`
	Violations   []Violation `json:"violations,omitempty"`
	Degraded     bool        `json:"degraded"`
	// UncoveredDays 修复后仍无人听班的日子（正常情况下为空）
	UncoveredDays []int `json:"uncovered_days,omitempty"`
	// MissingEmployees 修复后仍未安排到听班的员工（正常情况下为空）
	MissingEmployees []string `json:"missing_employees,omitempty"`
}

// WeekAssignment 一周的排班表：日 × 员工 → 班型
// 未赋值的格子处于"未定"状态，仅在构建过程中出现。
type WeekAssignment struct {
	WeekStart   time.Time                        `json:"week_start"` // 必须为周一
	Assignments [DaysPerWeek]map[string]DutyType `json:"assignments"`
	Metadata    Metadata                         `json:"metadata"`
}

// NewWeekAssignment 创建空白的周排班
func NewWeekAssignment(weekStart time.Time) *WeekAssignment {
	w := &WeekAssignment{WeekStart: weekStart}
	for day := 0; day < DaysPerWeek; day++ {
		w.Assignments[day] = make(map[string]DutyType)
	}
	return w
}

// SetDuty 设置某日某员工的班型
func (w *WeekAssignment) SetDuty(day int, employee string, duty DutyType) {
	if !ValidDay(day) {
		return
	}
	if w.Assignments[day] == nil {
		w.Assignments[day] = make(map[string]DutyType)
	}
	w.Assignments[day][employee] = duty
}

// ClearDuty 清除某日某员工的班型（恢复未定状态）
func (w *WeekAssignment) ClearDuty(day int, employee string) {
	if !ValidDay(day) || w.Assignments[day] == nil {
		return
	}
	delete(w.Assignments[day], employee)
}

// Duty 返回某日某员工的班型，第二个返回值表示是否已赋值
func (w *WeekAssignment) Duty(day int, employee string) (DutyType, bool) {
	if !ValidDay(day) || w.Assignments[day] == nil {
		return "", false
	}
	d, ok := w.Assignments[day][employee]
	return d, ok
}

// OnCallEmployees 返回某日所有听班员工（按姓名排序，保证确定性）
func (w *WeekAssignment) OnCallEmployees(day int) []string {
	if !ValidDay(day) {
		return nil
	}
	var out []string
	for emp, d := range w.Assignments[day] {
		if d == DutyOnCall {
			out = append(out, emp)
		}
	}
	sort.Strings(out)
	return out
}

// WasOnCall 判断某员工某日是否听班
func (w *WeekAssignment) WasOnCall(day int, employee string) bool {
	d, ok := w.Duty(day, employee)
	return ok && d == DutyOnCall
}

// OnCallCount 返回某员工本周的听班次数
func (w *WeekAssignment) OnCallCount(employee string) int {
	count := 0
	for day := 0; day < DaysPerWeek; day++ {
		if w.WasOnCall(day, employee) {
			count++
		}
	}
	return count
}

// DutyCount 返回某员工本周某班型的天数
func (w *WeekAssignment) DutyCount(employee string, duty DutyType) int {
	count := 0
	for day := 0; day < DaysPerWeek; day++ {
		if d, ok := w.Duty(day, employee); ok && d == duty {
			count++
		}
	}
	return count
}

// EmployeeSchedule 返回某员工一周的班型序列，未定格子按白班计
func (w *WeekAssignment) EmployeeSchedule(employee string) []DutyType {
	out := make([]DutyType, DaysPerWeek)
	for day := 0; day < DaysPerWeek; day++ {
		if d, ok := w.Duty(day, employee); ok {
			out[day] = d
		} else {
			out[day] = DutyWork
		}
	}
	return out
}

// Clone 深拷贝周排班（含元数据）
func (w *WeekAssignment) Clone() *WeekAssignment {
	c := &WeekAssignment{WeekStart: w.WeekStart, Metadata: w.Metadata}
	for day := 0; day < DaysPerWeek; day++ {
		c.Assignments[day] = make(map[string]DutyType, len(w.Assignments[day]))
		for emp, d := range w.Assignments[day] {
			c.Assignments[day][emp] = d
		}
	}
	c.Metadata.Violations = append([]Violation(nil), w.Metadata.Violations...)
	c.Metadata.UncoveredDays = append([]int(nil), w.Metadata.UncoveredDays...)
	c.Metadata.MissingEmployees = append([]string(nil), w.Metadata.MissingEmployees...)
	c.Metadata.RulesApplied = append([]string(nil), w.Metadata.RulesApplied...)
	return c
}

// AddViolation 追加一条违反记录并标记降级
func (w *WeekAssignment) AddViolation(v Violation) {
	w.Metadata.Violations = append(w.Metadata.Violations, v)
	w.Metadata.Degraded = true
}

// DateOf 返回某星期序号对应的日期
func (w *WeekAssignment) DateOf(day int) time.Time {
	return w.WeekStart.AddDate(0, 0, day)
}
