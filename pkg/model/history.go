// Package model 定义听班排班引擎的核心数据模型
package model

// History 历史周排班窗口，最近一周在前。
// 由外部持久化协作方提供，引擎只读不改。
type History []*WeekAssignment

// Last 返回最近一周，无历史时返回 nil
func (h History) Last() *WeekAssignment {
	if len(h) == 0 {
		return nil
	}
	return h[0]
}

// WeeksAgo 返回 n 周前的排班（n=1 为上一周），越界返回 nil
func (h History) WeeksAgo(n int) *WeekAssignment {
	if n < 1 || n > len(h) {
		return nil
	}
	return h[n-1]
}

// WasOnCall 判断某员工 n 周前某日是否听班
func (h History) WasOnCall(weeksAgo, day int, employee string) bool {
	w := h.WeeksAgo(weeksAgo)
	return w != nil && w.WasOnCall(day, employee)
}

// OnCallCount 返回某员工 n 周前的听班次数，无记录返回 0
func (h History) OnCallCount(weeksAgo int, employee string) int {
	w := h.WeeksAgo(weeksAgo)
	if w == nil {
		return 0
	}
	return w.OnCallCount(employee)
}

// WasOnWeekendCall 判断某员工 n 周前是否有周末听班
func (h History) WasOnWeekendCall(weeksAgo int, employee string) bool {
	return h.WasOnCall(weeksAgo, Saturday, employee) ||
		h.WasOnCall(weeksAgo, Sunday, employee)
}
