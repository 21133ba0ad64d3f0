package model

import (
	"testing"
	"time"
)

// weekWithOnCall 构造一周排班并指定某员工的听班日
func weekWithOnCall(weekStart time.Time, employee string, days ...int) *WeekAssignment {
	w := NewWeekAssignment(weekStart)
	for _, day := range days {
		w.SetDuty(day, employee, DutyOnCall)
	}
	return w
}

func TestHistoryLastAndWeeksAgo(t *testing.T) {
	var empty History
	if empty.Last() != nil {
		t.Error("空历史 Last() 应为 nil")
	}

	w1 := weekWithOnCall(testMonday.AddDate(0, 0, -7), "张三", Monday)
	w2 := weekWithOnCall(testMonday.AddDate(0, 0, -14), "张三", Friday)
	h := History{w1, w2}

	if h.Last() != w1 {
		t.Error("Last() 应返回最近一周")
	}
	if h.WeeksAgo(1) != w1 || h.WeeksAgo(2) != w2 {
		t.Error("WeeksAgo 序号错误")
	}
	if h.WeeksAgo(0) != nil || h.WeeksAgo(3) != nil {
		t.Error("越界 WeeksAgo 应返回 nil")
	}
}

func TestHistoryWasOnCall(t *testing.T) {
	h := History{weekWithOnCall(testMonday.AddDate(0, 0, -7), "张三", Wednesday)}

	if !h.WasOnCall(1, Wednesday, "张三") {
		t.Error("上周周三张三应为听班")
	}
	if h.WasOnCall(1, Thursday, "张三") || h.WasOnCall(2, Wednesday, "张三") {
		t.Error("不存在的记录应返回 false")
	}
	if h.OnCallCount(1, "张三") != 1 || h.OnCallCount(5, "张三") != 0 {
		t.Error("OnCallCount 统计错误")
	}
}

func TestHistoryWasOnWeekendCall(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want bool
	}{
		{"周六听班", []int{Saturday}, true},
		{"周日听班", []int{Sunday}, true},
		{"仅工作日听班", []int{Tuesday}, false},
		{"无听班", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := History{weekWithOnCall(testMonday.AddDate(0, 0, -7), "张三", tt.days...)}
			if got := h.WasOnWeekendCall(1, "张三"); got != tt.want {
				t.Errorf("WasOnWeekendCall() = %v, want %v", got, tt.want)
			}
		})
	}
}
