package model

import (
	"testing"
	"time"
)

var testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestWeekAssignmentSetAndGet(t *testing.T) {
	w := NewWeekAssignment(testMonday)

	if _, ok := w.Duty(Monday, "张三"); ok {
		t.Fatal("空白周的格子应处于未定状态")
	}

	w.SetDuty(Monday, "张三", DutyOnCall)
	d, ok := w.Duty(Monday, "张三")
	if !ok || d != DutyOnCall {
		t.Fatalf("Duty() = %v, %v, want 听, true", d, ok)
	}

	w.ClearDuty(Monday, "张三")
	if _, ok := w.Duty(Monday, "张三"); ok {
		t.Fatal("ClearDuty 后格子应恢复未定")
	}

	// 非法日序号静默忽略
	w.SetDuty(-1, "张三", DutyOnCall)
	w.SetDuty(DaysPerWeek, "张三", DutyOnCall)
}

func TestWeekAssignmentOnCallEmployees(t *testing.T) {
	w := NewWeekAssignment(testMonday)
	w.SetDuty(Friday, "王五", DutyOnCall)
	w.SetDuty(Friday, "李四", DutyOnCall)
	w.SetDuty(Friday, "张三", DutyRest)

	got := w.OnCallEmployees(Friday)
	if len(got) != 2 || got[0] != "李四" || got[1] != "王五" {
		t.Errorf("OnCallEmployees() = %v, 应按姓名排序且不含休息者", got)
	}
}

func TestWeekAssignmentCounts(t *testing.T) {
	w := NewWeekAssignment(testMonday)
	w.SetDuty(Monday, "张三", DutyOnCall)
	w.SetDuty(Tuesday, "张三", DutyRest)
	w.SetDuty(Thursday, "张三", DutyOnCall)

	if got := w.OnCallCount("张三"); got != 2 {
		t.Errorf("OnCallCount() = %d, want 2", got)
	}
	if got := w.DutyCount("张三", DutyRest); got != 1 {
		t.Errorf("DutyCount(休) = %d, want 1", got)
	}
	if !w.WasOnCall(Monday, "张三") || w.WasOnCall(Tuesday, "张三") {
		t.Error("WasOnCall 判定错误")
	}
}

func TestWeekAssignmentEmployeeSchedule(t *testing.T) {
	w := NewWeekAssignment(testMonday)
	w.SetDuty(Wednesday, "张三", DutyOnCall)
	w.SetDuty(Thursday, "张三", DutyRest)

	got := w.EmployeeSchedule("张三")
	if len(got) != DaysPerWeek {
		t.Fatalf("序列长度 = %d, want %d", len(got), DaysPerWeek)
	}
	if got[Monday] != DutyWork {
		t.Error("未定格子应按白班计")
	}
	if got[Wednesday] != DutyOnCall || got[Thursday] != DutyRest {
		t.Error("已定格子应原样返回")
	}
}

func TestWeekAssignmentClone(t *testing.T) {
	w := NewWeekAssignment(testMonday)
	w.SetDuty(Monday, "张三", DutyOnCall)
	w.AddViolation(Violation{Rule: "r", Priority: 70, Employee: "张三", Day: Monday})

	c := w.Clone()
	c.SetDuty(Monday, "张三", DutyRest)
	c.AddViolation(Violation{Rule: "r2", Priority: 90})

	if !w.WasOnCall(Monday, "张三") {
		t.Error("修改副本不应影响原始排班")
	}
	if len(w.Metadata.Violations) != 1 {
		t.Errorf("原始违反记录数 = %d, want 1", len(w.Metadata.Violations))
	}
}

func TestWeekAssignmentAddViolation(t *testing.T) {
	w := NewWeekAssignment(testMonday)
	if w.Metadata.Degraded {
		t.Fatal("空白周不应降级")
	}
	w.AddViolation(Violation{Rule: "r", Priority: 70})
	if !w.Metadata.Degraded {
		t.Error("记录违反后应标记降级")
	}
}

func TestWeekAssignmentDateOf(t *testing.T) {
	w := NewWeekAssignment(testMonday)
	if got := w.DateOf(Sunday); !got.Equal(testMonday.AddDate(0, 0, 6)) {
		t.Errorf("DateOf(Sunday) = %v", got)
	}
}
