package model

import "testing"

func TestDutyTypeValid(t *testing.T) {
	tests := []struct {
		name string
		duty DutyType
		want bool
	}{
		{"白班", DutyWork, true},
		{"听班", DutyOnCall, true},
		{"休息", DutyRest, true},
		{"空串", DutyType(""), false},
		{"未知班型", DutyType("夜"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.duty.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	for day := Monday; day <= Friday; day++ {
		if IsWeekend(day) {
			t.Errorf("IsWeekend(%d) = true, 工作日不应是周末", day)
		}
	}
	if !IsWeekend(Saturday) || !IsWeekend(Sunday) {
		t.Error("周六周日应判定为周末")
	}
}

func TestValidDay(t *testing.T) {
	tests := []struct {
		name string
		day  int
		want bool
	}{
		{"周一", Monday, true},
		{"周日", Sunday, true},
		{"负数", -1, false},
		{"越界", DaysPerWeek, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidDay(tt.day); got != tt.want {
				t.Errorf("ValidDay(%d) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestDayName(t *testing.T) {
	if got := DayName(Monday); got != "周一" {
		t.Errorf("DayName(Monday) = %s", got)
	}
	if got := DayName(Sunday); got != "周日" {
		t.Errorf("DayName(Sunday) = %s", got)
	}
	if got := DayName(99); got != "未知" {
		t.Errorf("DayName(99) = %s", got)
	}
}
